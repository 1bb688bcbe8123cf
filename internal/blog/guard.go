package blog

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/telemetry/metrics"
	"github.com/2beens/bloghub/internal/telemetry/tracing"
	"github.com/2beens/bloghub/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const MaxSubjectLength = 200

type Limits struct {
	BlogsPerDay    int
	CommentsPerDay int
}

func DefaultLimits() Limits {
	return Limits{
		BlogsPerDay:    2,
		CommentsPerDay: 3,
	}
}

type GuardParams struct {
	Store   Store
	Users   UserDirectory
	Limits  Limits
	Metrics *metrics.Manager
	// Now defaults to time.Now.
	Now func() time.Time
}

// Guard is the only way blogs and comments get created. It validates the
// input and enforces the daily quotas and the one-comment-per-blog rule
// inside the store's per user critical section.
type Guard struct {
	store   Store
	users   UserDirectory
	limits  Limits
	metrics *metrics.Manager
	now     func() time.Time
}

func NewGuard(params GuardParams) *Guard {
	limits := params.Limits
	defaults := DefaultLimits()
	if limits.BlogsPerDay <= 0 {
		limits.BlogsPerDay = defaults.BlogsPerDay
	}
	if limits.CommentsPerDay <= 0 {
		limits.CommentsPerDay = defaults.CommentsPerDay
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &Guard{
		store:   params.Store,
		users:   params.Users,
		limits:  limits,
		metrics: params.Metrics,
		now:     now,
	}
}

func (g *Guard) Limits() Limits {
	return g.limits
}

func (g *Guard) CreateBlog(
	ctx context.Context,
	username, subject, description string,
	tags []string,
) (_ *Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "guard.blog.create")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
		g.recordRejection("blog", err)
	}()

	subject = strings.TrimSpace(subject)
	description = strings.TrimSpace(description)
	normalizedTags := NewTags(tags...)

	switch {
	case username == "":
		return nil, errs.Validation("username", "must not be empty")
	case subject == "":
		return nil, errs.Validation("subject", "must not be empty")
	case utf8.RuneCountInString(subject) > MaxSubjectLength:
		return nil, errs.Validation("subject", "must be at most 200 characters")
	case description == "":
		return nil, errs.Validation("description", "must not be empty")
	case len(normalizedTags) == 0:
		return nil, errs.Validation("tags", "at least one tag is required")
	}

	if err := g.checkUserExists(ctx, username); err != nil {
		return nil, err
	}

	now := g.now().UTC()
	from, to := pkg.DayBounds(now)
	newBlog := &Blog{
		Username:    username,
		Subject:     subject,
		Description: description,
		Tags:        normalizedTags,
		CreatedAt:   now,
	}

	err = g.store.InUserTx(ctx, username, func(tx Tx) error {
		count, err := tx.CountBlogsBetween(ctx, username, from, to)
		if err != nil {
			return err
		}
		if count >= g.limits.BlogsPerDay {
			return ErrBlogQuota(g.limits.BlogsPerDay)
		}
		return tx.InsertBlog(ctx, newBlog)
	})
	if err != nil {
		return nil, g.storageErr("create blog", err)
	}

	if g.metrics != nil {
		g.metrics.CounterBlogsCreated.Inc()
	}
	span.SetAttributes(attribute.Int64("blog_id", newBlog.ID))
	log.Tracef("new blog %d by [%s] added, tags: %s", newBlog.ID, username, newBlog.Tags)

	return newBlog, nil
}

func (g *Guard) CreateComment(
	ctx context.Context,
	username string,
	blogID int64,
	sentiment, description string,
) (_ *Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "guard.comment.create")
	span.SetAttributes(attribute.String("username", username))
	span.SetAttributes(attribute.Int64("blog_id", blogID))
	defer func() {
		tracing.EndSpan(span, err)
		g.recordRejection("comment", err)
	}()

	if username == "" {
		return nil, errs.Validation("username", "must not be empty")
	}
	if blogID <= 0 {
		return nil, errs.Validation("blog_id", "must be a positive number")
	}
	parsedSentiment, err := ParseSentiment(sentiment)
	if err != nil {
		return nil, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errs.Validation("description", "must not be empty")
	}

	if err := g.checkUserExists(ctx, username); err != nil {
		return nil, err
	}

	now := g.now().UTC()
	from, to := pkg.DayBounds(now)
	newComment := &Comment{
		BlogID:      blogID,
		Username:    username,
		Sentiment:   parsedSentiment,
		Description: description,
		CreatedAt:   now,
	}

	err = g.store.InUserTx(ctx, username, func(tx Tx) error {
		exists, err := tx.BlogExists(ctx, blogID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NotFoundf("blog %d", blogID)
		}

		commented, err := tx.HasCommented(ctx, username, blogID)
		if err != nil {
			return err
		}
		if commented {
			return ErrDuplicate(blogID)
		}

		count, err := tx.CountCommentsBetween(ctx, username, from, to)
		if err != nil {
			return err
		}
		if count >= g.limits.CommentsPerDay {
			return ErrCommentQuota(g.limits.CommentsPerDay)
		}

		return tx.InsertComment(ctx, newComment)
	})
	if err != nil {
		return nil, g.storageErr("create comment", err)
	}

	if g.metrics != nil {
		g.metrics.CounterCommentsCreated.WithLabelValues(string(parsedSentiment)).Inc()
	}
	span.SetAttributes(attribute.Int64("comment_id", newComment.ID))
	log.Tracef("new comment %d by [%s] on blog %d added", newComment.ID, username, blogID)

	return newComment, nil
}

func (g *Guard) GetBlog(ctx context.Context, id int64) (_ *BlogWithComments, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "guard.blog.get")
	span.SetAttributes(attribute.Int64("blog_id", id))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	if id <= 0 {
		return nil, errs.Validation("blog_id", "must be a positive number")
	}

	b, err := g.store.GetBlog(ctx, id)
	if err != nil {
		return nil, g.storageErr("get blog", err)
	}

	comments, err := g.store.CommentsForBlog(ctx, id)
	if err != nil {
		return nil, g.storageErr("get blog comments", err)
	}
	if comments == nil {
		comments = []*Comment{}
	}

	return &BlogWithComments{
		Blog:     b,
		Comments: comments,
	}, nil
}

func (g *Guard) SearchBlogsByTag(ctx context.Context, tag string) (_ []*Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "guard.blog.search")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	tag = NormalizeTag(tag)
	if tag == "" {
		return nil, errs.Validation("tag", "must not be empty")
	}
	span.SetAttributes(attribute.String("tag", tag))

	blogs, err := g.store.SearchByTag(ctx, tag)
	if err != nil {
		return nil, g.storageErr("search blogs", err)
	}
	return nonNil(blogs), nil
}

func (g *Guard) ListBlogsByUser(ctx context.Context, username string) (_ []*Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "guard.blog.list-by-user")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	if username == "" {
		return nil, errs.Validation("username", "must not be empty")
	}
	if err := g.checkUserExists(ctx, username); err != nil {
		return nil, err
	}

	blogs, err := g.store.BlogsByUser(ctx, username)
	if err != nil {
		return nil, g.storageErr("list user blogs", err)
	}
	return nonNil(blogs), nil
}

func (g *Guard) checkUserExists(ctx context.Context, username string) error {
	exists, err := g.users.UserExists(ctx, username)
	if err != nil {
		return g.storageErr("user exists", err)
	}
	if !exists {
		return errs.NotFoundf("user %s", username)
	}
	return nil
}

func (g *Guard) storageErr(op string, err error) error {
	wrapped := errs.Storage(op, err)
	var storageErr *errs.StorageError
	if errors.As(wrapped, &storageErr) {
		log.Errorf("%s: %s", op, err)
	}
	return wrapped
}

func (g *Guard) recordRejection(kind string, err error) {
	if err == nil || g.metrics == nil {
		return
	}
	g.metrics.CounterWriteRejections.WithLabelValues(kind, metrics.RejectionReason(err)).Inc()
}

func nonNil(blogs []*Blog) []*Blog {
	if blogs == nil {
		return []*Blog{}
	}
	return blogs
}
