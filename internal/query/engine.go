package query

import (
	"context"
	"time"

	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/telemetry/metrics"
	"github.com/2beens/bloghub/internal/telemetry/tracing"
	"github.com/2beens/bloghub/internal/users"
	"github.com/2beens/bloghub/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// query names, used for spans and the query duration histogram
const (
	QuerySameDayTagPair         = "same_day_tag_pair"
	QueryMostBlogsOnDate        = "most_blogs_on_date"
	QueryFollowedByBoth         = "followed_by_both"
	QueryNeverPosted            = "never_posted"
	QueryAllPositiveBlogs       = "all_positive_blogs"
	QueryOnlyNegativeCommenters = "only_negative_commenters"
	QueryBlogsNeverNegative     = "blogs_never_negative"
)

type EngineParams struct {
	Source  Source
	Follows users.FollowReader
	Users   users.Directory
	Metrics *metrics.Manager
	// Now defaults to time.Now.
	Now func() time.Time
}

// Engine runs the read-only analytical queries. It never mutates state.
type Engine struct {
	source  Source
	follows users.FollowReader
	users   users.Directory
	metrics *metrics.Manager
	now     func() time.Time
}

func NewEngine(params EngineParams) *Engine {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		source:  params.Source,
		follows: params.Follows,
		users:   params.Users,
		metrics: params.Metrics,
		now:     now,
	}
}

func (e *Engine) SameDayTagPair(ctx context.Context, tagA, tagB string) (_ []string, err error) {
	ctx, done := e.start(ctx, QuerySameDayTagPair)
	defer func() { done(err) }()

	tagA, tagB = blog.NormalizeTag(tagA), blog.NormalizeTag(tagB)
	if tagA == "" {
		return nil, errs.Validation("tag_a", "must not be empty")
	}
	if tagB == "" {
		return nil, errs.Validation("tag_b", "must not be empty")
	}

	result, err := e.source.SameDayTagPair(ctx, tagA, tagB)
	if err != nil {
		return nil, e.storageErr(QuerySameDayTagPair, err)
	}
	return nonNilStrings(result), nil
}

// MostBlogsOnDate returns the users with the most blogs posted on the UTC
// day of date, ties included. A nil date means the current UTC day.
func (e *Engine) MostBlogsOnDate(ctx context.Context, date *time.Time) (_ *MostBlogsResult, err error) {
	ctx, done := e.start(ctx, QueryMostBlogsOnDate)
	defer func() { done(err) }()

	day := e.now()
	if date != nil {
		day = *date
	}
	from, to := pkg.DayBounds(day)

	counts, err := e.source.MostBlogsBetween(ctx, from, to)
	if err != nil {
		return nil, e.storageErr(QueryMostBlogsOnDate, err)
	}

	if counts == nil {
		counts = []UserCount{}
	}
	return &MostBlogsResult{
		Date:  pkg.FormatDay(from),
		Users: counts,
	}, nil
}

// FollowedByBoth returns the users followed by both userX and userY.
func (e *Engine) FollowedByBoth(ctx context.Context, userX, userY string) (_ []string, err error) {
	ctx, done := e.start(ctx, QueryFollowedByBoth)
	defer func() { done(err) }()

	if userX == "" {
		return nil, errs.Validation("user_x", "must not be empty")
	}
	if userY == "" {
		return nil, errs.Validation("user_y", "must not be empty")
	}

	for _, username := range []string{userX, userY} {
		exists, err := e.users.UserExists(ctx, username)
		if err != nil {
			return nil, e.storageErr(QueryFollowedByBoth, err)
		}
		if !exists {
			return nil, errs.NotFoundf("user %s", username)
		}
	}

	followedByX, err := e.follows.Following(ctx, userX)
	if err != nil {
		return nil, e.storageErr(QueryFollowedByBoth, err)
	}
	if userX == userY {
		return users.Intersect(followedByX, followedByX), nil
	}

	followedByY, err := e.follows.Following(ctx, userY)
	if err != nil {
		return nil, e.storageErr(QueryFollowedByBoth, err)
	}
	return users.Intersect(followedByX, followedByY), nil
}

func (e *Engine) NeverPosted(ctx context.Context) (_ []string, err error) {
	ctx, done := e.start(ctx, QueryNeverPosted)
	defer func() { done(err) }()

	result, err := e.source.NeverPosted(ctx)
	if err != nil {
		return nil, e.storageErr(QueryNeverPosted, err)
	}
	return nonNilStrings(result), nil
}

// AllPositiveBlogs returns the blogs of username that have comments, all of
// them positive. Unknown users get an empty result.
func (e *Engine) AllPositiveBlogs(ctx context.Context, username string) (_ []*blog.Blog, err error) {
	ctx, done := e.start(ctx, QueryAllPositiveBlogs)
	defer func() { done(err) }()

	if username == "" {
		return nil, errs.Validation("username", "must not be empty")
	}

	result, err := e.source.AllPositiveBlogs(ctx, username)
	if err != nil {
		return nil, e.storageErr(QueryAllPositiveBlogs, err)
	}
	if result == nil {
		result = []*blog.Blog{}
	}
	return result, nil
}

func (e *Engine) OnlyNegativeCommenters(ctx context.Context) (_ []string, err error) {
	ctx, done := e.start(ctx, QueryOnlyNegativeCommenters)
	defer func() { done(err) }()

	result, err := e.source.OnlyNegativeCommenters(ctx)
	if err != nil {
		return nil, e.storageErr(QueryOnlyNegativeCommenters, err)
	}
	return nonNilStrings(result), nil
}

func (e *Engine) BlogsNeverNegative(ctx context.Context) (_ []string, err error) {
	ctx, done := e.start(ctx, QueryBlogsNeverNegative)
	defer func() { done(err) }()

	result, err := e.source.BlogsNeverNegative(ctx)
	if err != nil {
		return nil, e.storageErr(QueryBlogsNeverNegative, err)
	}
	return nonNilStrings(result), nil
}

func (e *Engine) start(ctx context.Context, queryName string) (context.Context, func(err error)) {
	begin := time.Now()
	ctx, span := tracing.GlobalTracer.Start(ctx, "query."+queryName)
	span.SetAttributes(attribute.String("query", queryName))
	return ctx, func(err error) {
		tracing.EndSpan(span, err)
		if e.metrics != nil {
			e.metrics.HistogramQueryDuration.WithLabelValues(queryName).Observe(time.Since(begin).Seconds())
		}
	}
}

func (e *Engine) storageErr(queryName string, err error) error {
	wrapped := errs.Storage(queryName, err)
	if !errs.IsTaxonomy(err) {
		log.Errorf("query %s: %s", queryName, err)
	}
	return wrapped
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
