package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/telemetry/tracing"
	"github.com/2beens/bloghub/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// BlogColumns selects a blog aliased as b, tags aggregated in order.
// Rows are read with ScanBlog.
const BlogColumns = `
	b.blog_id, b.username, b.subject, b.description, b.created_at,
	ARRAY(SELECT t.tag FROM blog_tag t WHERE t.blog_id = b.blog_id ORDER BY t.tag COLLATE "C") AS tags
`

const commentColumns = `comment_id, blog_id, username, sentiment, description, created_at`

var _ Store = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// InUserTx runs fn in a transaction holding the advisory lock of the user.
// The lock is released when the transaction ends.
func (r *Repo) InUserTx(ctx context.Context, username string, fn func(tx Tx) error) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.blog.user-tx")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, userLockKey(username)); err != nil {
		return fmt.Errorf("lock user: %w", err)
	}

	return fn(&repoTx{tx: tx})
}

func userLockKey(username string) string {
	return "bloghub.user:" + username
}

func (r *Repo) GetBlog(ctx context.Context, id int64) (_ *Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.blog.get")
	span.SetAttributes(attribute.Int64("blog_id", id))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	b, err := ScanBlog(r.db.QueryRow(ctx, `SELECT `+BlogColumns+` FROM blog b WHERE b.blog_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.NotFoundf("blog %d", id)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *Repo) CommentsForBlog(ctx context.Context, blogID int64) (_ []*Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.blog.comments")
	span.SetAttributes(attribute.Int64("blog_id", blogID))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM comment
		WHERE blog_id = $1
		ORDER BY created_at, comment_id
	`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		var c Comment
		var sentiment string
		if err := rows.Scan(&c.ID, &c.BlogID, &c.Username, &sentiment, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Sentiment = Sentiment(sentiment)
		c.CreatedAt = c.CreatedAt.UTC()
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

func (r *Repo) SearchByTag(ctx context.Context, tag string) (_ []*Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.blog.search-by-tag")
	span.SetAttributes(attribute.String("tag", tag))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+BlogColumns+`
		FROM blog b
		WHERE EXISTS (SELECT 1 FROM blog_tag t WHERE t.blog_id = b.blog_id AND t.tag = $1)
		ORDER BY b.created_at DESC, b.blog_id DESC
	`, NormalizeTag(tag))
	if err != nil {
		return nil, err
	}
	return ScanBlogs(rows)
}

func (r *Repo) BlogsByUser(ctx context.Context, username string) (_ []*Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.blog.by-user")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+BlogColumns+`
		FROM blog b
		WHERE b.username = $1
		ORDER BY b.created_at DESC, b.blog_id DESC
	`, username)
	if err != nil {
		return nil, err
	}
	return ScanBlogs(rows)
}

// ScanBlog reads one row selected with BlogColumns.
func ScanBlog(row pgx.Row) (*Blog, error) {
	var b Blog
	var tags []string
	if err := row.Scan(&b.ID, &b.Username, &b.Subject, &b.Description, &b.CreatedAt, &tags); err != nil {
		return nil, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.Tags = Tags(tags)
	if b.Tags == nil {
		b.Tags = Tags{}
	}
	return &b, nil
}

// ScanBlogs reads all rows selected with BlogColumns and closes them.
func ScanBlogs(rows pgx.Rows) ([]*Blog, error) {
	defer rows.Close()

	blogs := make([]*Blog, 0)
	for rows.Next() {
		b, err := ScanBlog(rows)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

type repoTx struct {
	tx pgx.Tx
}

func (t *repoTx) CountBlogsBetween(ctx context.Context, username string, from, to time.Time) (int, error) {
	var count int
	err := t.tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM blog
		WHERE username = $1 AND created_at >= $2 AND created_at < $3
	`, username, from, to).Scan(&count)
	return count, err
}

func (t *repoTx) CountCommentsBetween(ctx context.Context, username string, from, to time.Time) (int, error) {
	var count int
	err := t.tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM comment
		WHERE username = $1 AND created_at >= $2 AND created_at < $3
	`, username, from, to).Scan(&count)
	return count, err
}

func (t *repoTx) HasCommented(ctx context.Context, username string, blogID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM comment WHERE username = $1 AND blog_id = $2)
	`, username, blogID).Scan(&exists)
	return exists, err
}

func (t *repoTx) BlogExists(ctx context.Context, blogID int64) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM blog WHERE blog_id = $1)`, blogID).Scan(&exists)
	return exists, err
}

func (t *repoTx) InsertBlog(ctx context.Context, b *Blog) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO blog (username, subject, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING blog_id
	`,
		b.Username,
		b.Subject,
		b.Description,
		b.CreatedAt,
	).Scan(&b.ID)
	switch {
	case pkg.IsForeignKeyViolationError(err):
		return errs.NotFoundf("user %s", b.Username)
	case pkg.IsCheckViolationError(err):
		return errs.Validation("blog", "rejected by a storage constraint")
	case err != nil:
		return fmt.Errorf("insert blog: %w", err)
	}

	if _, err := t.tx.Exec(ctx, `
		INSERT INTO blog_tag (blog_id, tag)
		SELECT $1, unnest($2::text[])
	`, b.ID, []string(b.Tags)); err != nil {
		return fmt.Errorf("insert blog tags: %w", err)
	}

	return nil
}

func (t *repoTx) InsertComment(ctx context.Context, c *Comment) error {
	err := t.tx.QueryRow(ctx, `
		INSERT INTO comment (blog_id, username, sentiment, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING comment_id
	`,
		c.BlogID,
		c.Username,
		string(c.Sentiment),
		c.Description,
		c.CreatedAt,
	).Scan(&c.ID)
	switch {
	case err == nil:
		return nil
	case pkg.IsUniqueViolationError(err):
		return ErrDuplicate(c.BlogID)
	case pkg.IsForeignKeyViolationError(err):
		return errs.NotFoundf("blog %d or user %s", c.BlogID, c.Username)
	case pkg.IsCheckViolationError(err):
		return errs.Validation("comment", "rejected by a storage constraint")
	default:
		return fmt.Errorf("insert comment: %w", err)
	}
}
