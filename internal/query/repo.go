package query

import (
	"context"
	"time"

	"github.com/2beens/bloghub/internal/blog"
	"github.com/2beens/bloghub/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var _ Source = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) SameDayTagPair(ctx context.Context, tagA, tagB string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.query.same-day-tag-pair")
	span.SetAttributes(attribute.String("tag_a", tagA), attribute.String("tag_b", tagB))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT b1.username COLLATE "C" AS username
		FROM blog b1
		JOIN blog b2
		  ON b2.username = b1.username
		 AND b2.blog_id <> b1.blog_id
		 AND (b2.created_at AT TIME ZONE 'UTC')::date = (b1.created_at AT TIME ZONE 'UTC')::date
		WHERE EXISTS (SELECT 1 FROM blog_tag t WHERE t.blog_id = b1.blog_id AND t.tag = $1)
		  AND EXISTS (SELECT 1 FROM blog_tag t WHERE t.blog_id = b2.blog_id AND t.tag = $2)
		ORDER BY username
	`, tagA, tagB)
	if err != nil {
		return nil, err
	}
	return scanUsernames(rows)
}

func (r *Repo) MostBlogsBetween(ctx context.Context, from, to time.Time) (_ []UserCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.query.most-blogs-between")
	span.SetAttributes(attribute.String("from", from.String()), attribute.String("to", to.String()))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		WITH counts AS (
			SELECT username, COUNT(*) AS blogs
			FROM blog
			WHERE created_at >= $1 AND created_at < $2
			GROUP BY username
		)
		SELECT username, blogs
		FROM counts
		WHERE blogs = (SELECT MAX(blogs) FROM counts)
		ORDER BY username COLLATE "C"
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]UserCount, 0)
	for rows.Next() {
		var uc UserCount
		if err := rows.Scan(&uc.Username, &uc.Count); err != nil {
			return nil, err
		}
		result = append(result, uc)
	}
	return result, rows.Err()
}

func (r *Repo) NeverPosted(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.query.never-posted")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT u.username
		FROM users u
		WHERE NOT EXISTS (SELECT 1 FROM blog b WHERE b.username = u.username)
		ORDER BY u.username COLLATE "C"
	`)
	if err != nil {
		return nil, err
	}
	return scanUsernames(rows)
}

func (r *Repo) AllPositiveBlogs(ctx context.Context, username string) (_ []*blog.Blog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.query.all-positive-blogs")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+blog.BlogColumns+`
		FROM blog b
		WHERE b.username = $1
		  AND EXISTS (SELECT 1 FROM comment c WHERE c.blog_id = b.blog_id)
		  AND NOT EXISTS (
			SELECT 1 FROM comment c
			WHERE c.blog_id = b.blog_id AND c.sentiment = 'Negative'
		  )
		ORDER BY b.blog_id
	`, username)
	if err != nil {
		return nil, err
	}
	return blog.ScanBlogs(rows)
}

func (r *Repo) OnlyNegativeCommenters(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.query.only-negative-commenters")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT u.username
		FROM users u
		WHERE EXISTS (SELECT 1 FROM comment c WHERE c.username = u.username)
		  AND NOT EXISTS (
			SELECT 1 FROM comment c
			WHERE c.username = u.username AND c.sentiment <> 'Negative'
		  )
		ORDER BY u.username COLLATE "C"
	`)
	if err != nil {
		return nil, err
	}
	return scanUsernames(rows)
}

func (r *Repo) BlogsNeverNegative(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.query.blogs-never-negative")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT u.username
		FROM users u
		WHERE EXISTS (SELECT 1 FROM blog b WHERE b.username = u.username)
		  AND NOT EXISTS (
			SELECT 1
			FROM blog b
			JOIN comment c ON c.blog_id = b.blog_id
			WHERE b.username = u.username AND c.sentiment = 'Negative'
		  )
		ORDER BY u.username COLLATE "C"
	`)
	if err != nil {
		return nil, err
	}
	return scanUsernames(rows)
}

func scanUsernames(rows pgx.Rows) ([]string, error) {
	defer rows.Close()

	usernames := make([]string, 0)
	for rows.Next() {
		var username string
		if err := rows.Scan(&username); err != nil {
			return nil, err
		}
		usernames = append(usernames, username)
	}
	return usernames, rows.Err()
}
