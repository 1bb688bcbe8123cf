package users

import (
	"context"
	"fmt"

	"github.com/2beens/bloghub/internal/errs"
	"github.com/2beens/bloghub/internal/telemetry/tracing"
	"github.com/2beens/bloghub/pkg"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	_ Directory    = (*Repo)(nil)
	_ FollowReader = (*Repo)(nil)
)

// Repo reads users and follow edges. Both are owned by the registration
// and social services; Add and AddFollow exist for seeding.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) UserExists(ctx context.Context, username string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.exists")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *Repo) Following(ctx context.Context, username string) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.following")
	span.SetAttributes(attribute.String("username", username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT followee FROM follow
		WHERE follower = $1
		ORDER BY followee COLLATE "C"
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	following := make([]string, 0)
	for rows.Next() {
		var followee string
		if err := rows.Scan(&followee); err != nil {
			return nil, err
		}
		following = append(following, followee)
	}
	return following, rows.Err()
}

func (r *Repo) Usernames(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.usernames")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT username FROM users ORDER BY username COLLATE "C"`)
	if err != nil {
		return nil, err
	}
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

// AddUser inserts the user, doing nothing if the username is taken.
func (r *Repo) AddUser(ctx context.Context, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add")
	span.SetAttributes(attribute.String("username", user.Username))
	defer func() {
		tracing.EndSpan(span, err)
	}()

	if user.Username == "" {
		return errs.Validation("username", "must not be empty")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO users (username, first_name, last_name, email, phone)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO NOTHING
	`,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Phone,
	)
	return err
}

// AddFollow inserts the follow edge, doing nothing if it exists already.
func (r *Repo) AddFollow(ctx context.Context, follower, followee string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.add-follow")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	if follower == followee {
		return errs.Validation("followee", "users cannot follow themselves")
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO follow (follower, followee)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, follower, followee)
	if pkg.IsForeignKeyViolationError(err) {
		return errs.NotFoundf("user %s or %s", follower, followee)
	}
	if err != nil {
		return fmt.Errorf("add follow: %w", err)
	}
	return nil
}
