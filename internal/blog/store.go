package blog

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=blog_test

// Store persists blogs and comments. Implementations must return errors
// wrapping errs.ErrNotFound for missing blogs.
type Store interface {
	// InUserTx runs fn as one atomic unit, serialized against all other
	// InUserTx calls for the same username.
	InUserTx(ctx context.Context, username string, fn func(tx Tx) error) error

	GetBlog(ctx context.Context, id int64) (*Blog, error)
	// CommentsForBlog returns comments ordered by (created_at, comment_id).
	CommentsForBlog(ctx context.Context, blogID int64) ([]*Comment, error)
	// SearchByTag and BlogsByUser return blogs newest first.
	SearchByTag(ctx context.Context, tag string) ([]*Blog, error)
	BlogsByUser(ctx context.Context, username string) ([]*Blog, error)
}

// Tx is the view of the store inside a user critical section.
type Tx interface {
	CountBlogsBetween(ctx context.Context, username string, from, to time.Time) (int, error)
	CountCommentsBetween(ctx context.Context, username string, from, to time.Time) (int, error)
	HasCommented(ctx context.Context, username string, blogID int64) (bool, error)
	BlogExists(ctx context.Context, blogID int64) (bool, error)
	// InsertBlog and InsertComment assign the new ID to the given entity.
	InsertBlog(ctx context.Context, b *Blog) error
	InsertComment(ctx context.Context, c *Comment) error
}

type UserDirectory interface {
	UserExists(ctx context.Context, username string) (bool, error)
}
