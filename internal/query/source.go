package query

import (
	"context"
	"time"

	"github.com/2beens/bloghub/internal/blog"
)

//go:generate mockgen -source=$GOFILE -destination=source_mocks_test.go -package=query_test

// Source runs the analytical queries against a storage snapshot.
// Tags passed in are already normalized. All results are sorted:
// users by username, blogs by blog_id.
type Source interface {
	// SameDayTagPair returns users having two distinct blogs on the same
	// UTC day, one tagged tagA and the other tagged tagB.
	SameDayTagPair(ctx context.Context, tagA, tagB string) ([]string, error)
	// MostBlogsBetween returns the users with the highest blog count in
	// [from, to), ties included. Empty when nobody posted.
	MostBlogsBetween(ctx context.Context, from, to time.Time) ([]UserCount, error)
	NeverPosted(ctx context.Context) ([]string, error)
	// AllPositiveBlogs returns the user's blogs having at least one
	// comment, all of them positive.
	AllPositiveBlogs(ctx context.Context, username string) ([]*blog.Blog, error)
	// OnlyNegativeCommenters returns users with at least one comment,
	// all of them negative.
	OnlyNegativeCommenters(ctx context.Context) ([]string, error)
	// BlogsNeverNegative returns users with at least one blog, none of
	// which has a negative comment.
	BlogsNeverNegative(ctx context.Context) ([]string, error)
}

type UserCount struct {
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// MostBlogsResult holds the top posters of a UTC day, ties included.
// Users is empty when nobody posted on the date.
type MostBlogsResult struct {
	Date  string      `json:"date"`
	Users []UserCount `json:"users"`
}
