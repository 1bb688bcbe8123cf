package users

import (
	"context"
	"slices"
)

type User struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

//go:generate mockgen -source=$GOFILE -destination=user_mocks_test.go -package=users_test

type Directory interface {
	UserExists(ctx context.Context, username string) (bool, error)
}

type FollowReader interface {
	// Following returns the usernames the user follows, sorted.
	Following(ctx context.Context, username string) ([]string, error)
}

// Intersect returns the sorted usernames present in both a and b.
func Intersect(a, b []string) []string {
	set := make(map[string]struct{}, len(a))
	for _, u := range a {
		set[u] = struct{}{}
	}
	both := make([]string, 0)
	for _, u := range b {
		if _, ok := set[u]; ok {
			both = append(both, u)
			delete(set, u)
		}
	}
	slices.Sort(both)
	return both
}
