package auth

import "context"

//go:generate mockgen -source=$GOFILE -destination=../middleware/session_reader_mocks_test.go -package=middleware_test

type SessionReader interface {
	Username(ctx context.Context, token string) (string, error)
}

type usernameCtxKey struct{}

func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameCtxKey{}, username)
}

func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameCtxKey{}).(string)
	return username, ok && username != ""
}
