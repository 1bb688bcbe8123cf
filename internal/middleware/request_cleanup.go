package middleware

import (
	"io"
	"net/http"
)

// DefaultMaxBodyBytes is plenty for a blog post with its tags.
const DefaultMaxBodyBytes = 64 << 10

// LimitAndDrainBody caps the request body at maxBodyBytes and, once the
// handler returns, drains and closes whatever is left of it so the connection
// can be reused.
func LimitAndDrainBody(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if r.Body != nil {
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
			}
		})
	}
}
