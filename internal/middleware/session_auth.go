package middleware

import (
	"errors"
	"net/http"

	"github.com/2beens/bloghub/internal/auth"
	"github.com/2beens/bloghub/internal/telemetry/tracing"
	"github.com/2beens/bloghub/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type SessionAuthHandler struct {
	sessions        auth.SessionReader
	protectedRoutes map[string]bool
}

// NewSessionAuthHandler creates the session middleware. Requests to the named
// routes are rejected unless they carry a valid session token.
func NewSessionAuthHandler(sessions auth.SessionReader, protectedRoutes ...string) *SessionAuthHandler {
	protected := make(map[string]bool, len(protectedRoutes))
	for _, name := range protectedRoutes {
		protected[name] = true
	}
	return &SessionAuthHandler{
		sessions:        sessions,
		protectedRoutes: protected,
	}
}

func (h *SessionAuthHandler) routeIsProtected(r *http.Request) bool {
	route := mux.CurrentRoute(r)
	if route == nil {
		return false
	}
	return h.protectedRoutes[route.GetName()]
}

// SessionAuth resolves the X-BLOG-TOKEN header to a username and stores it in
// the request context.
func (h *SessionAuthHandler) SessionAuth() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.session-auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				span.SetStatus(codes.Ok, "options-ok")
				next.ServeHTTP(w, r)
				return
			}

			protected := h.routeIsProtected(r)
			authToken := r.Header.Get(auth.TokenHeader)
			if authToken == "" {
				if protected {
					log.Tracef("[missing token] [session middleware] unauthorized => %s", r.URL.Path)
					pkg.WriteJSONError(w, "please log in first", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "missing-auth-token")
					return
				}
				span.SetStatus(codes.Ok, "anonymous")
				next.ServeHTTP(w, r)
				return
			}

			username, err := h.sessions.Username(ctx, authToken)
			switch {
			case err == nil:
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r.WithContext(auth.WithUsername(r.Context(), username)))
			case errors.Is(err, auth.ErrSessionNotFound):
				if protected {
					log.Tracef("[invalid token] [session middleware] unauthorized => %s", r.URL.Path)
					pkg.WriteJSONError(w, "session expired, please log in again", http.StatusUnauthorized)
					span.SetStatus(codes.Error, "not-logged")
					return
				}
				span.SetStatus(codes.Ok, "anonymous")
				next.ServeHTTP(w, r)
			default:
				span.RecordError(err)
				span.SetStatus(codes.Error, "session-lookup-err")
				if protected {
					log.Errorf("[failed session check] => %s: %s", r.URL.Path, err)
					pkg.WriteJSONError(w, "session store unavailable, try again", http.StatusServiceUnavailable)
					return
				}
				log.Warnf("[failed session check] => %s, serving anonymously: %s", r.URL.Path, err)
				next.ServeHTTP(w, r)
			}
		})
	}
}
