package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/bloghub/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	sessionKeyPrefix = "session:"
	TokenHeader      = "X-BLOG-TOKEN"
)

var ErrSessionNotFound = errors.New("session not found")

var _ SessionReader = (*SessionStore)(nil)

// SessionStore reads sessions created by the auth service.
// A session is a redis key session:<token> holding the username, expiring with the session.
type SessionStore struct {
	redisClient *redis.Client
}

func NewSessionStore(redisClient *redis.Client) *SessionStore {
	return &SessionStore{
		redisClient: redisClient,
	}
}

func (s *SessionStore) Username(ctx context.Context, token string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.session.username")
	defer func() {
		tracing.EndSpan(span, err)
	}()

	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrSessionNotFound
	}

	username, err := s.redisClient.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	if username == "" {
		return "", ErrSessionNotFound
	}

	span.SetAttributes(attribute.String("username", username))
	return username, nil
}

// Put stores a session. Used by the seeder to hand out development tokens.
func (s *SessionStore) Put(ctx context.Context, token, username string, ttl time.Duration) error {
	if token == "" || username == "" {
		return errors.New("token and username must not be empty")
	}
	if err := s.redisClient.Set(ctx, sessionKeyPrefix+token, username, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	log.Tracef("session for [%s] stored, ttl %s", username, ttl)
	return nil
}
