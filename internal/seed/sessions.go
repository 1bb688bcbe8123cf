package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type SessionWriter interface {
	Put(ctx context.Context, token, username string, ttl time.Duration) error
}

// IssueSessions creates a session token for each of the given users, so the
// write endpoints can be tried out against seeded data.
func IssueSessions(ctx context.Context, sessions SessionWriter, usernames []string, ttl time.Duration) (map[string]string, error) {
	tokens := make(map[string]string, len(usernames))
	for _, username := range usernames {
		token := uuid.NewString()
		if err := sessions.Put(ctx, token, username, ttl); err != nil {
			return nil, fmt.Errorf("put session for %s: %w", username, err)
		}
		tokens[username] = token
	}
	return tokens, nil
}
