package ports

import (
	"context"

	"github.com/gameforge/auth-core/internal/core/domain"
)

// SessionStore defines the persistence boundary for login sessions.
// Implementations may expire entries on their own (TTL); callers must still
// treat a returned session as potentially expired.
type SessionStore interface {
	Put(ctx context.Context, session *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteAllForUser(ctx context.Context, userID string) error
}
