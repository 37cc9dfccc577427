package ports

import (
	"context"

	"github.com/gameforge/auth-core/internal/core/domain"
)

// SessionManager issues, resolves and revokes login sessions.
type SessionManager interface {
	Create(ctx context.Context, userID string) (string, error)
	Resolve(ctx context.Context, sessionID string) (*domain.User, error)
	Revoke(ctx context.Context, sessionID string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
