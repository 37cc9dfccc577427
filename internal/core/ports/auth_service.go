package ports

import (
	"context"

	"github.com/gameforge/auth-core/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	UpdateUser(ctx context.Context, id, email, password string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
