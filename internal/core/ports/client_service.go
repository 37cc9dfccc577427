package ports

import (
	"context"

	"github.com/gameforge/auth-core/internal/core/domain"
)

type ClientService interface {
	Create(ctx context.Context, name string) (*domain.APIClient, string, error)
	Invalidate(ctx context.Context, id string) error
}
