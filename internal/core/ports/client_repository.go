package ports

import (
	"context"

	"github.com/gameforge/auth-core/internal/core/domain"
)

// ClientRepository defines the persistence boundary for API clients.
// BumpVersion must increment atomically so concurrent invalidations never
// lose an increment.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.APIClient) (*domain.APIClient, error)
	FindByID(ctx context.Context, id string) (*domain.APIClient, error)
	BumpVersion(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
