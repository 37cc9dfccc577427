package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/gameforge/auth-core/internal/core/domain"
	"github.com/gameforge/auth-core/internal/core/ports"
)

const clientInitialVersion = 1

// ClientService registers API clients and invalidates their tokens.
type ClientService struct {
	clients ports.ClientRepository
	codec   ports.TokenCodec
}

func NewClientService(clients ports.ClientRepository, codec ports.TokenCodec) *ClientService {
	return &ClientService{clients: clients, codec: codec}
}

// Create registers a client and returns it with a signed token for the
// current version. If signing fails the client row is removed again so no
// client ever exists without a deliverable credential.
func (s *ClientService) Create(ctx context.Context, name string) (*domain.APIClient, string, error) {
	client := &domain.APIClient{
		ID:        uuid.NewString(),
		Name:      name,
		Version:   clientInitialVersion,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.clients.Create(ctx, client)
	if err != nil {
		return nil, "", err
	}

	token, err := s.codec.Sign(domain.ClientClaims{ClientID: created.ID, Version: created.Version})
	if err != nil {
		_ = s.clients.Delete(ctx, created.ID)
		return nil, "", err
	}
	return created, token, nil
}

// Invalidate bumps the client's version, turning every outstanding token for
// it stale. The increment is atomic in the repository and reports a missing
// client as domain.ErrClientNotFound.
func (s *ClientService) Invalidate(ctx context.Context, id string) error {
	return s.clients.BumpVersion(ctx, id)
}
