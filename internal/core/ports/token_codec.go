package ports

import "github.com/gameforge/auth-core/internal/core/domain"

// TokenCodec signs and verifies the stateless client credentials. Verify is
// side-effect free; revocation is handled upstream by comparing the decoded
// version against the live APIClient record.
type TokenCodec interface {
	Sign(claims domain.ClientClaims) (string, error)
	Verify(token string) (domain.ClientClaims, error)
}
