package domain

import (
	"errors"
	"time"
)

var ErrClientNotFound = errors.New("api client not found")
var ErrTokenMalformed = errors.New("token malformed")
var ErrTokenSignature = errors.New("token signature invalid")

// APIClient is a registered service consumer. Version only ever grows:
// bumping it invalidates every token previously issued for the client.
type APIClient struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// ClientClaims is the payload carried by a signed client token. A token is
// accepted if and only if Version equals the live APIClient.Version; there
// is no time-based expiry.
type ClientClaims struct {
	ClientID string
	Version  int
}
