package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is one active login. The ID is an opaque bearer capability
// (256 bits of entropy, hex encoded), unrelated in format to the signed
// client tokens.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at instant now.
// Stores with native TTL drop expired sessions on their own; this check
// covers the window between expiry and eviction.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
