package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gameforge/auth-core/internal/core/domain"
	"github.com/gameforge/auth-core/internal/core/ports"
)

const sessionIDBytes = 32 // 256 bits of entropy

// SessionManager issues opaque session identifiers, resolves them to users
// and revokes them. Expiry is enforced both by the store's TTL and by an
// explicit timestamp check at resolve time.
type SessionManager struct {
	store ports.SessionStore
	users ports.UserRepository
	ttl   time.Duration
	now   func() time.Time
}

func NewSessionManager(store ports.SessionStore, users ports.UserRepository, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{store: store, users: users, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime, used by handlers to size the cookie max-age.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) Create(ctx context.Context, userID string) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	now := m.now().UTC()
	session := &domain.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Put(ctx, session); err != nil {
		return "", fmt.Errorf("persist session: %w", err)
	}
	return id, nil
}

// Resolve looks up the session and joins to its owning user. Expired,
// revoked and never-issued identifiers are indistinguishable to the caller.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (*domain.User, error) {
	session, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Expired(m.now().UTC()) {
		_ = m.store.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}

	user, err := m.users.FindByID(ctx, session.UserID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Orphaned session: the user was deleted out from under it.
			_ = m.store.Delete(ctx, sessionID)
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return user, nil
}

func (m *SessionManager) Revoke(ctx context.Context, sessionID string) error {
	return m.store.Delete(ctx, sessionID)
}

func (m *SessionManager) RevokeAllForUser(ctx context.Context, userID string) error {
	return m.store.DeleteAllForUser(ctx, userID)
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
