package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gameforge/auth-core/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Put(_ context.Context, session *domain.Session) error {
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *stubSessionStore) DeleteAllForUser(_ context.Context, userID string) error {
	for id, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return user, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func seedUser(repo *stubUserRepo, id, email, role string) *domain.User {
	user := &domain.User{ID: id, Email: email, Role: role}
	repo.users[id] = user
	return user
}

func TestSessionManager_CreateAndResolve(t *testing.T) {
	store := newStubSessionStore()
	users := newStubUserRepo()
	seedUser(users, "u1", "a@b.com", domain.RoleGuest)
	mgr := NewSessionManager(store, users, time.Hour)

	id, err := mgr.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(id) != 64 {
		t.Fatalf("expected 64 hex chars (256 bits), got %d", len(id))
	}

	user, err := mgr.Resolve(context.Background(), id)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("resolved wrong user: %+v", user)
	}
}

func TestSessionManager_IDsAreUnique(t *testing.T) {
	store := newStubSessionStore()
	users := newStubUserRepo()
	mgr := NewSessionManager(store, users, time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		id, err := mgr.Create(context.Background(), "u1")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id generated")
		}
		seen[id] = true
	}
}

func TestSessionManager_ResolveUnknown(t *testing.T) {
	mgr := NewSessionManager(newStubSessionStore(), newStubUserRepo(), time.Hour)

	if _, err := mgr.Resolve(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionManager_ResolveAfterRevoke(t *testing.T) {
	store := newStubSessionStore()
	users := newStubUserRepo()
	seedUser(users, "u1", "a@b.com", domain.RoleGuest)
	mgr := NewSessionManager(store, users, time.Hour)

	id, err := mgr.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := mgr.Revoke(context.Background(), id); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	if _, err := mgr.Resolve(context.Background(), id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after revoke, got %v", err)
	}
}

func TestSessionManager_RevokeUnknown(t *testing.T) {
	mgr := NewSessionManager(newStubSessionStore(), newStubUserRepo(), time.Hour)

	if err := mgr.Revoke(context.Background(), "nope"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionManager_ExpiredSessionRejected(t *testing.T) {
	store := newStubSessionStore()
	users := newStubUserRepo()
	seedUser(users, "u1", "a@b.com", domain.RoleGuest)
	mgr := NewSessionManager(store, users, time.Hour)

	id, err := mgr.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Move the clock past expiry; the store still holds the record.
	mgr.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	if _, err := mgr.Resolve(context.Background(), id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for expired session, got %v", err)
	}
	if _, ok := store.sessions[id]; ok {
		t.Fatalf("expired session should have been deleted from the store")
	}
}

func TestSessionManager_OrphanedSessionRejected(t *testing.T) {
	store := newStubSessionStore()
	users := newStubUserRepo()
	seedUser(users, "u1", "a@b.com", domain.RoleGuest)
	mgr := NewSessionManager(store, users, time.Hour)

	id, err := mgr.Create(context.Background(), "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = users.Delete(context.Background(), "u1")

	if _, err := mgr.Resolve(context.Background(), id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for orphaned session, got %v", err)
	}
}

func TestSessionManager_RevokeAllForUser(t *testing.T) {
	store := newStubSessionStore()
	users := newStubUserRepo()
	seedUser(users, "u1", "a@b.com", domain.RoleGuest)
	mgr := NewSessionManager(store, users, time.Hour)

	first, _ := mgr.Create(context.Background(), "u1")
	second, _ := mgr.Create(context.Background(), "u1")

	if err := mgr.RevokeAllForUser(context.Background(), "u1"); err != nil {
		t.Fatalf("revoke all: %v", err)
	}

	for _, id := range []string{first, second} {
		if _, err := mgr.Resolve(context.Background(), id); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	}
}
