package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gameforge/auth-core/internal/core/domain"
)

func newAuthFixture() (*AuthService, *stubUserRepo, *stubSessionStore) {
	users := newStubUserRepo()
	store := newStubSessionStore()
	sessions := NewSessionManager(store, users, time.Hour)
	return NewAuthService(users, sessions), users, store
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	svc, users, _ := newAuthFixture()

	user, err := svc.Register(context.Background(), "a@b.com", "secret12")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.PasswordHash == "secret12" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret12")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleGuest {
		t.Fatalf("new accounts must start as GUEST, got %s", user.Role)
	}

	stored, err := users.FindByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if stored.PasswordHash == "secret12" {
		t.Fatalf("repository holds plaintext password")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "a@b.com", "secret12"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "a@b.com", "other123"); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _ = svc.Register(context.Background(), "a@b.com", "secret12")

	user, sessionID, err := svc.Login(context.Background(), "a@b.com", "secret12")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sessionID == "" {
		t.Fatalf("expected session id")
	}
	if user.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_ErrorShapeDoesNotEnumerate(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _ = svc.Register(context.Background(), "a@b.com", "secret12")

	_, _, wrongPassword := svc.Login(context.Background(), "a@b.com", "badpass1")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@b.com", "whatever")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("error shapes differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _ = svc.Register(context.Background(), "a@b.com", "secret12")
	_, sessionID, _ := svc.Login(context.Background(), "a@b.com", "secret12")

	if err := svc.Logout(context.Background(), sessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(context.Background(), sessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("second logout: expected ErrSessionNotFound, got %v", err)
	}
}

func TestAuthService_UpdateUser_PasswordChangeRevokesSessions(t *testing.T) {
	svc, _, store := newAuthFixture()
	user, _ := svc.Register(context.Background(), "a@b.com", "secret12")
	_, first, _ := svc.Login(context.Background(), "a@b.com", "secret12")
	_, second, _ := svc.Login(context.Background(), "a@b.com", "secret12")

	if _, err := svc.UpdateUser(context.Background(), user.ID, "", "newpass99"); err != nil {
		t.Fatalf("update: %v", err)
	}

	for _, id := range []string{first, second} {
		if _, ok := store.sessions[id]; ok {
			t.Fatalf("session survived a password change")
		}
	}

	if _, _, err := svc.Login(context.Background(), "a@b.com", "secret12"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password still accepted: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.com", "newpass99"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}

func TestAuthService_UpdateUser_EmailOnlyKeepsSessions(t *testing.T) {
	svc, _, store := newAuthFixture()
	user, _ := svc.Register(context.Background(), "a@b.com", "secret12")
	_, sessionID, _ := svc.Login(context.Background(), "a@b.com", "secret12")

	updated, err := svc.UpdateUser(context.Background(), user.ID, "new@b.com", "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Email != "new@b.com" {
		t.Fatalf("email not updated: %+v", updated)
	}
	if _, ok := store.sessions[sessionID]; !ok {
		t.Fatalf("email-only update must not revoke sessions")
	}
}

func TestAuthService_DeleteUser_RemovesSessions(t *testing.T) {
	svc, users, store := newAuthFixture()
	user, _ := svc.Register(context.Background(), "a@b.com", "secret12")
	_, sessionID, _ := svc.Login(context.Background(), "a@b.com", "secret12")

	if err := svc.DeleteUser(context.Background(), user.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := users.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present: %v", err)
	}
	if _, ok := store.sessions[sessionID]; ok {
		t.Fatalf("session survived account deletion")
	}
}
