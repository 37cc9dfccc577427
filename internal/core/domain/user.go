package domain

import (
	"errors"
	"time"
)

const (
	RoleGuest = "GUEST"
	RoleAdmin = "ADMIN"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmailTaken = errors.New("email already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")

// User models a human account. PasswordHash carries the bcrypt digest and
// never crosses the API boundary: the json tag enforces the projection on
// every response path.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return s == RoleGuest || s == RoleAdmin
}
