// Package auth provides account management: local email/password
// accounts, federated sign-in via OAuth providers, and stateless
// session tokens.
package auth

import (
	"context"
	"errors"
	"time"
)

// Preferences are per-user display and notification settings.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
	EmailUpdates  bool   `json:"email_updates"`
}

// DefaultPreferences returns the settings applied to new accounts.
func DefaultPreferences() Preferences {
	return Preferences{Theme: "system", Notifications: true, EmailUpdates: false}
}

// User is an account. PasswordHash is empty for federated-only
// accounts and never serialized.
type User struct {
	UID          string      `json:"uid"`
	Email        string      `json:"email"`
	DisplayName  string      `json:"display_name"`
	PasswordHash []byte      `json:"-"`
	Provider     string      `json:"provider"`
	Preferences  Preferences `json:"preferences"`
	CreatedAt    time.Time   `json:"created_at"`
	LastLoginAt  time.Time   `json:"last_login_at"`
}

// Sentinel errors for account operations.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserStore persists accounts. The sqlite implementation lives in the
// store package; tests use in-memory stubs.
type UserStore interface {
	SaveUser(ctx context.Context, u *User) error
	UserByEmail(ctx context.Context, email string) (*User, error)
	UserByUID(ctx context.Context, uid string) (*User, error)
	UpdateLastLogin(ctx context.Context, uid string, at time.Time) error
	UpdatePreferences(ctx context.Context, uid string, p Preferences) error
}
