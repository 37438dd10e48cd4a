package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Mayank-jangid007/CouseHub/pkg/log"
)

var logger = log.ForComponent("auth")

// AuthListener is notified whenever a user signs in or out. A nil
// user means signed out.
type AuthListener func(u *User)

// Service implements account registration, sign-in, and session
// verification over a UserStore.
type Service struct {
	store  UserStore
	tokens *TokenIssuer

	mu        sync.Mutex
	listeners []AuthListener
}

func NewService(store UserStore, tokens *TokenIssuer) *Service {
	return &Service{store: store, tokens: tokens}
}

// OnAuthChange registers a listener for sign-in and sign-out events.
func (s *Service) OnAuthChange(fn AuthListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Service) notify(u *User) {
	s.mu.Lock()
	listeners := make([]AuthListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(u)
	}
}

// Register creates a local account and returns the user and a session
// token. Email comparisons are case-insensitive.
func (s *Service) Register(ctx context.Context, email, password, displayName string) (*User, string, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, "", fmt.Errorf("password must be at least 8 characters")
	}

	if _, err := s.store.UserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	u := &User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		Provider:     "local",
		Preferences:  DefaultPreferences(),
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	if err := s.store.SaveUser(ctx, u); err != nil {
		return nil, "", fmt.Errorf("saving user: %w", err)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	logger.Infof("registered %s", email)
	s.notify(u)
	return u, token, nil
}

// SignIn verifies credentials and returns the user and a session
// token. Wrong email and wrong password are indistinguishable to the
// caller.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, string, error) {
	email = normalizeEmail(email)
	u, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("looking up user: %w", err)
	}
	if len(u.PasswordHash) == 0 {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.store.UpdateLastLogin(ctx, u.UID, now); err != nil {
		logger.Warnf("updating last login for %s: %v", u.UID, err)
	}
	u.LastLoginAt = now

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}

	s.notify(u)
	return u, token, nil
}

// SignOut notifies listeners. Tokens are stateless, so the client
// discards its copy; nothing is revoked server-side.
func (s *Service) SignOut() {
	s.notify(nil)
}

// VerifyToken resolves a session token to its user.
func (s *Service) VerifyToken(ctx context.Context, token string) (*User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return s.store.UserByUID(ctx, claims.UID)
}

// UpdatePreferences persists new preferences for the user.
func (s *Service) UpdatePreferences(ctx context.Context, uid string, p Preferences) error {
	return s.store.UpdatePreferences(ctx, uid, p)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
