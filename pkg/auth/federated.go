package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// FederatedProvider names an external identity provider.
type FederatedProvider string

const (
	Google FederatedProvider = "google"
	GitHub FederatedProvider = "github"
)

// OAuthCredentials configures one federated provider.
type OAuthCredentials struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Federated handles the OAuth authorization-code flow for the
// supported identity providers.
type Federated struct {
	configs map[FederatedProvider]*oauth2.Config
}

// NewFederated wires the given credentials. Providers with empty
// client ids are left unconfigured and rejected at URL time.
func NewFederated(google, github OAuthCredentials) *Federated {
	f := &Federated{configs: make(map[FederatedProvider]*oauth2.Config)}
	if google.ClientID != "" {
		f.configs[Google] = &oauth2.Config{
			ClientID:     google.ClientID,
			ClientSecret: google.ClientSecret,
			RedirectURL:  google.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     endpoints.Google,
		}
	}
	if github.ClientID != "" {
		f.configs[GitHub] = &oauth2.Config{
			ClientID:     github.ClientID,
			ClientSecret: github.ClientSecret,
			RedirectURL:  github.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     endpoints.GitHub,
		}
	}
	return f
}

// ErrProviderNotConfigured is returned when a flow is requested for a
// provider without credentials.
var ErrProviderNotConfigured = errors.New("oauth provider not configured")

// AuthURL returns the provider's consent page URL for the given CSRF
// state token.
func (f *Federated) AuthURL(provider FederatedProvider, state string) (string, error) {
	cfg, ok := f.configs[provider]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrProviderNotConfigured, provider)
	}
	return cfg.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// Identity is the profile fetched from a provider after consent.
type Identity struct {
	Email       string
	DisplayName string
	Provider    FederatedProvider
}

// Exchange trades an authorization code for the user's identity.
func (f *Federated) Exchange(ctx context.Context, provider FederatedProvider, code string) (*Identity, error) {
	cfg, ok := f.configs[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, provider)
	}

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging code: %w", err)
	}

	client := cfg.Client(ctx, token)
	switch provider {
	case Google:
		return fetchGoogleIdentity(ctx, client)
	case GitHub:
		return fetchGitHubIdentity(ctx, client)
	}
	return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, provider)
}

func fetchGoogleIdentity(ctx context.Context, client *http.Client) (*Identity, error) {
	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := fetchJSON(ctx, client, "https://www.googleapis.com/oauth2/v2/userinfo", &profile); err != nil {
		return nil, err
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}
	return &Identity{Email: profile.Email, DisplayName: profile.Name, Provider: Google}, nil
}

func fetchGitHubIdentity(ctx context.Context, client *http.Client) (*Identity, error) {
	var profile struct {
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}
	if err := fetchJSON(ctx, client, "https://api.github.com/user", &profile); err != nil {
		return nil, err
	}

	name := profile.Name
	if name == "" {
		name = profile.Login
	}
	if profile.Email == "" {
		// Email hidden on the profile; ask the emails endpoint.
		var emails []struct {
			Email   string `json:"email"`
			Primary bool   `json:"primary"`
		}
		if err := fetchJSON(ctx, client, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, err
		}
		for _, e := range emails {
			if e.Primary {
				profile.Email = e.Email
				break
			}
		}
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("github profile has no usable email")
	}
	return &Identity{Email: profile.Email, DisplayName: name, Provider: GitHub}, nil
}

func fetchJSON(ctx context.Context, client *http.Client, url string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("fetching %s: status %d: %s", url, resp.StatusCode, body)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// CompleteFederated finds or creates the account for a federated
// identity and returns the user and a session token.
func (s *Service) CompleteFederated(ctx context.Context, id *Identity) (*User, string, error) {
	email := normalizeEmail(id.Email)
	u, err := s.store.UserByEmail(ctx, email)
	switch {
	case errors.Is(err, ErrUserNotFound):
		now := time.Now()
		u = &User{
			UID:         uuid.NewString(),
			Email:       email,
			DisplayName: id.DisplayName,
			Provider:    string(id.Provider),
			Preferences: DefaultPreferences(),
			CreatedAt:   now,
			LastLoginAt: now,
		}
		if err := s.store.SaveUser(ctx, u); err != nil {
			return nil, "", fmt.Errorf("saving user: %w", err)
		}
		logger.Infof("created account for %s via %s", email, id.Provider)
	case err != nil:
		return nil, "", fmt.Errorf("looking up user: %w", err)
	default:
		now := time.Now()
		if err := s.store.UpdateLastLogin(ctx, u.UID, now); err != nil {
			logger.Warnf("updating last login for %s: %v", u.UID, err)
		}
		u.LastLoginAt = now
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	s.notify(u)
	return u, token, nil
}
