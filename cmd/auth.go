package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/store"
)

// AuthCommand creates the auth command and its subcommands
func AuthCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the local account session",
		Commands: []*cli.Command{
			{
				Name:      "register",
				Usage:     "Create an account",
				ArgsUsage: "<email> <password> [display name]",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() < 2 {
						return fmt.Errorf("usage: auth register <email> <password> [display name]")
					}
					return runRegister(ctx, c.String("config"),
						c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
				},
			},
			{
				Name:      "login",
				Usage:     "Sign in and cache a session token",
				ArgsUsage: "<email> <password>",
				Action: func(ctx context.Context, c *cli.Command) error {
					if c.Args().Len() < 2 {
						return fmt.Errorf("usage: auth login <email> <password>")
					}
					return runLogin(ctx, c.String("config"), c.Args().Get(0), c.Args().Get(1))
				},
			},
			{
				Name:  "logout",
				Usage: "Discard the cached session token",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runLogout()
				},
			},
			{
				Name:  "whoami",
				Usage: "Show the signed-in account",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runWhoami(ctx, c.String("config"))
				},
			},
		},
	}
}

// openAuth wires the auth service over the local store. Callers must
// close the returned store.
func openAuth(configPath string) (*auth.Service, *store.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, nil, fmt.Errorf("jwt_secret not set in config")
	}

	st, err := store.Open(filepath.Join(cfg.StorageDir, "coursehub.db"))
	if err != nil {
		return nil, nil, fmt.Errorf("opening store: %w", err)
	}
	return auth.NewService(st, auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL.Duration)), st, nil
}

func tokenPath() (string, error) {
	dir, err := config.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "token"), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token), 0600)
}

func loadToken() (string, error) {
	path, err := tokenPath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func runRegister(ctx context.Context, configPath, email, password, displayName string) error {
	svc, st, err := openAuth(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	u, token, err := svc.Register(ctx, email, password, displayName)
	if err != nil {
		return err
	}
	if err := saveToken(token); err != nil {
		return fmt.Errorf("caching token: %w", err)
	}
	fmt.Printf("Registered %s\n", u.Email)
	return nil
}

func runLogin(ctx context.Context, configPath, email, password string) error {
	svc, st, err := openAuth(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	u, token, err := svc.SignIn(ctx, email, password)
	if err != nil {
		return err
	}
	if err := saveToken(token); err != nil {
		return fmt.Errorf("caching token: %w", err)
	}
	fmt.Printf("Signed in as %s\n", u.Email)
	return nil
}

func runLogout() error {
	path, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token: %w", err)
	}
	fmt.Println("Signed out")
	return nil
}

func runWhoami(ctx context.Context, configPath string) error {
	token, err := loadToken()
	if err != nil {
		return fmt.Errorf("not signed in")
	}

	svc, st, err := openAuth(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	u, err := svc.VerifyToken(ctx, token)
	if err != nil {
		return fmt.Errorf("session expired, sign in again")
	}
	fmt.Printf("%s (%s)\n", u.Email, u.DisplayName)
	fmt.Println(metaStyle.Render("member since " + u.CreatedAt.Format("Jan 2, 2006")))
	return nil
}

// currentUser resolves the cached token to a user over an open store.
func currentUser(ctx context.Context, svc *auth.Service) (*auth.User, error) {
	token, err := loadToken()
	if err != nil {
		return nil, fmt.Errorf("not signed in")
	}
	u, err := svc.VerifyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session expired, sign in again")
	}
	return u, nil
}
