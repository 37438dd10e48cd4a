package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v3"

	"github.com/Mayank-jangid007/CouseHub/pkg/api"
	"github.com/Mayank-jangid007/CouseHub/pkg/auth"
	"github.com/Mayank-jangid007/CouseHub/pkg/config"
	"github.com/Mayank-jangid007/CouseHub/pkg/core"
	"github.com/Mayank-jangid007/CouseHub/pkg/log"
	"github.com/Mayank-jangid007/CouseHub/pkg/providers/roadmaps"
	"github.com/Mayank-jangid007/CouseHub/pkg/realtime"
	"github.com/Mayank-jangid007/CouseHub/pkg/search"
	"github.com/Mayank-jangid007/CouseHub/pkg/store"
	"github.com/Mayank-jangid007/CouseHub/pkg/suggest"
	"github.com/Mayank-jangid007/CouseHub/pkg/summary"
	"github.com/Mayank-jangid007/CouseHub/pkg/trending"
)

var serveLogger = log.ForComponent("serve")

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API server",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"))
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	registry := core.GetGlobalRegistry()
	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return fmt.Errorf("creating providers: %w", err)
	}
	defer func() { _ = registry.Close() }()

	if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}
	st, err := store.Open(filepath.Join(cfg.StorageDir, "coursehub.db"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	deps := api.Deps{
		Search:     search.NewService(registry, cfg.RequestTimeout.Duration),
		Suggest:    suggest.NewIndex(),
		Trending:   trending.NewService(registry),
		Store:      st,
		Summarizer: summary.NewClient(cfg.Summary.APIKey, cfg.Summary.Endpoint, cfg.Summary.Model),
		Hub:        realtime.NewHub(0),
	}

	if rm, err := roadmaps.NewProvider("roadmaps", nil); err == nil {
		deps.Roadmaps = rm.(*roadmaps.Provider)
	} else {
		serveLogger.Errorf("loading roadmaps: %v", err)
	}

	if cfg.JWTSecret != "" {
		deps.Auth = auth.NewService(st, auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL.Duration))
		deps.Federated = auth.NewFederated(
			auth.OAuthCredentials(cfg.OAuth.Google),
			auth.OAuthCredentials(cfg.OAuth.GitHub),
		)
	} else {
		serveLogger.Warnf("jwt_secret not set, auth endpoints disabled")
	}

	refresher := trending.NewRefresher(deps.Trending, trending.DefaultRefreshInterval)
	refresher.Start(ctx)
	defer refresher.Stop()

	mux := http.NewServeMux()
	server := api.NewServer(deps)
	server.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.CorsMiddleware(api.GzipMiddleware(mux)),
	}

	errCh := make(chan error, 1)
	go func() {
		serveLogger.Infof("listening on %s", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// SIGHUP and config file edits both trigger a provider reload.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigCh)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()
	if err := watcher.Add(configPath); err != nil {
		serveLogger.Warnf("watching config: %v", err)
	}

	fmt.Println("Server started. Press Ctrl+C to stop, send SIGHUP to reload, or edit the config file for automatic reload.")

	for {
		select {
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)

		case sig := <-sigCh:
			if sig == syscall.SIGHUP {
				serveLogger.Infof("received SIGHUP, reloading providers")
				if err := reloadProviders(configPath, registry); err != nil {
					serveLogger.Errorf("reload failed: %v", err)
				}
				continue
			}
			serveLogger.Infof("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)

		case event, ok := <-watcher.Events:
			if !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				// Editors often replace the file; re-add the watch.
				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					_ = watcher.Add(configPath)
				}
				serveLogger.Infof("config changed, reloading providers")
				if err := reloadProviders(configPath, registry); err != nil {
					serveLogger.Errorf("reload failed: %v", err)
				}
			}

		case err, ok := <-watcher.Errors:
			if ok {
				serveLogger.Warnf("config watcher: %v", err)
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		}
	}
}

// reloadProviders re-reads the config and reconciles the registry:
// new providers are added, removed ones closed, existing ones get
// their config reapplied.
func reloadProviders(configPath string, registry *core.Registry) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	configured := make(map[string]bool)
	for _, name := range cfg.ListProviders() {
		configured[name] = true
	}
	for _, name := range registry.ListProviders() {
		if !configured[name] {
			serveLogger.Infof("removing provider %s", name)
			if err := registry.RemoveProvider(name); err != nil {
				serveLogger.Warnf("removing provider %s: %v", name, err)
			}
		}
	}

	if err := createProvidersFromConfig(registry, cfg); err != nil {
		return fmt.Errorf("recreating providers: %w", err)
	}
	serveLogger.Infof("providers reloaded: %v", registry.ListProviders())
	return nil
}
