// Package app wires configuration, credentials, the API client and the
// MCP server into a running process.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"slides/internal/auth"
	"slides/internal/config"
	mcpserver "slides/internal/mcp"
	"slides/internal/secret"
	"slides/internal/service"
	"slides/internal/slidesapi"
	"slides/internal/storage"
)

// Tokens is the stored-credential provider backed by the configured
// secret store.
type Tokens struct {
	*auth.FileProvider
	db *storage.DB // nil unless the sqlite store is used
}

// OpenTokens opens the token store selected by cfg.TokenStore.
func OpenTokens(cfg *config.Config, logger *slog.Logger) (*Tokens, error) {
	var (
		store secret.SecretStore
		db    *storage.DB
	)
	switch cfg.TokenStore {
	case config.StoreKeychain:
		store = secret.NewKeychainStore()
	case config.StoreMemory:
		store = secret.NewMemoryStore()
	default:
		var err error
		if db, err = storage.New(cfg.DBPath()); err != nil {
			return nil, fmt.Errorf("open token database: %w", err)
		}
		store = storage.NewSecretStore(db)
	}
	provider := auth.NewFileProvider(store, auth.DefaultUserKey, auth.FileConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
	}, logger)
	return &Tokens{FileProvider: provider, db: db}, nil
}

func (t *Tokens) Close() error {
	if t.db == nil {
		return nil
	}
	return t.db.Close()
}

// App is one configured server process.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	tokens *Tokens
	server *mcpserver.Server
}

// New builds the process graph. Nothing is started until Run.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	tokens, err := OpenTokens(cfg, logger)
	if err != nil {
		return nil, err
	}

	// A bearer token on the HTTP request wins over the stored credential.
	creds := auth.Chain{auth.ContextProvider{}, tokens.FileProvider}
	client, err := slidesapi.New(slidesapi.Config{
		SlidesBaseURL: cfg.SlidesBaseURL,
		DriveBaseURL:  cfg.DriveBaseURL,
		Timeout:       cfg.HTTPTimeout,
	}, creds, logger)
	if err != nil {
		tokens.Close()
		return nil, err
	}

	notifier := mcpserver.NewNotifier()
	svc := service.NewSlidesService(client, client, notifier, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		tokens: tokens,
		server: mcpserver.New(mcpserver.Deps{
			Service:  svc,
			Notifier: notifier,
			Logger:   logger,
		}),
	}, nil
}

// Run starts the credential watcher, the refresh schedule and the
// configured transport, and blocks until ctx is cancelled or the
// transport stops.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := auth.NewFileWatcher(a.cfg.CredentialsFile, a.tokens.FileProvider, a.logger)
	go func() {
		if err := watcher.Run(ctx); err != nil {
			a.logger.Warn("credentials watcher stopped", "err", err)
		}
	}()

	refresher, err := auth.NewRefresher(a.cfg.RefreshSchedule, a.tokens.FileProvider, a.logger)
	if err != nil {
		return err
	}
	refresher.Start()
	defer refresher.Stop()

	a.logger.Info("server starting", "transport", a.cfg.Transport, "token_store", a.cfg.TokenStore)
	switch a.cfg.Transport {
	case config.TransportHTTP:
		err = a.serveHTTP(ctx)
	default:
		err = a.server.ServeStdio(ctx)
	}
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return err
}

func (a *App) Close() error {
	return a.tokens.Close()
}
