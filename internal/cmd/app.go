package cmd

import (
	"context"

	"github.com/reftrack/refadmin/internal/api"
	"github.com/reftrack/refadmin/internal/config"
	"github.com/reftrack/refadmin/internal/errors"
	"github.com/reftrack/refadmin/internal/guard"
	"github.com/reftrack/refadmin/internal/log"
	"github.com/reftrack/refadmin/internal/session"
)

// app is the shared wiring every command runs on: config, logger, session
// store (initialized), and the API gateway with its auth-expired policy.
type app struct {
	cfg         *config.Config
	logger      *log.Logger
	store       *session.Store
	client      *api.Client
	authExpired chan struct{}
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := log.New(log.Config{
		Level:  log.ParseLevel(cfg.LogLevel),
		Format: log.ParseFormat(cfg.LogFormat),
		Output: log.DefaultConfig().Output,
	})

	dir, err := cfg.SessionDir()
	if err != nil {
		return nil, err
	}

	store := session.NewStore(session.NewFileStorage(dir), logger)
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, store, logger)

	// The gateway's unauthorized reaction: tear the session down and notify
	// whoever is driving the UI. The channel send is non-blocking so CLI
	// commands, which have no listener, are unaffected.
	authExpired := make(chan struct{}, 1)
	client.SetOnAuthExpired(func() {
		_ = store.Logout(context.Background())
		select {
		case authExpired <- struct{}{}:
		default:
		}
	})

	return &app{
		cfg:         cfg,
		logger:      logger,
		store:       store,
		client:      client,
		authExpired: authExpired,
	}, nil
}

// requireAccess applies the route guard before a command touches a
// protected resource.
func (a *app) requireAccess(req guard.Requirement) error {
	switch guard.Decide(a.store.Snapshot(), req) {
	case guard.RedirectLogin:
		return errors.New(errors.ErrCodeAuthRequired, "not logged in").
			WithSuggestion("run 'refadmin login' first")
	case guard.Deny:
		return errors.New(errors.ErrCodeAuthForbidden, "you don't have permission to access this resource")
	default:
		return nil
	}
}
