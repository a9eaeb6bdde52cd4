package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/tokengen/internal/models"
	"github.com/desertthunder/tokengen/internal/repositories"
	"github.com/desertthunder/tokengen/internal/server"
	"github.com/desertthunder/tokengen/internal/shared"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// Serve starts the web application and blocks until SIGINT/SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.IsSet("host") {
		config.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		config.Server.Port = int(cmd.Int("port"))
	}
	if err := shared.SetLogLevel(r.logger, cmd.String("log-level")); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, store, closeStore, err := r.buildApp(ctx, config)
	if err != nil {
		return err
	}
	defer closeStore()

	httpServer := &http.Server{
		Addr:              config.Server.Addr(),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go r.pruneSessions(ctx, store, config.Session.IdleTimeout())

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting server", "addr", httpServer.Addr, "redirect_uri", config.Server.RedirectURI, "sessions", config.Session.Backend)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}
	return nil
}

// buildApp validates config and wires store, session manager, provider and router.
// The returned func releases the store.
func (r *Runner) buildApp(ctx context.Context, config *shared.Config) (*server.App, models.SessionStore, func(), error) {
	if err := config.ValidateServer(); err != nil {
		return nil, nil, nil, err
	}

	store, closeStore, err := r.openStore(ctx, config)
	if err != nil {
		return nil, nil, nil, err
	}

	fail := func(err error) (*server.App, models.SessionStore, func(), error) {
		closeStore()
		return nil, nil, nil, err
	}

	spotify, err := r.spotify(config)
	if err != nil {
		return fail(err)
	}

	sessions, err := server.NewSessionManager(server.SessionOpts{
		Store:      store,
		Secret:     config.Server.SecretKey,
		CookieName: config.Session.CookieName,
		Secure:     config.Session.SecureCookie,
		Idle:       config.Session.IdleTimeout(),
		Logger:     r.logger,
	})
	if err != nil {
		return fail(err)
	}

	app, err := server.New(server.AppOpts{
		Provider:    spotify,
		Sessions:    sessions,
		RedirectURI: config.Server.RedirectURI,
		Logger:      r.logger,
	})
	if err != nil {
		return fail(err)
	}

	return app, store, closeStore, nil
}

// openStore builds the configured session backend.
func (r *Runner) openStore(ctx context.Context, config *shared.Config) (models.SessionStore, func(), error) {
	idle := config.Session.IdleTimeout()

	switch config.Session.Backend {
	case shared.BackendSQLite:
		db, err := shared.NewDatabase(config.Database)
		if err != nil {
			return nil, nil, err
		}
		return repositories.NewSQLiteSessionStore(db, idle, nil), func() { db.Close() }, nil
	case shared.BackendRedis:
		store, err := repositories.NewRedisSessionStore(ctx, config.Redis, idle)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	case shared.BackendMemory, "":
		return repositories.NewMemorySessionStore(idle, nil), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown session backend %q", shared.ErrInvalidConfig, config.Session.Backend)
	}
}

// pruneSessions drops expired sessions every idle/2 until ctx is done.
func (r *Runner) pruneSessions(ctx context.Context, store models.SessionStore, idle time.Duration) {
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.Prune(ctx)
			if err != nil {
				r.logger.Warn("failed to prune sessions", "error", err)
				continue
			}
			if n > 0 {
				r.logger.Debug("pruned expired sessions", "count", n)
			}
		}
	}
}
