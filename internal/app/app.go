package app

import (
	"context"
	"fmt"
	stdhttp "net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/ircrelay-server/internal/audit"
	"github.com/vovakirdan/ircrelay-server/internal/config"
	"github.com/vovakirdan/ircrelay-server/internal/core"
	transporthttp "github.com/vovakirdan/ircrelay-server/internal/transport/http"
)

// App wires together core and transport layers.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	audit           audit.Log
	log             *zerolog.Logger
}

// New constructs the application with provided configuration.
func New(cfg config.Config, logger *zerolog.Logger) (*App, error) {
	auditLog, err := audit.Open(cfg.Audit.Backend, cfg.Audit.Path)
	if err != nil {
		return nil, fmt.Errorf("open audit sink: %w", err)
	}

	logger.Info().
		Str("backend", cfg.Audit.Backend).
		Str("path", cfg.Audit.Path).
		Msg("audit sink opened")

	hub := core.NewHub(cfg.Policy(), clock.New(), auditLog, logger)
	server := transporthttp.NewServer(hub, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		audit:           auditLog,
		log:             logger,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		a.cleanup()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.cleanup()
			return err
		}

		a.cleanup()
		return <-serverErr
	}
}

// cleanup closes the audit sink.
func (a *App) cleanup() {
	if a.audit != nil {
		if err := a.audit.Close(); err != nil {
			a.log.Warn().Err(err).Msg("failed to close audit sink")
		}
	}
}
