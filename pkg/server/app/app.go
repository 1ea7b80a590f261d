// Package app wires the engine into an HTTP server runtime with warm-up,
// readiness signaling and graceful shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lurelight/lurelight/pkg/config"
	"github.com/lurelight/lurelight/pkg/engine"
	"github.com/lurelight/lurelight/pkg/server/api"
	"github.com/lurelight/lurelight/pkg/server/httpx"
)

const shutdownTimeout = 30 * time.Second

// App orchestrates the server runtime: the HTTP server, the engine warm-up
// and lifecycle management.
type App struct {
	HTTP   *http.Server
	Engine *engine.Engine
	Ready  *atomic.Bool
	Config config.ServerConfig

	logger zerolog.Logger
}

// New creates and configures a new server application around an engine.
func New(cfg config.ServerConfig, eng *engine.Engine) *App {
	ready := &atomic.Bool{}
	deps := &api.Deps{Engine: eng, Ready: ready}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Addr, cfg.Port),
		Handler:      httpx.Chain(httpx.NewRouter(deps)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		HTTP:   httpServer,
		Engine: eng,
		Ready:  ready,
		Config: cfg,
		logger: log.With().Str("component", "server").Logger(),
	}
}

// Run starts the server and blocks until ctx is cancelled or the listener
// fails. The fingerprint store warm-up runs before the ready flag flips so
// the first probe never pays the build cost.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Str("addr", a.HTTP.Addr).Msg("Starting server")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	a.Engine.Warmup()
	a.Ready.Store(true)
	a.logger.Info().Msg("Server is ready and accepting connections")

	select {
	case <-ctx.Done():
		a.logger.Info().Msg("Shutdown signal received")
	case err := <-serverErr:
		a.logger.Error().Err(err).Msg("Server error")
		return err
	}

	return a.shutdown()
}

// shutdown drains in-flight requests within shutdownTimeout.
func (a *App) shutdown() error {
	a.logger.Info().Msg("Initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.Ready.Store(false)

	if err := a.HTTP.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("HTTP server shutdown failed")
		return err
	}
	a.logger.Info().Msg("Server stopped")
	return nil
}
