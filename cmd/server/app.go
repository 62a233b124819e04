package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/phrazzld/taskmanager-api/internal/api/middleware"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/phrazzld/taskmanager-api/internal/store"
)

// cleanupTimeout bounds how long closing backend connections may take.
const cleanupTimeout = 5 * time.Second

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore
	taskStore store.TaskStore

	tokenService auth.TokenService
	hasher       auth.PasswordHasher

	registry *prometheus.Registry
	metrics  *middleware.Metrics

	closers []func(context.Context) error
}

// newApplication creates a new application instance with all dependencies
// initialized. On failure, anything already opened is closed.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if auth.UsesDevelopmentSecret(cfg.Auth) {
		if cfg.Server.IsDevelopment() {
			logger.Info("signing tokens with the development secret")
		} else {
			logger.Warn("no JWT secret configured, signing tokens with the public development secret",
				"environment", cfg.Server.Environment)
		}
	}
	app.tokenService = auth.NewTokenService(cfg.Auth, logger)
	logger.Info("token service initialized", "token_lifetime", auth.TokenLifetime.String())

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.hasher = hasher
	logger.Info("password hasher initialized", "bcrypt_cost", hasher.Cost())

	app.registry = prometheus.NewRegistry()
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.metrics = middleware.NewMetrics(app.registry)

	if err := app.setupStores(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	return app, nil
}

func (app *application) addCloser(fn func(context.Context) error) {
	app.closers = append(app.closers, fn)
}

// cleanup releases backend connections in reverse order of acquisition.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](ctx); err != nil {
			app.logger.Error("failed to release resource", "error", err)
		}
	}
	app.closers = nil
}
