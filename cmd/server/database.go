package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/platform/memory"
	"github.com/phrazzld/taskmanager-api/internal/platform/mongodb"
	"github.com/phrazzld/taskmanager-api/internal/platform/postgres"
)

// errMigrationsUnsupported is returned by runMigration for drivers without a
// schema.
var errMigrationsUnsupported = errors.New("migrations require the postgres driver")

// setupStores connects the configured backend and assigns the user and task
// stores. Connections it opens are registered for cleanup.
func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config.Database
	log := app.logger.With(slog.String("driver", cfg.Driver))

	switch cfg.Driver {
	case config.DriverMemory:
		app.userStore = memory.NewUserStore(app.logger)
		app.taskStore = memory.NewTaskStore(app.logger)
		log.Warn("using in-memory storage, data is lost on restart")

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL, log)
		if err != nil {
			return err
		}
		app.addCloser(func(context.Context) error { return db.Close() })

		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, log); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.taskStore = postgres.NewPostgresTaskStore(db, app.logger)

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.URL, log)
		if err != nil {
			return err
		}
		app.addCloser(client.Disconnect)

		db := client.Database(cfg.Name)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		app.userStore = mongodb.NewUserStore(db, app.logger)
		app.taskStore = mongodb.NewTaskStore(db, app.logger)

	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	log.Info("stores initialized")
	return nil
}

// runMigration executes a single goose command against the configured
// postgres database.
func runMigration(ctx context.Context, cfg *config.Config, logger *slog.Logger, command string) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("%w: configured driver is %q", errMigrationsUnsupported, cfg.Database.Driver)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database connection", "error", cerr)
		}
	}()

	if err := postgres.Migrate(ctx, db, command, logger); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}
