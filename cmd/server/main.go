// Package main implements the entry point for the task manager API server,
// which handles user registration and login and per-user task management.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskmanager-api/internal/config"
)

func main() {
	migrate := flag.String("migrate", "",
		"run a database migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *migrate); err != nil {
		stop()
		log.Printf("task manager API exited with error: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, sets up logging and either executes a migration
// command or serves HTTP until ctx is cancelled.
func run(ctx context.Context, migrateCommand string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupAppLogger(cfg)
	if err != nil {
		return err
	}

	logger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"environment", cfg.Server.Environment,
		"database_driver", cfg.Database.Driver)

	if migrateCommand != "" {
		return runMigration(ctx, cfg, logger, migrateCommand)
	}

	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.startHTTPServer(ctx, app.setupRouter())
}
