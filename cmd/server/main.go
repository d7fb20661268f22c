// Package main implements the entry point for the TaskNest API server,
// which manages users' personal task lists.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/platform/logger"
	"github.com/tasknest/tasknest/internal/platform/postgres"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	if err := run(*migrateOnly); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(migrateOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	ctx := context.Background()

	db, err := postgres.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			appLogger.Error("error closing database connection", "error", err)
		}
	}()

	if err := postgres.RunMigrations(db, appLogger); err != nil {
		return err
	}
	if migrateOnly {
		appLogger.Info("migrations applied, exiting")
		return nil
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
