// Package main implements the entry point for the TaskForge API server,
// a multi-tenant task tracking service with asynchronous status-change
// notifications.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/platform/logger"
)

func main() {
	cfg, appLogger, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app, err := newApplication(cfg, appLogger, db)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration and sets up structured logging.
func initializeApp() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"queue", cfg.Queue.Name,
		"rate_limit", cfg.RateLimit.Limit,
		"rate_window_ms", cfg.RateLimit.WindowMS)

	return cfg, appLogger, nil
}
