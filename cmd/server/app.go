package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/platform/postgres"
	"github.com/taskforge/taskforge-api/internal/queue"
	"github.com/taskforge/taskforge-api/internal/ratelimit"
	"github.com/taskforge/taskforge-api/internal/service"
	"github.com/taskforge/taskforge-api/internal/service/auth"
	"github.com/taskforge/taskforge-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	redisClient *redis.Client

	taskStore store.TaskStore

	jwtService  auth.JWTService
	producer    queue.Producer
	taskService service.TaskService
	limiter     ratelimit.Limiter
}

// newApplication creates a new application instance with all dependencies
// initialized. Core dependencies like configuration, logger, and database
// connection must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewHMACJWTService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized")

	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.redisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.Queue.RedisAddr,
		Password: cfg.Queue.RedisPassword,
	})
	app.producer = queue.NewRedisProducer(app.redisClient, cfg.Queue.Name, logger)
	logger.Info("Status notification queue initialized",
		"queue", cfg.Queue.Name,
		"redis_addr", cfg.Queue.RedisAddr)

	app.taskService, err = service.NewTaskService(app.taskStore, app.producer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	app.limiter = ratelimit.NewFixedWindowLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window())
	logger.Info("Rate limiter initialized",
		"limit", cfg.RateLimit.Limit,
		"window_ms", cfg.RateLimit.WindowMS)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Error("Error closing Redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
