package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tasknest/tasknest/internal/config"
	"github.com/tasknest/tasknest/internal/platform/postgres"
	"github.com/tasknest/tasknest/internal/service"
	"github.com/tasknest/tasknest/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

// application holds the wired dependencies of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskService service.TaskService
	userService service.UserService
	jwtService  auth.JWTService
}

// newApplication wires stores, services and handlers from configuration.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	taskStore := postgres.NewPostgresTaskStore(db, logger)
	userStore := postgres.NewPostgresUserStore(db, logger, bcrypt.DefaultCost)

	taskRepo := service.NewTaskRepositoryAdapter(taskStore, db)
	taskService, err := service.NewTaskService(taskRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userService := service.NewUserService(userStore, auth.NewBcryptVerifier(), logger)

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		taskService: taskService,
		userService: userService,
		jwtService:  jwtService,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	return app.startHTTPServer(ctx, router)
}
