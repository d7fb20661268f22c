package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tasknest/tasknest/internal/api"
	apiMiddleware "github.com/tasknest/tasknest/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api/v1", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Delete("/auth/me", authHandler.DeleteAccount)

			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)

			// Fixed paths must register before the {id} wildcards.
			r.Post("/tasks/bulk-toggle", taskHandler.BulkToggle)
			r.Post("/tasks/bulk-delete", taskHandler.BulkDelete)
			r.Get("/tasks/trash", taskHandler.ListTrash)
			r.Get("/tasks/due", taskHandler.ListDue)
			r.Get("/tasks/due/stats", taskHandler.DueStats)

			r.Get("/tasks/{id}", taskHandler.Get)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
			r.Patch("/tasks/{id}/toggle", taskHandler.Toggle)
			r.Post("/tasks/{id}/restore", taskHandler.Restore)
			r.Delete("/tasks/{id}/permanent", taskHandler.PermanentDelete)
			r.Patch("/tasks/{id}/due-date", taskHandler.SetDueDate)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
