package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskmanager-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskmanager-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
// Debug routes are only mounted when enabled in the configuration.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(app.metrics.Middleware)

	authHandler := api.NewAuthHandler(app.userStore, app.tokenService, app.hasher, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/tasks", func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{"+api.TaskIDParam+"}", taskHandler.Get)
			r.Put("/{"+api.TaskIDParam+"}", taskHandler.Update)
			r.Delete("/{"+api.TaskIDParam+"}", taskHandler.Delete)
		})

		if app.config.Server.DebugRoutes {
			app.logger.Warn("debug routes enabled, they expose every user and task")
			debugHandler := api.NewDebugHandler(app.userStore, app.taskStore, app.logger)

			r.Route("/debug", func(r chi.Router) {
				r.Get("/users", debugHandler.Users)
				r.Get("/tasks", debugHandler.Tasks)
				r.With(authMiddleware.OptionalAuthenticate).
					Get("/database-stats", debugHandler.DatabaseStats)
				r.Get("/user/{"+api.UserIDParam+"}/tasks", debugHandler.UserTasks)
			})
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	return r
}
