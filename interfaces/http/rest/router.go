// Package rest exposes the thoughts and tasks API over HTTP.
package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"stratagist-backend/application/commands/bus"
	querybus "stratagist-backend/application/queries/bus"
	"stratagist-backend/interfaces/http/rest/handlers"
	"stratagist-backend/interfaces/http/rest/middleware"
	"stratagist-backend/pkg/common"
	pkgerrors "stratagist-backend/pkg/errors"
	"stratagist-backend/pkg/observability"
)

// Options toggles optional router features
type Options struct {
	EnableCORS     bool
	AllowedOrigins []string
	EnableMetrics  bool
	EnableTracing  bool
	Debug          bool
}

// Router creates and configures the HTTP router
type Router struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	metrics    *observability.Metrics
	options    Options
	logger     *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	metrics *observability.Metrics,
	options Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		commandBus: commandBus,
		queryBus:   queryBus,
		metrics:    metrics,
		options:    options,
		logger:     logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.options.Debug)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.Logger(rt.logger))
	if rt.options.EnableMetrics && rt.metrics != nil {
		router.Use(middleware.Metrics(rt.metrics))
	}
	if rt.options.EnableTracing {
		router.Use(middleware.Tracing)
	}
	router.Use(errorHandler.Middleware)

	if rt.options.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.options.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	router.Get("/health", rt.healthCheck)
	if rt.options.EnableMetrics && rt.metrics != nil {
		router.Method(http.MethodGet, "/metrics", rt.metrics.Handler())
	}

	thoughts := handlers.NewThoughtHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
	tasks := handlers.NewTaskHandler(rt.commandBus, rt.queryBus, errorHandler, rt.logger)
	extraction := handlers.NewExtractionHandler(rt.queryBus, errorHandler, rt.logger)

	router.Route("/api", func(r chi.Router) {
		r.Route("/thoughts", func(r chi.Router) {
			r.Get("/", thoughts.ListThoughts)
			r.Post("/", thoughts.CreateThought)
			r.Get("/dates", thoughts.ListDates)
			r.Get("/date/{date}", thoughts.ListByDate)
			r.Delete("/date/{date}", thoughts.ClearDate)
			r.Get("/{thoughtID}", thoughts.GetThought)
			r.Put("/{thoughtID}", thoughts.UpdateThought)
			r.Delete("/{thoughtID}", thoughts.DeleteThought)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", tasks.ListTasks)
			r.Post("/", tasks.CreateTask)
			r.Post("/bulk", tasks.CreateTasksBulk)
			r.Get("/{taskID}", tasks.GetTask)
			r.Put("/{taskID}", tasks.UpdateTask)
			r.Patch("/{taskID}/toggle", tasks.ToggleTask)
			r.Delete("/{taskID}", tasks.DeleteTask)
		})

		r.Post("/extract-tasks", extraction.ExtractTasks)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusNotFound, "Not Found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, _ *http.Request) {
	if err := common.RespondJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339Nano),
	}); err != nil {
		rt.logger.Error("Failed to encode health response", zap.Error(err))
	}
}
