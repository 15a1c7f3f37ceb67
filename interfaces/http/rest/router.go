package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"dreamscape/application/services"
	"dreamscape/infrastructure/config"
	"dreamscape/interfaces/http/rest/handlers"
	"dreamscape/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	service *services.JournalService
	cfg     *config.Config
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(service *services.JournalService, cfg *config.Config, logger *zap.Logger) *Router {
	return &Router{
		service: service,
		cfg:     cfg,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	// CORS configuration. Open local origins for development, matching
	// the original deployment.
	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5050", "http://localhost:5050"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	// API routes
	router.Route("/api", func(r chi.Router) {
		journalHandler := handlers.NewJournalHandler(rt.service, rt.logger, rt.cfg.MaxBodyBytes)
		r.Post("/submit", journalHandler.Submit)
		r.Get("/graph", journalHandler.GetGraph)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
