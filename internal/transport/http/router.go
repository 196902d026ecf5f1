package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pmfkit/internal/config"
	"pmfkit/internal/middleware"
)

// NewRouter assembles the HTTP API: the middleware chain, the run routes
// under /api, and the operational endpoints.
func NewRouter(cfg *config.Config, service RunReader, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Metrics)
	r.Use(render.SetContentType(render.ContentTypeJSON))
	if cfg.Server.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.Server.RateLimit.RPS, cfg.Server.RateLimit.Burst, logger)
		r.Use(limiter.Handler)
	}

	runHandler := NewRunHandler(service, logger)
	sourcesHandler := &SourcesHandler{}
	r.Route("/api", func(r chi.Router) {
		runHandler.RegisterRoutes(r)
		sourcesHandler.RegisterRoutes(r)
	})

	r.Get("/healthz", NewHealthHandler().HealthCheck)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
