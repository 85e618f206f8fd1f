package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iho/tradejournal/internal/adapter/http/handler"
	"github.com/iho/tradejournal/internal/adapter/http/middleware"
	"github.com/iho/tradejournal/internal/infrastructure/auth"
	"github.com/iho/tradejournal/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler      *handler.AuthHandler
	JournalHandler   *handler.JournalHandler
	TradeHandler     *handler.TradeHandler
	StatsHandler     *handler.StatsHandler
	AuditHandler     *handler.AuditHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logging          *middleware.LoggingMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Authentication
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
				r.Get("/me", cfg.AuthHandler.Me)
			})
		})

		// Journals and trades require an authenticated user
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			r.Route("/journals", func(r chi.Router) {
				r.Post("/", cfg.JournalHandler.Create)
				r.Get("/", cfg.JournalHandler.List)
				r.Get("/{id}", cfg.JournalHandler.Get)
				r.Delete("/{id}", cfg.JournalHandler.Delete)

				r.Post("/{id}/trades", cfg.TradeHandler.Record)
				r.Get("/{id}/trades", cfg.TradeHandler.List)

				r.Get("/{id}/calendar", cfg.StatsHandler.Calendar)
				r.Get("/{id}/stats", cfg.StatsHandler.MonthStats)
				r.Get("/{id}/dashboard", cfg.StatsHandler.Dashboard)
			})

			r.Route("/trades", func(r chi.Router) {
				r.Put("/{id}", cfg.TradeHandler.Update)
				r.Delete("/{id}", cfg.TradeHandler.Delete)
			})

			r.Get("/audit", cfg.AuditHandler.List)
		})
	})

	return r
}
