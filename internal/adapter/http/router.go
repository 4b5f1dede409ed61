package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/agencyledger/internal/adapter/http/handler"
	"github.com/iho/agencyledger/internal/adapter/http/middleware"
	"github.com/iho/agencyledger/internal/infrastructure/metrics"
	"github.com/iho/agencyledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AdvanceReturnHandler       *handler.AdvanceReturnHandler
	BalanceTransferHandler     *handler.BalanceTransferHandler
	ExpenseHandler             *handler.ExpenseHandler
	InvestmentHandler          *handler.InvestmentHandler
	VendorAdvanceReturnHandler *handler.VendorAdvanceReturnHandler
	ClientPaymentHandler       *handler.ClientPaymentHandler
	ReconciliationHandler      *handler.ReconciliationHandler
	HealthHandler              *handler.HealthHandler

	// Optional
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	MetricsHandler   http.Handler
	Logger           zerolog.Logger
}

// postingRoutes is the CRUD surface every posting kind exposes.
type postingRoutes interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

func mountPosting(r chi.Router, path string, h postingRoutes) {
	r.Route(path, func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireCompany)

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		mountPosting(r, "/advance-returns", cfg.AdvanceReturnHandler)
		mountPosting(r, "/balance-transfers", cfg.BalanceTransferHandler)
		mountPosting(r, "/expenses", cfg.ExpenseHandler)
		mountPosting(r, "/investments", cfg.InvestmentHandler)
		mountPosting(r, "/vendor-advance-returns", cfg.VendorAdvanceReturnHandler)
		mountPosting(r, "/client-payments", cfg.ClientPaymentHandler)

		r.Get("/clients/{id}/audit", cfg.ClientPaymentHandler.AuditTrail)

		r.Route("/reconciliation", func(r chi.Router) {
			r.Get("/", cfg.ReconciliationHandler.Report)
			r.Post("/", cfg.ReconciliationHandler.Reconcile)
		})
	})

	return r
}
