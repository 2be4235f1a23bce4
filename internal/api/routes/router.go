package routes

import (
	"context"
	"net/http"

	"github.com/localserve/backend/internal/api/handlers"
	"github.com/localserve/backend/internal/api/middleware"
	"github.com/localserve/backend/internal/infrastructure/observability"
)

// HealthChecker reports whether the record store is reachable.
type HealthChecker func(ctx context.Context) error

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	insightsHandler *handlers.InsightsHandler
	reviewHandler   *handlers.ReviewHandler

	health         HealthChecker
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router. health and metrics may be nil.
func NewRouter(
	insightsHandler *handlers.InsightsHandler,
	reviewHandler *handlers.ReviewHandler,
	health HealthChecker,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		insightsHandler: insightsHandler,
		reviewHandler:   reviewHandler,
		health:          health,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", r.handleHealth)

	// Service insights
	r.mux.HandleFunc("GET /api/services/ranked", r.insightsHandler.RankedServices)
	r.mux.HandleFunc("GET /api/services/{id}/reviews/summary", r.insightsHandler.ReviewSummary)
	r.mux.HandleFunc("GET /api/services/{id}/rating-chart", r.insightsHandler.RatingChart)

	// Reviews and contact requests
	r.mux.HandleFunc("POST /api/reviews", r.reviewHandler.SubmitReview)
	r.mux.HandleFunc("POST /api/reviews/classify", r.insightsHandler.ClassifyReview)
	r.mux.HandleFunc("POST /api/requests", r.reviewHandler.SubmitContactRequest)

	// Admin analytics
	r.mux.HandleFunc("GET /api/admin/overview", r.insightsHandler.Overview)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RecoveryMiddleware(handler)
	// CORS wraps everything so preflights never reach the handlers
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}

func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		if err := r.health(req.Context()); err != nil {
			observability.LoggerFromContext(req.Context()).Warn().Err(err).Msg("Health check failed")
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		return
	}
}
