package routes

import (
	"net/http"

	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/middleware"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
)

// ModelRouter holds the routes of the inference backend
type ModelRouter struct {
	mux *http.ServeMux

	predictHandler *handlers.PredictHandler

	metrics *observability.Metrics
}

// NewModelRouter creates a new inference backend router
func NewModelRouter(predictHandler *handlers.PredictHandler, metrics *observability.Metrics) *ModelRouter {
	return &ModelRouter{
		mux: http.NewServeMux(),

		predictHandler: predictHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all inference backend routes
func (r *ModelRouter) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Model prediction endpoint
	r.mux.HandleFunc("POST /api/v1/model/predict", r.predictHandler.Predict)

	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	return handler
}
