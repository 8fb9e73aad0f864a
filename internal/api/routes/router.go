package routes

import (
	"net/http"

	"github.com/clinicdesk/backend/internal/api/handlers"
	"github.com/clinicdesk/backend/internal/api/middleware"
	"github.com/clinicdesk/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	appointmentHandler *handlers.AppointmentHandler
	inferenceHandler   *handlers.InferenceHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	appointmentHandler *handlers.AppointmentHandler,
	inferenceHandler *handlers.InferenceHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		appointmentHandler: appointmentHandler,
		inferenceHandler:   inferenceHandler,

		metrics: metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Appointment endpoints require a resolved actor
	withActor := func(h http.HandlerFunc) http.Handler {
		return middleware.ActorMiddleware(h)
	}

	r.mux.Handle("GET /appointments/", withActor(r.appointmentHandler.List))
	r.mux.Handle("GET /appointments/{id}", withActor(r.appointmentHandler.Get))
	r.mux.Handle("POST /appointments/patient", withActor(r.appointmentHandler.CreatePatient))
	r.mux.Handle("POST /appointments/doctor", withActor(r.appointmentHandler.CreateDoctor))
	r.mux.Handle("PUT /appointments/{id}", withActor(r.appointmentHandler.Update))
	r.mux.Handle("DELETE /appointments/{id}", withActor(r.appointmentHandler.Delete))

	// Inference proxy endpoint
	r.mux.HandleFunc("POST /inference/run", r.inferenceHandler.Run)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.metrics != nil {
		handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	}

	// CORS wraps everything so error responses also carry the headers
	handler = middleware.CORSMiddleware(handler)

	return handler
}
