package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/marcelsud/webhook-outbox/registration"
)

// Handlers sets up the admin and event-ingest API
func Handlers(regService registration.UseCase, delService delivery.UseCase, metricsHandler http.Handler) *chi.Mux {
	logger := httplog.NewLogger("webhook-outbox", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		// Webhook registry
		r.Post("/webhooks", postRegistration(regService).ServeHTTP)
		r.Get("/webhooks", getRegistrations(regService).ServeHTTP)
		r.Get("/webhooks/{id}", getRegistration(regService).ServeHTTP)
		r.Patch("/webhooks/{id}", patchRegistration(regService).ServeHTTP)
		r.Post("/webhooks/{id}/deactivate", deactivateRegistration(regService).ServeHTTP)
		r.Delete("/webhooks/{id}", deleteRegistration(regService).ServeHTTP)

		// Event ingest and delivery history
		r.Post("/events", postEvent(delService).ServeHTTP)
		r.Get("/jobs/{id}", getJob(delService).ServeHTTP)
		r.Get("/jobs/{id}/attempts", getJobAttempts(delService).ServeHTTP)
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}
