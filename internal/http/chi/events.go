package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/marcelsud/webhook-outbox/delivery/payload"
)

// eventRequest is the payload to publish an event
type eventRequest struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// eventResponse lists the delivery jobs fanned out for an event
type eventResponse struct {
	EventType string   `json:"event_type"`
	JobIDs    []string `json:"job_ids"`
}

// jobResponse represents a delivery job in the API
type jobResponse struct {
	ID            string    `json:"id"`
	WebhookID     string    `json:"webhook_id"`
	EventName     string    `json:"event_name"`
	AttemptCount  int       `json:"attempt_count"`
	MaxRetries    int       `json:"max_retries"`
	Status        string    `json:"status"`
	NextAttemptAt time.Time `json:"next_attempt_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// postEvent handles POST /v1/events
// Publishing always answers 202: subscriber failures surface through
// metrics and the job history, never here
func postEvent(svc delivery.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req eventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		// Validate the envelope here so bad input gets a 400, not a 500
		if _, err := payload.New(req.Type, req.Data); err != nil {
			http.Error(w, fmt.Sprintf("invalid event: %v", err), http.StatusBadRequest)
			return
		}

		jobIDs, err := svc.Publish(r.Context(), req.Type, req.Data)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(eventResponse{
			EventType: req.Type,
			JobIDs:    jobIDs,
		})
	})
}

// getJob handles GET /v1/jobs/{id}
func getJob(svc delivery.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		job, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDeliveryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(jobResponse{
			ID:            job.ID,
			WebhookID:     job.WebhookID,
			EventName:     job.EventName,
			AttemptCount:  job.AttemptCount,
			MaxRetries:    job.MaxRetries,
			Status:        job.Status.String(),
			NextAttemptAt: job.NextAttemptAt,
			CreatedAt:     job.CreatedAt,
		})
	})
}

// getJobAttempts handles GET /v1/jobs/{id}/attempts
func getJobAttempts(svc delivery.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts, err := svc.History(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDeliveryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(attempts)
	})
}

func writeDeliveryError(w http.ResponseWriter, err error) {
	if errors.Is(err, delivery.ErrJobNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
