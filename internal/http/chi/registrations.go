package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marcelsud/webhook-outbox/registration"
)

/* HTTP layer DTOs for the registry API
 * Separate from domain entities to avoid leaking internal structure
 */

// registrationRequest is the payload to create a registration
type registrationRequest struct {
	URL     string            `json:"url"`
	Events  []string          `json:"events"`
	Secret  string            `json:"secret"`
	Headers map[string]string `json:"headers"`
}

// registrationPatch is the payload for a partial update.
// A null events field preserves current subscriptions; [] is rejected.
type registrationPatch struct {
	URL     *string           `json:"url"`
	Events  []string          `json:"events"`
	Secret  *string           `json:"secret"`
	Headers map[string]string `json:"headers"`
	Active  *bool             `json:"active"`
}

// registrationResponse represents a registration in the API
type registrationResponse struct {
	ID        string            `json:"id"`
	URL       string            `json:"url"`
	Events    []string          `json:"events"`
	Headers   map[string]string `json:"headers,omitempty"`
	Active    bool              `json:"active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// The signing secret is write-only: never echoed back
func toResponse(reg registration.Registration) registrationResponse {
	return registrationResponse{
		ID:        reg.ID,
		URL:       reg.URL,
		Events:    reg.Events,
		Headers:   reg.Headers,
		Active:    reg.Active,
		CreatedAt: reg.CreatedAt,
		UpdatedAt: reg.UpdatedAt,
	}
}

// postRegistration handles POST /v1/webhooks
func postRegistration(svc registration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req registrationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		reg, err := svc.Register(r.Context(), req.URL, req.Events, req.Secret, req.Headers)
		if err != nil {
			writeRegistryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toResponse(reg))
	})
}

// getRegistrations handles GET /v1/webhooks
func getRegistrations(svc registration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		regs, err := svc.List(r.Context())
		if err != nil {
			writeRegistryError(w, err)
			return
		}

		responses := make([]registrationResponse, 0, len(regs))
		for _, reg := range regs {
			responses = append(responses, toResponse(reg))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(responses)
	})
}

// getRegistration handles GET /v1/webhooks/{id}
func getRegistration(svc registration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reg, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeRegistryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toResponse(reg))
	})
}

// patchRegistration handles PATCH /v1/webhooks/{id}
func patchRegistration(svc registration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var patch registrationPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, "invalid JSON body", http.StatusBadRequest)
			return
		}

		reg, err := svc.Update(r.Context(), chi.URLParam(r, "id"), registration.Patch{
			URL:     patch.URL,
			Events:  patch.Events,
			Secret:  patch.Secret,
			Headers: patch.Headers,
			Active:  patch.Active,
		})
		if err != nil {
			writeRegistryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toResponse(reg))
	})
}

// deactivateRegistration handles POST /v1/webhooks/{id}/deactivate
func deactivateRegistration(svc registration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeRegistryError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// deleteRegistration handles DELETE /v1/webhooks/{id}
func deleteRegistration(svc registration.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeRegistryError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func writeRegistryError(w http.ResponseWriter, err error) {
	switch {
	case registration.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, registration.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
