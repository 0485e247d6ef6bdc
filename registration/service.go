package registration

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for managing subscriber endpoints
type UseCase interface {
	Register(ctx context.Context, url string, events []string, secret string, headers map[string]string) (Registration, error)
	/* Update applies a partial patch. A nil Events slice preserves the current
	 * subscriptions; an empty one is rejected.
	 */
	Update(ctx context.Context, id string, patch Patch) (Registration, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Registration, error)
	List(ctx context.Context) ([]Registration, error)
	FindSubscribers(ctx context.Context, eventName string) ([]Registration, error)
}

// JobCanceller removes pending delivery jobs for a registration.
// Implemented by the delivery service; keeps this package free of a
// dependency on the queue.
type JobCanceller interface {
	CancelForWebhook(ctx context.Context, webhookID string) (int, error)
}

// Patch carries a partial update; nil fields leave current values unchanged
type Patch struct {
	URL     *string
	Events  []string
	Secret  *string
	Headers map[string]string
	Active  *bool
}

type Service struct {
	Repo Repository
	Jobs JobCanceller
}

// NewService creates a new registration service with dependency injection
func NewService(repo Repository, jobs JobCanceller) *Service {
	return &Service{
		Repo: repo,
		Jobs: jobs,
	}
}

// Register creates a new active registration
func (s *Service) Register(ctx context.Context, url string, events []string, secret string, headers map[string]string) (Registration, error) {
	now := time.Now()
	reg := Registration{
		ID:        uuid.New().String(),
		URL:       url,
		Events:    events,
		Secret:    secret,
		Headers:   headers,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := reg.Validate(); err != nil {
		return Registration{}, fmt.Errorf("validating registration: %w", err)
	}

	if err := s.Repo.Store(ctx, reg); err != nil {
		return Registration{}, fmt.Errorf("storing registration: %w", err)
	}

	return reg, nil
}

// Update applies a partial patch to an existing registration
func (s *Service) Update(ctx context.Context, id string, patch Patch) (Registration, error) {
	reg, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Registration{}, fmt.Errorf("getting registration: %w", err)
	}

	if patch.Events != nil && len(patch.Events) == 0 {
		return Registration{}, fmt.Errorf("applying patch: %w",
			&ValidationError{Field: "events", Reason: "cannot be empty"})
	}

	if patch.URL != nil {
		reg.URL = *patch.URL
	}
	if patch.Events != nil {
		reg.Events = patch.Events
	}
	if patch.Secret != nil {
		reg.Secret = *patch.Secret
	}
	if patch.Headers != nil {
		reg.Headers = patch.Headers
	}
	wasActive := reg.Active
	if patch.Active != nil {
		reg.Active = *patch.Active
	}
	reg.UpdatedAt = time.Now()

	if err := reg.Validate(); err != nil {
		return Registration{}, fmt.Errorf("validating registration: %w", err)
	}

	if err := s.Repo.Update(ctx, reg); err != nil {
		return Registration{}, fmt.Errorf("updating registration: %w", err)
	}

	// Turning a registration off also drops its queued jobs
	if wasActive && !reg.Active {
		if _, err := s.Jobs.CancelForWebhook(ctx, id); err != nil {
			return Registration{}, fmt.Errorf("cancelling jobs: %w", err)
		}
	}

	return reg, nil
}

// Deactivate stops future deliveries and cancels queued jobs. Idempotent.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	reg, err := s.Repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting registration: %w", err)
	}
	if !reg.Active {
		return nil
	}

	reg.Active = false
	reg.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, reg); err != nil {
		return fmt.Errorf("updating registration: %w", err)
	}

	if _, err := s.Jobs.CancelForWebhook(ctx, id); err != nil {
		return fmt.Errorf("cancelling jobs: %w", err)
	}
	return nil
}

// Delete removes a registration and cancels its queued jobs
func (s *Service) Delete(ctx context.Context, id string) error {
	// Surface ErrNotFound for unknown ids before touching the queue
	if _, err := s.Repo.Get(ctx, id); err != nil {
		return fmt.Errorf("getting registration: %w", err)
	}

	if _, err := s.Jobs.CancelForWebhook(ctx, id); err != nil {
		return fmt.Errorf("cancelling jobs: %w", err)
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting registration: %w", err)
	}
	return nil
}

// Get retrieves a registration by ID
func (s *Service) Get(ctx context.Context, id string) (Registration, error) {
	reg, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Registration{}, fmt.Errorf("getting registration: %w", err)
	}
	return reg, nil
}

// List returns all registrations
func (s *Service) List(ctx context.Context) ([]Registration, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}
	return regs, nil
}

// FindSubscribers returns active registrations subscribed to the event
func (s *Service) FindSubscribers(ctx context.Context, eventName string) ([]Registration, error) {
	regs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing registrations: %w", err)
	}

	var matched []Registration
	for _, reg := range regs {
		if reg.Active && reg.Subscribes(eventName) {
			matched = append(matched, reg)
		}
	}
	return matched, nil
}
