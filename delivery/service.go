package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/marcelsud/webhook-outbox/delivery/payload"
	"github.com/marcelsud/webhook-outbox/registration"
)

/* Service represents the business logic layer
 * Uses pointer semantics as it's an API, not data
 */

// UseCase defines the business operations for event delivery
type UseCase interface {
	/* Publish fans an event out to every active subscriber whose event list
	 * matches. It enqueues jobs and returns their IDs: delivery failures are
	 * never surfaced here, only storage errors are.
	 */
	Publish(ctx context.Context, eventType string, data json.RawMessage) ([]string, error)
	/* RecordOutcome applies one attempt result to the job state machine and
	 * returns the resulting status
	 */
	RecordOutcome(ctx context.Context, job Job, attempt Attempt) (Status, error)
	Get(ctx context.Context, id string) (Job, error)
	History(ctx context.Context, jobID string) ([]Attempt, error)
	CancelForWebhook(ctx context.Context, webhookID string) (int, error)
}

// SubscriberFinder resolves the active registrations interested in an event
type SubscriberFinder interface {
	FindSubscribers(ctx context.Context, eventName string) ([]registration.Registration, error)
}

// Recorder receives delivery metrics; implemented by the metrics package
type Recorder interface {
	Delivery(ctx context.Context, status string, seconds float64)
	Retry(ctx context.Context)
	MaxRetriesExceeded(ctx context.Context)
	DeliveryError(ctx context.Context, errorType string)
}

// Policy holds the retry configuration applied to every job
type Policy struct {
	MaxRetries int
	Backoff    Backoff
	/* RateLimitConsumesAttempt decides whether a rate-limited attempt counts
	 * against the retry ceiling. The source material leaves this ambiguous,
	 * so it is a policy knob rather than an assumption.
	 */
	RateLimitConsumesAttempt bool
}

type Service struct {
	Repo    Repository
	Finder  SubscriberFinder
	Metrics Recorder
	Policy  Policy
}

// NewService creates a new delivery service with dependency injection
func NewService(repo Repository, finder SubscriberFinder, metrics Recorder, policy Policy) *Service {
	return &Service{
		Repo:    repo,
		Finder:  finder,
		Metrics: metrics,
		Policy:  policy,
	}
}

// Publish validates the event, resolves subscribers and enqueues one job each
func (s *Service) Publish(ctx context.Context, eventType string, data json.RawMessage) ([]string, error) {
	evt, err := payload.New(eventType, data)
	if err != nil {
		return nil, fmt.Errorf("building event payload: %w", err)
	}

	body, err := evt.Bytes()
	if err != nil {
		return nil, fmt.Errorf("encoding event payload: %w", err)
	}

	subscribers, err := s.Finder.FindSubscribers(ctx, eventType)
	if err != nil {
		return nil, fmt.Errorf("finding subscribers: %w", err)
	}

	jobIDs := make([]string, 0, len(subscribers))
	now := time.Now()
	for _, sub := range subscribers {
		job := Job{
			ID:            uuid.New().String(),
			WebhookID:     sub.ID,
			EventName:     eventType,
			Payload:       body,
			AttemptCount:  0,
			MaxRetries:    s.Policy.MaxRetries,
			Status:        Pending,
			NextAttemptAt: now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.Repo.Enqueue(ctx, job); err != nil {
			return jobIDs, fmt.Errorf("enqueueing job for webhook %s: %w", sub.ID, err)
		}
		jobIDs = append(jobIDs, job.ID)
	}

	return jobIDs, nil
}

// RecordOutcome is the delivery state machine. Every attempt is appended to
// the history exactly once; the outcome decides the transition.
func (s *Service) RecordOutcome(ctx context.Context, job Job, attempt Attempt) (Status, error) {
	if err := attempt.Outcome.Validate(); err != nil {
		return 0, fmt.Errorf("validating outcome: %w", err)
	}

	if err := s.Repo.AppendAttempt(ctx, attempt); err != nil {
		return 0, fmt.Errorf("appending attempt: %w", err)
	}

	seconds := float64(attempt.LatencyMS) / 1000

	switch {
	case attempt.Outcome == OutcomeSuccess:
		if err := s.Repo.MarkSucceeded(ctx, job.ID); err != nil {
			return 0, fmt.Errorf("marking job succeeded: %w", err)
		}
		s.Metrics.Delivery(ctx, "success", seconds)
		return Succeeded, nil

	case attempt.Outcome == OutcomeDeniedByAllowlist:
		/* Permanent policy rejection: terminal on the first attempt, never
		 * retried, and not counted as a failed delivery
		 */
		if err := s.Repo.MarkBlocked(ctx, job.ID); err != nil {
			return 0, fmt.Errorf("marking job blocked: %w", err)
		}
		s.Metrics.DeliveryError(ctx, attempt.Outcome.String())
		return Blocked, nil

	case attempt.Outcome.Transient():
		s.Metrics.DeliveryError(ctx, attempt.Outcome.String())
		if attempt.Outcome != OutcomeRateLimited {
			s.Metrics.Delivery(ctx, "failed", seconds)
		}

		attempts := job.AttemptCount
		consumes := attempt.Outcome != OutcomeRateLimited || s.Policy.RateLimitConsumesAttempt
		if consumes {
			attempts++
		}

		if consumes && attempts >= job.MaxRetries {
			if err := s.Repo.MarkDeadLettered(ctx, job.ID, attempts); err != nil {
				return 0, fmt.Errorf("dead-lettering job: %w", err)
			}
			s.Metrics.MaxRetriesExceeded(ctx)
			return DeadLettered, nil
		}

		delay := s.Policy.Backoff.NextDelay(job.AttemptCount + 1)
		if err := s.Repo.Reschedule(ctx, job.ID, attempts, time.Now().Add(delay)); err != nil {
			return 0, fmt.Errorf("rescheduling job: %w", err)
		}
		s.Metrics.Retry(ctx)
		return Retrying, nil
	}

	return 0, fmt.Errorf("unhandled outcome: %s", attempt.Outcome)
}

// Get retrieves a job by ID
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	job, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Job{}, fmt.Errorf("getting job: %w", err)
	}
	return job, nil
}

// History returns the append-only attempt history for a job
func (s *Service) History(ctx context.Context, jobID string) ([]Attempt, error) {
	attempts, err := s.Repo.ListAttempts(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("listing attempts: %w", err)
	}
	return attempts, nil
}

// CancelForWebhook drops every scheduled job owned by a registration
func (s *Service) CancelForWebhook(ctx context.Context, webhookID string) (int, error) {
	removed, err := s.Repo.CancelForWebhook(ctx, webhookID)
	if err != nil {
		return 0, fmt.Errorf("cancelling jobs: %w", err)
	}
	return removed, nil
}
