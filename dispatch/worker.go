package dispatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/marcelsud/webhook-outbox/registration"
)

/* Pool runs the delivery workers
 * A poller claims due jobs from the persisted schedule and hands each to
 * exactly one worker; the claim is atomic, so attempts of the same job are
 * serialized while independent jobs interleave freely
 */

// JobStore is what the pool needs from the queue storage
type JobStore interface {
	delivery.Claimer
	Reschedule(ctx context.Context, id string, attemptCount int, nextAttemptAt time.Time) error
	Discard(ctx context.Context, id string) error
	SetWorkerHeartbeat(ctx context.Context, workerID, status string) error
	SetEndpointHealth(ctx context.Context, webhookID, url string, healthy bool) error
}

// RegistrationGetter resolves the owning registration of a job
type RegistrationGetter interface {
	Get(ctx context.Context, id string) (registration.Registration, error)
}

// OutcomeRecorder applies an attempt result to the job state machine
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, job delivery.Job, attempt delivery.Attempt) (delivery.Status, error)
}

// DestinationPolicy decides whether a destination may receive deliveries
type DestinationPolicy interface {
	Permits(ctx context.Context, rawURL string) (bool, error)
}

// Gate caps delivery throughput per subscriber
type Gate interface {
	Allow(ctx context.Context, webhookID string) (bool, error)
}

type Pool struct {
	store    JobStore
	registry RegistrationGetter
	recorder OutcomeRecorder
	executor *Executor
	policy   DestinationPolicy
	limiter  Gate
	logger   zerolog.Logger

	workers      int
	pollInterval time.Duration
	claimBatch   int
}

// NewPool creates a delivery worker pool
func NewPool(store JobStore, registry RegistrationGetter, recorder OutcomeRecorder, executor *Executor, policy DestinationPolicy, limiter Gate, logger zerolog.Logger, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		store:        store,
		registry:     registry,
		recorder:     recorder,
		executor:     executor,
		policy:       policy,
		limiter:      limiter,
		logger:       logger,
		workers:      workers,
		pollInterval: 500 * time.Millisecond,
		claimBatch:   workers * 2,
	}
}

// Run polls the schedule and dispatches claimed jobs until ctx is cancelled
func (p *Pool) Run(ctx context.Context) error {
	jobs := make(chan delivery.Job)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go p.worker(ctx, fmt.Sprintf("worker-%d", i), jobs, &wg)
	}

	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil
		case <-ticker.C:
			claimed, err := p.store.ClaimDue(ctx, time.Now(), p.claimBatch)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				p.logger.Error().Err(err).Msg("claiming due jobs")
				continue
			}
			for _, job := range claimed {
				select {
				case jobs <- job:
				case <-ctx.Done():
					// Job stays in flight; the schedule is persisted, an
					// operator can requeue stragglers
				}
			}
		}
	}
}

func (p *Pool) worker(ctx context.Context, workerID string, jobs <-chan delivery.Job, wg *sync.WaitGroup) {
	defer wg.Done()

	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()
	p.store.SetWorkerHeartbeat(ctx, workerID, "idle")

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}
			p.store.SetWorkerHeartbeat(ctx, workerID, "delivering")
			p.process(ctx, job)
			p.store.SetWorkerHeartbeat(ctx, workerID, "idle")
		case <-heartbeat.C:
			p.store.SetWorkerHeartbeat(ctx, workerID, "idle")
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) process(ctx context.Context, job delivery.Job) {
	log := p.logger.With().
		Str("job_id", job.ID).
		Str("webhook_id", job.WebhookID).
		Str("event", job.EventName).
		Int("attempt", job.AttemptCount+1).
		Logger()

	reg, err := p.registry.Get(ctx, job.WebhookID)
	if errors.Is(err, registration.ErrNotFound) {
		log.Info().Msg("registration gone, discarding job")
		p.store.Discard(ctx, job.ID)
		return
	}
	if err != nil {
		// Transient registry failure: push the job back without burning an attempt
		log.Error().Err(err).Msg("resolving registration")
		p.store.Reschedule(ctx, job.ID, job.AttemptCount, time.Now().Add(5*time.Second))
		return
	}
	if !reg.Active {
		log.Info().Msg("registration inactive, discarding job")
		p.store.Discard(ctx, job.ID)
		return
	}

	attempt := p.attempt(ctx, reg, job, log)

	status, err := p.recorder.RecordOutcome(ctx, job, attempt)
	if err != nil {
		log.Error().Err(err).Msg("recording outcome")
		return
	}

	switch attempt.Outcome {
	case delivery.OutcomeSuccess:
		p.store.SetEndpointHealth(ctx, reg.ID, reg.URL, true)
	case delivery.OutcomeConnectionError, delivery.OutcomeTimeout, delivery.OutcomeInvalidResponse:
		p.store.SetEndpointHealth(ctx, reg.ID, reg.URL, false)
	}

	log.Info().
		Str("outcome", attempt.Outcome.String()).
		Str("status", status.String()).
		Int("http_status", attempt.HTTPStatus).
		Int64("latency_ms", attempt.LatencyMS).
		Msg("delivery attempt")
}

// attempt runs the pre-dispatch gates and, if they pass, the HTTP attempt
func (p *Pool) attempt(ctx context.Context, reg registration.Registration, job delivery.Job, log zerolog.Logger) delivery.Attempt {
	attempt := delivery.Attempt{
		JobID:     job.ID,
		Number:    job.AttemptCount + 1,
		Timestamp: time.Now(),
	}

	if p.policy != nil {
		allowed, err := p.policy.Permits(ctx, reg.URL)
		if err != nil {
			// Resolution failure is transient, not a policy denial
			attempt.Outcome = delivery.OutcomeConnectionError
			attempt.Error = err.Error()
			return attempt
		}
		if !allowed {
			// Audit trail for security review
			log.Warn().Str("url", reg.URL).Msg("destination denied by allowlist")
			attempt.Outcome = delivery.OutcomeDeniedByAllowlist
			attempt.Error = "destination not in allowlist"
			return attempt
		}
	}

	if p.limiter != nil {
		allowed, err := p.limiter.Allow(ctx, job.WebhookID)
		if err != nil {
			// Limiter failed open; log and carry on
			log.Warn().Err(err).Msg("rate limiter unavailable")
		}
		if !allowed {
			attempt.Outcome = delivery.OutcomeRateLimited
			attempt.Error = "delivery rate limit exhausted"
			return attempt
		}
	}

	return p.executor.Execute(ctx, reg, job)
}
