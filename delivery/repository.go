package delivery

import (
	"context"
	"time"
)

/* Small, focused interfaces following "The Go Way"
 * Interfaces abstract behavior, not things
 * Written for users of the API, not just for testing
 */

// Reader provides read operations for delivery jobs
type Reader interface {
	Get(ctx context.Context, id string) (Job, error)
	/* QueueSize returns the number of jobs waiting in the schedule
	 * Exposed as a gauge for backpressure signaling
	 */
	QueueSize(ctx context.Context) (int64, error)
}

// Writer provides state transitions for delivery jobs
type Writer interface {
	/* Enqueue stores a new job and adds it to the schedule
	 * The schedule is persisted, so retry timing survives restarts
	 */
	Enqueue(ctx context.Context, job Job) error
	MarkSucceeded(ctx context.Context, id string) error
	/* Reschedule re-queues a failed job for a later attempt
	 * Sets status to Retrying and persists next_attempt_at
	 */
	Reschedule(ctx context.Context, id string, attemptCount int, nextAttemptAt time.Time) error
	MarkDeadLettered(ctx context.Context, id string, attemptCount int) error
	MarkBlocked(ctx context.Context, id string) error
	/* CancelForWebhook removes all still-scheduled jobs owned by a registration
	 * Returns the number of jobs removed; in-flight jobs are unaffected
	 */
	CancelForWebhook(ctx context.Context, webhookID string) (int, error)
	/* Discard removes a job that can no longer be delivered
	 * Used when the owning registration disappeared while a job was in flight
	 */
	Discard(ctx context.Context, id string) error
}

// Claimer provides operations for workers pulling due jobs
type Claimer interface {
	/* ClaimDue atomically claims up to limit jobs whose next_attempt_at has
	 * passed. A job is handed to exactly one caller, so attempts of the same
	 * job never run concurrently.
	 */
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]Job, error)
}

// AttemptLog provides the append-only delivery history
type AttemptLog interface {
	AppendAttempt(ctx context.Context, attempt Attempt) error
	ListAttempts(ctx context.Context, jobID string) ([]Attempt, error)
}

/* Interface composition - combining small interfaces into larger ones
 * This is preferred over large monolithic interfaces
 */
type Repository interface {
	Reader
	Writer
	Claimer
	AttemptLog
	Close(ctx context.Context) error
}
