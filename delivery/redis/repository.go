package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/redis/go-redis/v9"
)

/* Redis implementation of delivery.Repository
 * Job state lives in a hash per job; the schedule is a sorted set scored by
 * next_attempt_at, so retry timing survives process restarts. A set per
 * webhook indexes scheduled jobs for cancellation.
 */

const (
	jobPrefix     = "job"           // Hash naming: job:{job_id}, list naming: job:{job_id}:attempts
	scheduleKey   = "jobs:scheduled" // ZSET member=job_id score=next_attempt_at (unix ms)
	webhookPrefix = "webhook"        // Set naming: webhook:{webhook_id}:jobs

	// Terminal jobs and their histories are kept for audit, then expire
	terminalTTL = 24 * time.Hour
)

type Repository struct {
	client *redis.Client
}

// NewRepository creates a new Redis repository
func NewRepository(addr, password string, db int) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{client: client}, nil
}

// NewRepositoryWithClient wraps an existing Redis client
func NewRepositoryWithClient(client *redis.Client) *Repository {
	return &Repository{client: client}
}

// Enqueue stores a new job and schedules its first attempt
func (r *Repository) Enqueue(ctx context.Context, job delivery.Job) error {
	if err := r.writeJob(ctx, job); err != nil {
		return err
	}

	err := r.client.ZAdd(ctx, scheduleKey, redis.Z{
		Score:  float64(job.NextAttemptAt.UnixMilli()),
		Member: job.ID,
	}).Err()
	if err != nil {
		return fmt.Errorf("scheduling job: %w", err)
	}

	if err := r.client.SAdd(ctx, webhookJobsKey(job.WebhookID), job.ID).Err(); err != nil {
		return fmt.Errorf("indexing job: %w", err)
	}
	return nil
}

// ClaimDue atomically claims up to limit jobs whose schedule time has passed.
// ZRem succeeds for exactly one caller per member, so no two workers ever
// hold the same job.
func (r *Repository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]delivery.Job, error) {
	ids, err := r.client.ZRangeByScore(ctx, scheduleKey, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.UnixMilli(), 10),
		Count: int64(limit),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("reading schedule: %w", err)
	}

	var claimed []delivery.Job
	for _, id := range ids {
		removed, err := r.client.ZRem(ctx, scheduleKey, id).Result()
		if err != nil {
			return claimed, fmt.Errorf("claiming job: %w", err)
		}
		if removed == 0 {
			// Another worker got there first
			continue
		}

		job, err := r.Get(ctx, id)
		if err == delivery.ErrJobNotFound {
			continue
		}
		if err != nil {
			return claimed, err
		}

		job.Status = delivery.InFlight
		job.UpdatedAt = time.Now()
		if err := r.client.HSet(ctx, jobKey(id),
			"status", job.Status.String(),
			"updated_at", job.UpdatedAt.Unix(),
		).Err(); err != nil {
			return claimed, fmt.Errorf("marking job in flight: %w", err)
		}

		// In-flight jobs are no longer cancellable
		r.client.SRem(ctx, webhookJobsKey(job.WebhookID), id)

		claimed = append(claimed, job)
	}

	return claimed, nil
}

// Get retrieves a job by ID
func (r *Repository) Get(ctx context.Context, id string) (delivery.Job, error) {
	data, err := r.client.HGetAll(ctx, jobKey(id)).Result()
	if err != nil {
		return delivery.Job{}, fmt.Errorf("getting job: %w", err)
	}
	if len(data) == 0 {
		return delivery.Job{}, delivery.ErrJobNotFound
	}

	return delivery.Job{
		ID:            data["id"],
		WebhookID:     data["webhook_id"],
		EventName:     data["event_name"],
		Payload:       []byte(data["payload"]),
		AttemptCount:  int(parseInt64(data["attempt_count"])),
		MaxRetries:    int(parseInt64(data["max_retries"])),
		Status:        delivery.NewStatus(data["status"]),
		NextAttemptAt: time.UnixMilli(parseInt64(data["next_attempt_at"])),
		CreatedAt:     time.Unix(parseInt64(data["created_at"]), 0),
		UpdatedAt:     time.Unix(parseInt64(data["updated_at"]), 0),
	}, nil
}

// QueueSize returns the number of scheduled jobs
func (r *Repository) QueueSize(ctx context.Context) (int64, error) {
	size, err := r.client.ZCard(ctx, scheduleKey).Result()
	if err != nil {
		return 0, fmt.Errorf("reading queue size: %w", err)
	}
	return size, nil
}

// MarkSucceeded records a terminal successful delivery
func (r *Repository) MarkSucceeded(ctx context.Context, id string) error {
	return r.markTerminal(ctx, id, delivery.Succeeded, -1)
}

// MarkDeadLettered records a terminal failure after exhausting retries
func (r *Repository) MarkDeadLettered(ctx context.Context, id string, attemptCount int) error {
	return r.markTerminal(ctx, id, delivery.DeadLettered, attemptCount)
}

// MarkBlocked records a terminal allowlist rejection
func (r *Repository) MarkBlocked(ctx context.Context, id string) error {
	return r.markTerminal(ctx, id, delivery.Blocked, -1)
}

// Reschedule re-queues a failed job at nextAttemptAt
func (r *Repository) Reschedule(ctx context.Context, id string, attemptCount int, nextAttemptAt time.Time) error {
	job, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	err = r.client.HSet(ctx, jobKey(id),
		"status", delivery.Retrying.String(),
		"attempt_count", attemptCount,
		"next_attempt_at", nextAttemptAt.UnixMilli(),
		"updated_at", time.Now().Unix(),
	).Err()
	if err != nil {
		return fmt.Errorf("updating job: %w", err)
	}

	err = r.client.ZAdd(ctx, scheduleKey, redis.Z{
		Score:  float64(nextAttemptAt.UnixMilli()),
		Member: id,
	}).Err()
	if err != nil {
		return fmt.Errorf("rescheduling job: %w", err)
	}

	if err := r.client.SAdd(ctx, webhookJobsKey(job.WebhookID), id).Err(); err != nil {
		return fmt.Errorf("indexing job: %w", err)
	}
	return nil
}

// CancelForWebhook removes every scheduled job owned by a registration and
// returns how many were removed. In-flight jobs are left to finish.
func (r *Repository) CancelForWebhook(ctx context.Context, webhookID string) (int, error) {
	setKey := webhookJobsKey(webhookID)
	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return 0, fmt.Errorf("listing jobs for webhook: %w", err)
	}

	removed := 0
	for _, id := range ids {
		n, err := r.client.ZRem(ctx, scheduleKey, id).Result()
		if err != nil {
			return removed, fmt.Errorf("removing job from schedule: %w", err)
		}
		if n == 0 {
			// Claimed by a worker in the meantime; leave it alone
			continue
		}
		removed++

		r.client.Del(ctx, jobKey(id), attemptsKey(id))
	}

	if err := r.client.Del(ctx, setKey).Err(); err != nil {
		return removed, fmt.Errorf("removing job index: %w", err)
	}
	return removed, nil
}

// Discard removes a job whose registration disappeared while it was in flight
func (r *Repository) Discard(ctx context.Context, id string) error {
	job, err := r.Get(ctx, id)
	if err == delivery.ErrJobNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	r.client.ZRem(ctx, scheduleKey, id)
	r.client.SRem(ctx, webhookJobsKey(job.WebhookID), id)
	if err := r.client.Del(ctx, jobKey(id), attemptsKey(id)).Err(); err != nil {
		return fmt.Errorf("discarding job: %w", err)
	}
	return nil
}

// AppendAttempt appends one record to the job's delivery history
func (r *Repository) AppendAttempt(ctx context.Context, attempt delivery.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshaling attempt: %w", err)
	}

	if err := r.client.RPush(ctx, attemptsKey(attempt.JobID), data).Err(); err != nil {
		return fmt.Errorf("appending attempt: %w", err)
	}
	return nil
}

// ListAttempts returns the full delivery history for a job, oldest first
func (r *Repository) ListAttempts(ctx context.Context, jobID string) ([]delivery.Attempt, error) {
	entries, err := r.client.LRange(ctx, attemptsKey(jobID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("reading attempts: %w", err)
	}

	attempts := make([]delivery.Attempt, 0, len(entries))
	for _, entry := range entries {
		var attempt delivery.Attempt
		if err := json.Unmarshal([]byte(entry), &attempt); err != nil {
			return nil, fmt.Errorf("unmarshaling attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}
	return attempts, nil
}

// Close closes the Redis connection
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Close()
}

// GetClient returns the underlying Redis client for advanced operations
func (r *Repository) GetClient() *redis.Client {
	return r.client
}

func (r *Repository) writeJob(ctx context.Context, job delivery.Job) error {
	err := r.client.HSet(ctx, jobKey(job.ID), map[string]interface{}{
		"id":              job.ID,
		"webhook_id":      job.WebhookID,
		"event_name":      job.EventName,
		"payload":         job.Payload,
		"attempt_count":   job.AttemptCount,
		"max_retries":     job.MaxRetries,
		"status":          job.Status.String(),
		"next_attempt_at": job.NextAttemptAt.UnixMilli(),
		"created_at":      job.CreatedAt.Unix(),
		"updated_at":      job.UpdatedAt.Unix(),
	}).Err()
	if err != nil {
		return fmt.Errorf("storing job: %w", err)
	}
	return nil
}

func (r *Repository) markTerminal(ctx context.Context, id string, status delivery.Status, attemptCount int) error {
	fields := []interface{}{
		"status", status.String(),
		"updated_at", time.Now().Unix(),
	}
	if attemptCount >= 0 {
		fields = append(fields, "attempt_count", attemptCount)
	}

	if err := r.client.HSet(ctx, jobKey(id), fields...).Err(); err != nil {
		return fmt.Errorf("updating job status: %w", err)
	}

	r.client.Expire(ctx, jobKey(id), terminalTTL)
	r.client.Expire(ctx, attemptsKey(id), terminalTTL)
	return nil
}

// Helper functions

func jobKey(id string) string {
	return fmt.Sprintf("%s:%s", jobPrefix, id)
}

func attemptsKey(id string) string {
	return fmt.Sprintf("%s:%s:attempts", jobPrefix, id)
}

func webhookJobsKey(webhookID string) string {
	return fmt.Sprintf("%s:%s:jobs", webhookPrefix, webhookID)
}

func parseInt64(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}
