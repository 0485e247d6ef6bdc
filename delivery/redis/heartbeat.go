package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// WorkerHeartbeat represents the heartbeat data for a delivery worker
type WorkerHeartbeat struct {
	WorkerID      string    `json:"worker_id"`
	Status        string    `json:"status"` // "idle", "delivering"
	LastHeartbeat time.Time `json:"last_heartbeat"`
}

// EndpointHealth is the last observed delivery health of one subscriber
type EndpointHealth struct {
	WebhookID string `json:"webhook_id"`
	URL       string `json:"url"`
	Healthy   bool   `json:"healthy"`
}

// SetWorkerHeartbeat stores or updates a worker's heartbeat
// The key has a 60 second TTL: a worker that stops heartbeating drops out of
// the active set on its own
func (r *Repository) SetWorkerHeartbeat(ctx context.Context, workerID, status string) error {
	heartbeat := WorkerHeartbeat{
		WorkerID:      workerID,
		Status:        status,
		LastHeartbeat: time.Now(),
	}

	data, err := json.Marshal(heartbeat)
	if err != nil {
		return fmt.Errorf("marshaling heartbeat: %w", err)
	}

	key := fmt.Sprintf("worker:heartbeat:%s", workerID)
	if err := r.client.Set(ctx, key, data, 60*time.Second).Err(); err != nil {
		return fmt.Errorf("setting heartbeat: %w", err)
	}
	return nil
}

// GetActiveWorkers retrieves all workers with a live heartbeat
func (r *Repository) GetActiveWorkers(ctx context.Context) ([]WorkerHeartbeat, error) {
	var workers []WorkerHeartbeat

	var cursor uint64
	for {
		keys, nextCursor, err := r.client.Scan(ctx, cursor, "worker:heartbeat:*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning worker keys: %w", err)
		}

		for _, key := range keys {
			data, err := r.client.Get(ctx, key).Result()
			if err == redis.Nil {
				// Key expired between scan and get
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("getting worker heartbeat: %w", err)
			}

			var heartbeat WorkerHeartbeat
			if err := json.Unmarshal([]byte(data), &heartbeat); err != nil {
				continue
			}
			workers = append(workers, heartbeat)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return workers, nil
}

// SetEndpointHealth records whether the last delivery attempt to a subscriber
// got through. Feeds the per-endpoint health gauge.
func (r *Repository) SetEndpointHealth(ctx context.Context, webhookID, url string, healthy bool) error {
	health := EndpointHealth{
		WebhookID: webhookID,
		URL:       url,
		Healthy:   healthy,
	}

	data, err := json.Marshal(health)
	if err != nil {
		return fmt.Errorf("marshaling endpoint health: %w", err)
	}

	key := fmt.Sprintf("webhook:health:%s", webhookID)
	if err := r.client.Set(ctx, key, data, 24*time.Hour).Err(); err != nil {
		return fmt.Errorf("setting endpoint health: %w", err)
	}
	return nil
}

// GetEndpointHealth returns the last observed health of every endpoint
func (r *Repository) GetEndpointHealth(ctx context.Context) ([]EndpointHealth, error) {
	var endpoints []EndpointHealth

	var cursor uint64
	for {
		keys, nextCursor, err := r.client.Scan(ctx, cursor, "webhook:health:*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning health keys: %w", err)
		}

		for _, key := range keys {
			data, err := r.client.Get(ctx, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("getting endpoint health: %w", err)
			}

			var health EndpointHealth
			if err := json.Unmarshal([]byte(data), &health); err != nil {
				continue
			}
			endpoints = append(endpoints, health)
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return endpoints, nil
}
