package metrics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/marcelsud/webhook-outbox/dispatch"
	deliveryredis "github.com/marcelsud/webhook-outbox/delivery/redis"
)

// RedisCollector implements the Collector interface on top of the delivery
// job store and the rate limiter's counters
type RedisCollector struct {
	repo      *deliveryredis.Repository
	client    *redis.Client
	rateLimit int
}

// NewRedisCollector creates a new Redis metrics collector.
// rateLimit is the configured per-window delivery cap, used to turn counter
// values into remaining-slot gauges; zero disables that gauge.
func NewRedisCollector(repo *deliveryredis.Repository, rateLimit int) *RedisCollector {
	return &RedisCollector{
		repo:      repo,
		client:    repo.GetClient(),
		rateLimit: rateLimit,
	}
}

// GetQueueSize returns the number of scheduled delivery jobs
func (c *RedisCollector) GetQueueSize(ctx context.Context) (int64, error) {
	return c.repo.QueueSize(ctx)
}

// GetEndpointHealth returns the last observed health per endpoint
func (c *RedisCollector) GetEndpointHealth(ctx context.Context) ([]EndpointHealth, error) {
	stored, err := c.repo.GetEndpointHealth(ctx)
	if err != nil {
		return nil, err
	}

	endpoints := make([]EndpointHealth, 0, len(stored))
	for _, e := range stored {
		endpoints = append(endpoints, EndpointHealth{
			WebhookID: e.WebhookID,
			URL:       e.URL,
			Healthy:   e.Healthy,
		})
	}
	return endpoints, nil
}

// GetRateLimitRemaining returns remaining delivery slots per webhook id
func (c *RedisCollector) GetRateLimitRemaining(ctx context.Context) (map[string]int64, error) {
	remaining := make(map[string]int64)
	if c.rateLimit <= 0 {
		return remaining, nil
	}

	pattern := dispatch.RateLimitPrefix + ":*"
	var cursor uint64
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning rate limit keys: %w", err)
		}

		for _, key := range keys {
			value, err := c.client.Get(ctx, key).Result()
			if err == redis.Nil {
				// Window expired between scan and get
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("reading rate limit counter: %w", err)
			}

			count, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				continue
			}

			left := int64(c.rateLimit) - count
			if left < 0 {
				left = 0
			}
			webhookID := strings.TrimPrefix(key, dispatch.RateLimitPrefix+":")
			remaining[webhookID] = left
		}

		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}

	return remaining, nil
}

// GetActiveWorkers returns the number of workers with a live heartbeat
func (c *RedisCollector) GetActiveWorkers(ctx context.Context) (int64, error) {
	workers, err := c.repo.GetActiveWorkers(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(workers)), nil
}
