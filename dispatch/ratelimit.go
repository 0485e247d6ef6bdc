package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitPrefix namespaces the per-subscriber delivery counters in Redis
const RateLimitPrefix = "ratelimit:webhook"

/* RateLimiter caps deliveries per subscriber per window using a Redis
 * counter, so the limit is shared across worker processes. Counters are
 * per-key: no lock spans subscribers.
 */
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter creates a Redis-backed delivery rate limiter.
// A limit of zero or less disables limiting.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow consumes one delivery slot for the subscriber if any remain
func (l *RateLimiter) Allow(ctx context.Context, webhookID string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("%s:%s", RateLimitPrefix, webhookID)

	// Pipeline keeps increment and expiry atomic enough for a fixed window
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		// Fail open on Redis errors rather than stalling deliveries
		return true, fmt.Errorf("redis error: %w", err)
	}

	return incr.Val() <= int64(l.limit), nil
}

// Remaining returns how many delivery slots are left in the current window
func (l *RateLimiter) Remaining(ctx context.Context, webhookID string) (int, error) {
	if l.limit <= 0 {
		return 0, nil
	}

	key := fmt.Sprintf("%s:%s", RateLimitPrefix, webhookID)
	count, err := l.client.Get(ctx, key).Int()
	if err == redis.Nil {
		return l.limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading rate limit counter: %w", err)
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
