package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelsud/webhook-outbox/delivery"
	deliveryredis "github.com/marcelsud/webhook-outbox/delivery/redis"
	"github.com/marcelsud/webhook-outbox/dispatch"
	"github.com/marcelsud/webhook-outbox/metrics"
)

func newTestCollector(t *testing.T, rateLimit int) (*metrics.RedisCollector, *deliveryredis.Repository, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := deliveryredis.NewRepositoryWithClient(client)
	return metrics.NewRedisCollector(repo, rateLimit), repo, client
}

func TestGetQueueSize(t *testing.T) {
	ctx := context.Background()
	collector, repo, _ := newTestCollector(t, 0)

	size, err := collector.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), size)

	for _, id := range []string{"job-1", "job-2"} {
		require.NoError(t, repo.Enqueue(ctx, delivery.Job{
			ID:            id,
			WebhookID:     "wh-1",
			EventName:     "user.created",
			Payload:       []byte(`{}`),
			Status:        delivery.Pending,
			NextAttemptAt: time.Now().Add(time.Hour),
			CreatedAt:     time.Now(),
			UpdatedAt:     time.Now(),
		}))
	}

	size, err = collector.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), size)
}

func TestGetEndpointHealth(t *testing.T) {
	ctx := context.Background()
	collector, repo, _ := newTestCollector(t, 0)

	require.NoError(t, repo.SetEndpointHealth(ctx, "wh-1", "https://up.example.com", true))
	require.NoError(t, repo.SetEndpointHealth(ctx, "wh-2", "https://down.example.com", false))

	endpoints, err := collector.GetEndpointHealth(ctx)
	require.NoError(t, err)
	require.Len(t, endpoints, 2)

	byID := make(map[string]metrics.EndpointHealth)
	for _, e := range endpoints {
		byID[e.WebhookID] = e
	}
	assert.True(t, byID["wh-1"].Healthy)
	assert.False(t, byID["wh-2"].Healthy)
	assert.Equal(t, "https://down.example.com", byID["wh-2"].URL)
}

func TestGetRateLimitRemaining(t *testing.T) {
	ctx := context.Background()

	t.Run("derived from the limiter's counters", func(t *testing.T) {
		collector, _, client := newTestCollector(t, 5)

		limiter := dispatch.NewRateLimiter(client, 5, time.Minute)
		for i := 0; i < 3; i++ {
			_, err := limiter.Allow(ctx, "wh-1")
			require.NoError(t, err)
		}
		_, err := limiter.Allow(ctx, "wh-2")
		require.NoError(t, err)

		remaining, err := collector.GetRateLimitRemaining(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), remaining["wh-1"])
		assert.Equal(t, int64(4), remaining["wh-2"])
	})

	t.Run("disabled limiter reports nothing", func(t *testing.T) {
		collector, _, client := newTestCollector(t, 0)

		limiter := dispatch.NewRateLimiter(client, 5, time.Minute)
		_, err := limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)

		remaining, err := collector.GetRateLimitRemaining(ctx)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})
}

func TestGetActiveWorkers(t *testing.T) {
	ctx := context.Background()
	collector, repo, _ := newTestCollector(t, 0)

	count, err := collector.GetActiveWorkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, repo.SetWorkerHeartbeat(ctx, "worker-0", "idle"))
	require.NoError(t, repo.SetWorkerHeartbeat(ctx, "worker-1", "delivering"))

	count, err = collector.GetActiveWorkers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
