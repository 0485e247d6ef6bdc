package dispatch

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRateLimiterAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit, then refuses", func(t *testing.T) {
		client, _ := newTestClient(t)
		limiter := NewRateLimiter(client, 3, time.Minute)

		for i := 0; i < 3; i++ {
			ok, err := limiter.Allow(ctx, "wh-1")
			require.NoError(t, err)
			assert.True(t, ok)
		}

		ok, err := limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("limits are tracked per subscriber", func(t *testing.T) {
		client, _ := newTestClient(t)
		limiter := NewRateLimiter(client, 1, time.Minute)

		ok, err := limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)
		assert.False(t, ok)

		// A different subscriber has its own budget
		ok, err = limiter.Allow(ctx, "wh-2")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("window expiry replenishes the budget", func(t *testing.T) {
		client, mr := newTestClient(t)
		limiter := NewRateLimiter(client, 1, time.Minute)

		ok, err := limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)
		assert.False(t, ok)

		mr.FastForward(2 * time.Minute)

		ok, err = limiter.Allow(ctx, "wh-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("zero limit disables limiting", func(t *testing.T) {
		client, _ := newTestClient(t)
		limiter := NewRateLimiter(client, 0, time.Minute)

		for i := 0; i < 100; i++ {
			ok, err := limiter.Allow(ctx, "wh-1")
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("fails open when redis is down", func(t *testing.T) {
		client, mr := newTestClient(t)
		limiter := NewRateLimiter(client, 1, time.Minute)
		mr.Close()

		ok, err := limiter.Allow(ctx, "wh-1")

		require.Error(t, err)
		assert.True(t, ok)
	})
}

func TestRateLimiterRemaining(t *testing.T) {
	ctx := context.Background()

	t.Run("untouched subscriber has the full budget", func(t *testing.T) {
		client, _ := newTestClient(t)
		limiter := NewRateLimiter(client, 5, time.Minute)

		remaining, err := limiter.Remaining(ctx, "wh-1")

		require.NoError(t, err)
		assert.Equal(t, 5, remaining)
	})

	t.Run("counts down as slots are consumed", func(t *testing.T) {
		client, _ := newTestClient(t)
		limiter := NewRateLimiter(client, 5, time.Minute)

		for i := 0; i < 3; i++ {
			_, err := limiter.Allow(ctx, "wh-1")
			require.NoError(t, err)
		}

		remaining, err := limiter.Remaining(ctx, "wh-1")

		require.NoError(t, err)
		assert.Equal(t, 2, remaining)
	})

	t.Run("never goes negative", func(t *testing.T) {
		client, _ := newTestClient(t)
		limiter := NewRateLimiter(client, 2, time.Minute)

		for i := 0; i < 5; i++ {
			_, err := limiter.Allow(ctx, "wh-1")
			require.NoError(t, err)
		}

		remaining, err := limiter.Remaining(ctx, "wh-1")

		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})
}
