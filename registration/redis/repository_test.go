package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcelsud/webhook-outbox/registration"
	registrationredis "github.com/marcelsud/webhook-outbox/registration/redis"
)

func newTestRepository(t *testing.T) *registrationredis.Repository {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return registrationredis.NewRepositoryWithClient(client)
}

func testRegistration(id string) registration.Registration {
	now := time.Now()
	return registration.Registration{
		ID:        id,
		URL:       "https://consumer.example.com/hook",
		Events:    []string{"user.created", "user.*"},
		Secret:    "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw",
		Headers:   map[string]string{"X-Tenant": "acme"},
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStoreAndGet(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	reg := testRegistration("wh-1")
	require.NoError(t, repo.Store(ctx, reg))

	got, err := repo.Get(ctx, "wh-1")
	require.NoError(t, err)
	assert.Equal(t, reg.ID, got.ID)
	assert.Equal(t, reg.URL, got.URL)
	assert.Equal(t, reg.Events, got.Events)
	assert.Equal(t, reg.Secret, got.Secret)
	assert.Equal(t, reg.Headers, got.Headers)
	assert.True(t, got.Active)
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	_, err := repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, registration.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newTestRepository(t)
		reg := testRegistration("wh-1")
		require.NoError(t, repo.Store(ctx, reg))

		reg.URL = "https://other.example.com/hook"
		reg.Active = false
		require.NoError(t, repo.Update(ctx, reg))

		got, err := repo.Get(ctx, "wh-1")
		require.NoError(t, err)
		assert.Equal(t, "https://other.example.com/hook", got.URL)
		assert.False(t, got.Active)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newTestRepository(t)

		err := repo.Update(ctx, testRegistration("missing"))
		assert.ErrorIs(t, err, registration.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Store(ctx, testRegistration("wh-1")))
	require.NoError(t, repo.Store(ctx, testRegistration("wh-2")))

	regs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, regs, 2)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := newTestRepository(t)
		require.NoError(t, repo.Store(ctx, testRegistration("wh-1")))

		require.NoError(t, repo.Delete(ctx, "wh-1"))

		_, err := repo.Get(ctx, "wh-1")
		assert.ErrorIs(t, err, registration.ErrNotFound)
	})

	t.Run("not found", func(t *testing.T) {
		repo := newTestRepository(t)

		err := repo.Delete(ctx, "nope")
		assert.ErrorIs(t, err, registration.ErrNotFound)
	})
}
