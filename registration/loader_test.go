package registration_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/marcelsud/webhook-outbox/registration"
	"github.com/marcelsud/webhook-outbox/registration/mocks"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webhooks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeed(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		path := writeSeedFile(t, `
webhooks:
  - url: https://consumer.example.com/hook
    events:
      - user.created
      - user.*
    headers:
      X-Tenant: acme
  - url: https://billing.example.com/hook
    events:
      - invoice.paid
`)

		seed, err := registration.LoadSeed(path)

		require.NoError(t, err)
		require.Len(t, seed.Webhooks, 2)
		assert.Equal(t, "https://consumer.example.com/hook", seed.Webhooks[0].URL)
		assert.Equal(t, []string{"user.created", "user.*"}, seed.Webhooks[0].Events)
		assert.Equal(t, map[string]string{"X-Tenant": "acme"}, seed.Webhooks[0].Headers)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := registration.LoadSeed("/does/not/exist.yaml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "reading seed file")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeSeedFile(t, "webhooks: [not closed")

		_, err := registration.LoadSeed(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing seed file")
	})
}

func TestSeedApply(t *testing.T) {
	ctx := context.Background()

	seed := registration.SeedFile{
		Webhooks: []registration.SeedWebhook{
			{URL: "https://consumer.example.com/hook", Events: []string{"user.created"}},
			{URL: "https://billing.example.com/hook", Events: []string{"invoice.paid"}},
		},
	}

	t.Run("registers every new entry", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		svc.On("List", ctx).Return(nil, nil)
		svc.On("Register", ctx, "https://consumer.example.com/hook", []string{"user.created"}, "", map[string]string(nil)).
			Return(registration.Registration{ID: "wh-1"}, nil)
		svc.On("Register", ctx, "https://billing.example.com/hook", []string{"invoice.paid"}, "", map[string]string(nil)).
			Return(registration.Registration{ID: "wh-2"}, nil)

		created, err := seed.Apply(ctx, svc)

		require.NoError(t, err)
		assert.Equal(t, 2, created)
	})

	t.Run("skips urls that are already registered", func(t *testing.T) {
		svc := mocks.NewUseCase(t)
		svc.On("List", ctx).Return([]registration.Registration{
			{ID: "wh-1", URL: "https://consumer.example.com/hook"},
		}, nil)
		svc.On("Register", ctx, "https://billing.example.com/hook", mock.Anything, "", map[string]string(nil)).
			Return(registration.Registration{ID: "wh-2"}, nil)

		created, err := seed.Apply(ctx, svc)

		require.NoError(t, err)
		assert.Equal(t, 1, created)
		svc.AssertNumberOfCalls(t, "Register", 1)
	})
}
