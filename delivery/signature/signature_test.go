package signature

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	t.Run("success - within size bounds", func(t *testing.T) {
		for _, size := range []int{MinSecretBytes, 32, MaxSecretBytes} {
			secret, err := GenerateSecret(size)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(secret.String(), SecretPrefix))
			assert.Equal(t, size, len(secret.Bytes()))
		}
	})

	t.Run("error - too small", func(t *testing.T) {
		_, err := GenerateSecret(MinSecretBytes - 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret size must be between")
	})

	t.Run("error - too large", func(t *testing.T) {
		_, err := GenerateSecret(MaxSecretBytes + 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret size must be between")
	})

	t.Run("randomness - generates different secrets", func(t *testing.T) {
		secret1, err1 := GenerateSecret(32)
		secret2, err2 := GenerateSecret(32)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, secret1.String(), secret2.String())
	})
}

func TestParseSecret(t *testing.T) {
	t.Run("success - round trips a generated secret", func(t *testing.T) {
		original, err := GenerateSecret(32)
		require.NoError(t, err)

		parsed, err := ParseSecret(original.String())
		require.NoError(t, err)
		assert.Equal(t, original.String(), parsed.String())
		assert.Equal(t, original.Bytes(), parsed.Bytes())
	})

	t.Run("error - missing prefix", func(t *testing.T) {
		_, err := ParseSecret("dGVzdHNlY3JldA==")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must start with")
	})

	t.Run("error - invalid base64", func(t *testing.T) {
		_, err := ParseSecret(SecretPrefix + "not-valid-base64!!!")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding base64")
	})

	t.Run("error - secret too small", func(t *testing.T) {
		_, err := ParseSecret(SecretPrefix + "dGVzdA==") // 4 bytes
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret size must be between")
	})
}

func TestSign(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)

	msgID := "d3b1f8a0-5c71-4c2a-94a7-02f7f4a1c001"
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"user.created","timestamp":"2024-01-01T12:00:00Z","data":{"id":"u-1"}}`)

	t.Run("success - versioned signature", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, payload)
		require.NoError(t, err)
		assert.Equal(t, SignatureVersion, sig.Version)
		assert.NotEmpty(t, sig.Signature)
		assert.True(t, strings.HasPrefix(sig.String(), "v1,"))
	})

	t.Run("success - deterministic for the same inputs", func(t *testing.T) {
		sig1, err1 := Sign(secret, msgID, timestamp, payload)
		sig2, err2 := Sign(secret, msgID, timestamp, payload)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, sig1.String(), sig2.String())
	})

	t.Run("success - different inputs produce different signatures", func(t *testing.T) {
		sig1, err1 := Sign(secret, msgID, timestamp, payload)
		sig2, err2 := Sign(secret, "other-message-id", timestamp, payload)
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, sig1.String(), sig2.String())
	})

	t.Run("error - message ID contains period", func(t *testing.T) {
		_, err := Sign(secret, "msg.with.periods", timestamp, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not contain '.'")
	})
}

func TestParseSignature(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		sig, err := ParseSignature("v1,c2lnbmF0dXJl")
		require.NoError(t, err)
		assert.Equal(t, "v1", sig.Version)
		assert.Equal(t, "c2lnbmF0dXJl", sig.Signature)
	})

	t.Run("error - no separator", func(t *testing.T) {
		_, err := ParseSignature("v1c2lnbmF0dXJl")
		require.Error(t, err)
	})
}

func TestVerify(t *testing.T) {
	secret, err := GenerateSecret(32)
	require.NoError(t, err)

	msgID := "d3b1f8a0-5c71-4c2a-94a7-02f7f4a1c001"
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	payload := []byte(`{"type":"user.created","timestamp":"2024-01-01T12:00:00Z","data":{"id":"u-1"}}`)

	t.Run("success - valid signature", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, payload)
		require.NoError(t, err)

		valid, err := Verify(secret, msgID, timestamp, payload, sig)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("failure - wrong secret", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, payload)
		require.NoError(t, err)

		wrongSecret, err := GenerateSecret(32)
		require.NoError(t, err)

		valid, err := Verify(wrongSecret, msgID, timestamp, payload, sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("failure - tampered payload", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, payload)
		require.NoError(t, err)

		tampered := []byte(`{"type":"user.created","timestamp":"2024-01-01T12:00:00Z","data":{"id":"u-2"}}`)
		valid, err := Verify(secret, msgID, timestamp, tampered, sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("failure - shifted timestamp", func(t *testing.T) {
		sig, err := Sign(secret, msgID, timestamp, payload)
		require.NoError(t, err)

		valid, err := Verify(secret, msgID, timestamp.Add(time.Second), payload, sig)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("error - unsupported version", func(t *testing.T) {
		sig := Signature{Version: "v2", Signature: "c2lnbmF0dXJl"}

		_, err := Verify(secret, msgID, timestamp, payload, sig)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported signature version")
	})
}
