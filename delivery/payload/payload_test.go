package payload

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("success - creates valid event", func(t *testing.T) {
		evt, err := New("user.created", json.RawMessage(`{"user_id":123}`))
		require.NoError(t, err)
		assert.Equal(t, "user.created", evt.Type)
		assert.False(t, evt.Timestamp.IsZero())
		assert.NotEmpty(t, evt.Data)
	})

	t.Run("success - hierarchical event type", func(t *testing.T) {
		evt, err := New("order.item.updated", json.RawMessage(`{"id":"123"}`))
		require.NoError(t, err)
		assert.Equal(t, "order.item.updated", evt.Type)
	})

	t.Run("error - invalid event type format", func(t *testing.T) {
		_, err := New("invalid-type-with-dashes", json.RawMessage(`{"id":"123"}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validating event")
	})

	t.Run("error - empty event type", func(t *testing.T) {
		_, err := New("", json.RawMessage(`{"id":"123"}`))
		require.Error(t, err)
	})

	t.Run("error - missing data", func(t *testing.T) {
		_, err := New("test.event", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data is required")
	})

	t.Run("error - data is not valid JSON", func(t *testing.T) {
		_, err := New("test.event", json.RawMessage(`{broken`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "valid JSON")
	})
}

func TestParse(t *testing.T) {
	t.Run("success - valid event", func(t *testing.T) {
		data := []byte(`{
			"type": "user.created",
			"timestamp": "2024-01-01T12:00:00Z",
			"data": {"user_id": 123, "name": "John Doe"}
		}`)

		evt, err := Parse(data)
		require.NoError(t, err)
		assert.Equal(t, "user.created", evt.Type)
		assert.Equal(t, 2024, evt.Timestamp.Year())
		assert.NotEmpty(t, evt.Data)
	})

	t.Run("success - timestamp with nanoseconds", func(t *testing.T) {
		data := []byte(`{
			"type": "test.event",
			"timestamp": "2024-01-01T12:00:00.123456789Z",
			"data": {"foo": "bar"}
		}`)

		evt, err := Parse(data)
		require.NoError(t, err)
		assert.NotZero(t, evt.Timestamp.Nanosecond())
	})

	t.Run("error - invalid JSON", func(t *testing.T) {
		_, err := Parse([]byte(`{invalid json}`))
		require.Error(t, err)
	})

	t.Run("error - missing type", func(t *testing.T) {
		data := []byte(`{
			"timestamp": "2024-01-01T12:00:00Z",
			"data": {"foo": "bar"}
		}`)

		_, err := Parse(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "type is required")
	})

	t.Run("error - missing timestamp", func(t *testing.T) {
		data := []byte(`{
			"type": "test.event",
			"data": {"foo": "bar"}
		}`)

		_, err := Parse(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "timestamp")
	})

	t.Run("error - missing data", func(t *testing.T) {
		data := []byte(`{
			"type": "test.event",
			"timestamp": "2024-01-01T12:00:00Z"
		}`)

		_, err := Parse(data)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "data is required")
	})
}

func TestBytes(t *testing.T) {
	t.Run("round trips through the wire encoding", func(t *testing.T) {
		evt, err := New("user.created", json.RawMessage(`{"user_id":123}`))
		require.NoError(t, err)

		encoded, err := evt.Bytes()
		require.NoError(t, err)

		decoded, err := Parse(encoded)
		require.NoError(t, err)
		assert.Equal(t, evt.Type, decoded.Type)
		assert.JSONEq(t, string(evt.Data), string(decoded.Data))
	})

	t.Run("encoding is deterministic", func(t *testing.T) {
		evt, err := New("user.created", json.RawMessage(`{"user_id":123}`))
		require.NoError(t, err)

		first, err := evt.Bytes()
		require.NoError(t, err)
		second, err := evt.Bytes()
		require.NoError(t, err)
		// The signature is computed over these bytes, so they must not vary
		assert.Equal(t, first, second)
	})
}

func TestValidateEventType(t *testing.T) {
	t.Run("valid types", func(t *testing.T) {
		for _, eventType := range []string{"user.created", "order.item.updated", "ping", "user_v2.created"} {
			assert.NoError(t, ValidateEventType(eventType), eventType)
		}
	})

	t.Run("valid wildcard patterns", func(t *testing.T) {
		for _, pattern := range []string{"user.*", "order.item.*"} {
			assert.NoError(t, ValidateEventType(pattern), pattern)
		}
	})

	t.Run("invalid types", func(t *testing.T) {
		for _, eventType := range []string{"", "user-created", "user..created", ".*", "has space"} {
			assert.Error(t, ValidateEventType(eventType), eventType)
		}
	})
}

func TestMatchesEventType(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		assert.True(t, MatchesEventType("user.created", []string{"user.created"}))
		assert.False(t, MatchesEventType("user.deleted", []string{"user.created"}))
	})

	t.Run("trailing wildcard", func(t *testing.T) {
		assert.True(t, MatchesEventType("user.created", []string{"user.*"}))
		assert.True(t, MatchesEventType("user.profile.updated", []string{"user.*"}))
		assert.False(t, MatchesEventType("user", []string{"user.*"}))
		assert.False(t, MatchesEventType("username.taken", []string{"user.*"}))
	})

	t.Run("any pattern in the list matches", func(t *testing.T) {
		patterns := []string{"order.paid", "user.*"}
		assert.True(t, MatchesEventType("order.paid", patterns))
		assert.True(t, MatchesEventType("user.created", patterns))
		assert.False(t, MatchesEventType("invoice.sent", patterns))
	})

	t.Run("empty pattern list matches nothing", func(t *testing.T) {
		assert.False(t, MatchesEventType("user.created", nil))
	})
}
