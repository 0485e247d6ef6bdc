package delivery_test

import (
	"testing"
	"time"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/stretchr/testify/assert"
)

func TestNextDelay(t *testing.T) {
	t.Run("doubles without jitter", func(t *testing.T) {
		b := delivery.Backoff{
			BaseDelay: time.Second,
			MaxDelay:  time.Minute,
			Factor:    2.0,
			Jitter:    0,
		}

		assert.Equal(t, 1*time.Second, b.NextDelay(1))
		assert.Equal(t, 2*time.Second, b.NextDelay(2))
		assert.Equal(t, 4*time.Second, b.NextDelay(3))
		assert.Equal(t, 8*time.Second, b.NextDelay(4))
	})

	t.Run("capped at max delay", func(t *testing.T) {
		b := delivery.Backoff{
			BaseDelay: time.Second,
			MaxDelay:  10 * time.Second,
			Factor:    2.0,
			Jitter:    0,
		}

		assert.Equal(t, 10*time.Second, b.NextDelay(5))
		assert.Equal(t, 10*time.Second, b.NextDelay(50))
	})

	t.Run("jitter stays within bounds", func(t *testing.T) {
		b := delivery.Backoff{
			BaseDelay: time.Second,
			MaxDelay:  time.Minute,
			Factor:    2.0,
			Jitter:    0.2,
		}

		for i := 0; i < 100; i++ {
			d := b.NextDelay(3)
			assert.GreaterOrEqual(t, d, 3200*time.Millisecond)
			assert.LessOrEqual(t, d, 4800*time.Millisecond)
		}
	})

	t.Run("never below the floor", func(t *testing.T) {
		b := delivery.Backoff{
			BaseDelay: time.Millisecond,
			MaxDelay:  time.Minute,
			Factor:    2.0,
			Jitter:    1.0,
		}

		for i := 0; i < 100; i++ {
			assert.GreaterOrEqual(t, b.NextDelay(1), 100*time.Millisecond)
		}
	})

	t.Run("attempt below one treated as first", func(t *testing.T) {
		b := delivery.Backoff{BaseDelay: time.Second, MaxDelay: time.Minute, Factor: 2.0}

		assert.Equal(t, time.Second, b.NextDelay(0))
		assert.Equal(t, time.Second, b.NextDelay(-3))
	})
}
