package delivery

import (
	"math"
	"math/rand"
	"time"
)

// Backoff computes exponential retry delays with bounded jitter.
type Backoff struct {
	BaseDelay time.Duration
	MaxDelay  time.Duration
	Factor    float64
	// Jitter is the fraction of the delay randomized in either direction,
	// 0.0-1.0. Keeps a herd of retrying jobs from firing at the same instant.
	Jitter float64
}

// DefaultBackoff returns a standard backoff configuration.
func DefaultBackoff() Backoff {
	return Backoff{
		BaseDelay: 1 * time.Second,
		MaxDelay:  5 * time.Minute,
		Factor:    2.0,
		Jitter:    0.2,
	}
}

// NextDelay returns the delay before retry number attempt (1-based).
// The deterministic part is BaseDelay * Factor^(attempt-1) capped at MaxDelay.
func (b Backoff) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	delay := float64(b.BaseDelay) * math.Pow(b.Factor, float64(attempt-1))
	if delay > float64(b.MaxDelay) {
		delay = float64(b.MaxDelay)
	}

	if b.Jitter > 0 {
		jitterRange := delay * b.Jitter
		delay += (rand.Float64() * 2 * jitterRange) - jitterRange
	}

	if delay < float64(100*time.Millisecond) {
		delay = float64(100 * time.Millisecond)
	}

	return time.Duration(delay)
}
