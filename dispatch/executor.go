package dispatch

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/marcelsud/webhook-outbox/delivery"
	"github.com/marcelsud/webhook-outbox/delivery/signature"
	"github.com/marcelsud/webhook-outbox/registration"
)

// Delivery headers, Standard Webhooks style
const (
	HeaderID        = "webhook-id"
	HeaderTimestamp = "webhook-timestamp"
	HeaderSignature = "webhook-signature"
	HeaderEventType = "webhook-event-type"
)

/* Executor performs one HTTP POST per attempt and classifies the result
 * It never decides what happens next; that is the delivery state machine's job
 */
type Executor struct {
	client  *http.Client
	timeout time.Duration
}

// NewExecutor creates an executor with a bounded per-attempt timeout
func NewExecutor(timeout time.Duration) *Executor {
	return &Executor{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Execute signs and sends one delivery attempt, returning the attempt record.
// Classification: 2xx is success, dial/connection failures are
// connection_error, deadline hits are timeout_error, everything else the
// endpoint answered with is invalid_response.
func (e *Executor) Execute(ctx context.Context, reg registration.Registration, job delivery.Job) delivery.Attempt {
	attempt := delivery.Attempt{
		JobID:     job.ID,
		Number:    job.AttemptCount + 1,
		Timestamp: time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reg.URL, bytes.NewReader(job.Payload))
	if err != nil {
		attempt.Outcome = delivery.OutcomeConnectionError
		attempt.Error = err.Error()
		return attempt
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(HeaderID, job.ID)
	req.Header.Set(HeaderTimestamp, formatUnix(attempt.Timestamp))
	req.Header.Set(HeaderEventType, job.EventName)
	for key, value := range reg.Headers {
		req.Header.Set(key, value)
	}

	if reg.Secret != "" {
		secret, err := signature.ParseSecret(reg.Secret)
		if err != nil {
			attempt.Outcome = delivery.OutcomeConnectionError
			attempt.Error = err.Error()
			return attempt
		}
		sig, err := signature.Sign(secret, job.ID, attempt.Timestamp, job.Payload)
		if err != nil {
			attempt.Outcome = delivery.OutcomeConnectionError
			attempt.Error = err.Error()
			return attempt
		}
		req.Header.Set(HeaderSignature, sig.String())
	}

	start := time.Now()
	resp, err := e.client.Do(req)
	attempt.LatencyMS = time.Since(start).Milliseconds()

	if err != nil {
		attempt.Outcome = classifyError(err)
		attempt.Error = err.Error()
		return attempt
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	attempt.HTTPStatus = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		attempt.Outcome = delivery.OutcomeSuccess
	} else {
		attempt.Outcome = delivery.OutcomeInvalidResponse
	}
	return attempt
}

func classifyError(err error) delivery.Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return delivery.OutcomeTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return delivery.OutcomeTimeout
	}

	return delivery.OutcomeConnectionError
}

func formatUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
