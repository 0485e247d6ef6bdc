package delivery

import "time"

/* Job represents one pending or completed delivery of an event to a subscriber
 * Uses value semantics as it represents data, not behavior
 */
type Job struct {
	ID            string
	WebhookID     string
	EventName     string
	Payload       []byte
	AttemptCount  int
	MaxRetries    int
	Status        Status
	NextAttemptAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Attempt is one entry of the append-only delivery history for a job
type Attempt struct {
	JobID      string    `json:"job_id"`
	Number     int       `json:"number"`
	Outcome    Outcome   `json:"outcome"`
	HTTPStatus int       `json:"http_status,omitempty"`
	Error      string    `json:"error,omitempty"`
	LatencyMS  int64     `json:"latency_ms"`
	Timestamp  time.Time `json:"timestamp"`
}
