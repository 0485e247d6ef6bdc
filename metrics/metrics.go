package metrics

import "context"

// EndpointHealth is the last observed delivery health of a subscriber endpoint
type EndpointHealth struct {
	WebhookID string `json:"webhook_id"`
	URL       string `json:"url"`
	Healthy   bool   `json:"healthy"`
}

// Collector gathers the gauge values reported on scrape.
// Counters and histograms are pushed by the delivery path; gauges are pulled
// from storage so the API and worker processes agree on them.
type Collector interface {
	// GetQueueSize returns the number of scheduled delivery jobs
	GetQueueSize(ctx context.Context) (int64, error)

	// GetEndpointHealth returns the last observed health per endpoint
	GetEndpointHealth(ctx context.Context) ([]EndpointHealth, error)

	// GetRateLimitRemaining returns remaining delivery slots per webhook id
	GetRateLimitRemaining(ctx context.Context) (map[string]int64, error)

	// GetActiveWorkers returns the number of workers with a live heartbeat
	GetActiveWorkers(ctx context.Context) (int64, error)
}
