package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

/* Recorder exposes the delivery metrics contract in Prometheus format via
 * OpenTelemetry instruments:
 *   webhook_deliveries_total{status}        counter
 *   webhook_delivery_duration_seconds       histogram
 *   webhook_retry_count_total               counter
 *   webhook_max_retries_exceeded_total      counter
 *   webhook_errors_total{error_type}        counter
 *   webhook_queue_size                      gauge
 *   webhook_health{url}                     gauge (1 healthy / 0 down)
 *   webhook_rate_limit_remaining{webhook_id} gauge
 *   webhook_workers_active                  gauge
 */
type Recorder struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector
	meter         metric.Meter

	deliveries         metric.Int64Counter
	duration           metric.Float64Histogram
	retries            metric.Int64Counter
	maxRetriesExceeded metric.Int64Counter
	errors             metric.Int64Counter

	queueSizeGauge metric.Int64ObservableGauge
	healthGauge    metric.Int64ObservableGauge
	rateLimitGauge metric.Int64ObservableGauge
	workersGauge   metric.Int64ObservableGauge
}

// NewRecorder creates the OTel instruments and registers the Prometheus exporter
func NewRecorder(collector Collector) (*Recorder, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"webhook-outbox",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	r := &Recorder{
		meterProvider: meterProvider,
		collector:     collector,
		meter:         meter,
	}

	if err := r.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return r, nil
}

func (r *Recorder) registerInstruments() error {
	var err error

	r.deliveries, err = r.meter.Int64Counter(
		"webhook.deliveries",
		metric.WithDescription("Delivery attempts by final classification"),
		metric.WithUnit("{deliveries}"),
	)
	if err != nil {
		return fmt.Errorf("creating deliveries counter: %w", err)
	}

	r.duration, err = r.meter.Float64Histogram(
		"webhook.delivery.duration",
		metric.WithDescription("Time spent delivering a webhook"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	r.retries, err = r.meter.Int64Counter(
		"webhook.retry.count",
		metric.WithDescription("Deliveries re-queued for retry"),
		metric.WithUnit("{retries}"),
	)
	if err != nil {
		return fmt.Errorf("creating retry counter: %w", err)
	}

	r.maxRetriesExceeded, err = r.meter.Int64Counter(
		"webhook.max_retries.exceeded",
		metric.WithDescription("Jobs dead-lettered after exhausting retries"),
		metric.WithUnit("{jobs}"),
	)
	if err != nil {
		return fmt.Errorf("creating max retries counter: %w", err)
	}

	r.errors, err = r.meter.Int64Counter(
		"webhook.errors",
		metric.WithDescription("Delivery attempt errors by type"),
		metric.WithUnit("{errors}"),
	)
	if err != nil {
		return fmt.Errorf("creating errors counter: %w", err)
	}

	r.queueSizeGauge, err = r.meter.Int64ObservableGauge(
		"webhook.queue.size",
		metric.WithDescription("Number of scheduled delivery jobs"),
		metric.WithUnit("{jobs}"),
		metric.WithInt64Callback(r.observeQueueSize),
	)
	if err != nil {
		return fmt.Errorf("creating queue size gauge: %w", err)
	}

	r.healthGauge, err = r.meter.Int64ObservableGauge(
		"webhook.health",
		metric.WithDescription("Per-endpoint delivery health, 1 healthy / 0 down"),
		metric.WithInt64Callback(r.observeEndpointHealth),
	)
	if err != nil {
		return fmt.Errorf("creating health gauge: %w", err)
	}

	r.rateLimitGauge, err = r.meter.Int64ObservableGauge(
		"webhook.rate_limit.remaining",
		metric.WithDescription("Remaining delivery slots in the current window"),
		metric.WithUnit("{deliveries}"),
		metric.WithInt64Callback(r.observeRateLimitRemaining),
	)
	if err != nil {
		return fmt.Errorf("creating rate limit gauge: %w", err)
	}

	r.workersGauge, err = r.meter.Int64ObservableGauge(
		"webhook.workers.active",
		metric.WithDescription("Number of workers with a live heartbeat"),
		metric.WithUnit("{workers}"),
		metric.WithInt64Callback(r.observeActiveWorkers),
	)
	if err != nil {
		return fmt.Errorf("creating workers gauge: %w", err)
	}

	return nil
}

// Delivery records one classified delivery attempt and its duration
func (r *Recorder) Delivery(ctx context.Context, status string, seconds float64) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	r.deliveries.Add(ctx, 1, attrs)
	r.duration.Record(ctx, seconds, attrs)
}

// Retry counts one re-queued delivery
func (r *Recorder) Retry(ctx context.Context) {
	r.retries.Add(ctx, 1)
}

// MaxRetriesExceeded counts one dead-lettered job
func (r *Recorder) MaxRetriesExceeded(ctx context.Context) {
	r.maxRetriesExceeded.Add(ctx, 1)
}

// DeliveryError counts one attempt error by type
func (r *Recorder) DeliveryError(ctx context.Context, errorType string) {
	r.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("error_type", errorType)))
}

// Handler returns the Prometheus scrape endpoint
func (r *Recorder) Handler() http.Handler {
	return promhttp.Handler()
}

// Shutdown flushes and stops the meter provider
func (r *Recorder) Shutdown(ctx context.Context) error {
	return r.meterProvider.Shutdown(ctx)
}

func (r *Recorder) observeQueueSize(ctx context.Context, observer metric.Int64Observer) error {
	size, err := r.collector.GetQueueSize(ctx)
	if err != nil {
		return err
	}
	observer.Observe(size)
	return nil
}

func (r *Recorder) observeEndpointHealth(ctx context.Context, observer metric.Int64Observer) error {
	endpoints, err := r.collector.GetEndpointHealth(ctx)
	if err != nil {
		return err
	}

	for _, e := range endpoints {
		value := int64(0)
		if e.Healthy {
			value = 1
		}
		observer.Observe(value, metric.WithAttributes(
			attribute.String("url", e.URL),
		))
	}
	return nil
}

func (r *Recorder) observeRateLimitRemaining(ctx context.Context, observer metric.Int64Observer) error {
	remaining, err := r.collector.GetRateLimitRemaining(ctx)
	if err != nil {
		return err
	}

	for webhookID, left := range remaining {
		observer.Observe(left, metric.WithAttributes(
			attribute.String("webhook_id", webhookID),
		))
	}
	return nil
}

func (r *Recorder) observeActiveWorkers(ctx context.Context, observer metric.Int64Observer) error {
	workers, err := r.collector.GetActiveWorkers(ctx)
	if err != nil {
		return err
	}
	observer.Observe(workers)
	return nil
}
