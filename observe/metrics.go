package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics records resolution metrics for the authentication engine.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Errors: recording must not panic; a nil *Metrics is a valid no-op.
type Metrics struct {
	attempts     metric.Int64Counter
	failures     metric.Int64Counter
	durationHist metric.Float64Histogram
	rateLimited  metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	attempts, err := meter.Int64Counter(
		"auth.resolve.attempts",
		metric.WithDescription("Authentication attempts per method"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"auth.resolve.failures",
		metric.WithDescription("Per-method validation failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"auth.resolve.duration_ms",
		metric.WithDescription("Full resolution duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	rateLimited, err := meter.Int64Counter(
		"auth.ratelimit.rejections",
		metric.WithDescription("Requests rejected by the rate limiter"),
		metric.WithUnit("{rejection}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		attempts:     attempts,
		failures:     failures,
		durationHist: durationHist,
		rateLimited:  rateLimited,
	}, nil
}

// NewNoopMetrics creates metrics backed by a no-op meter.
func NewNoopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("authcore"))
	return m
}

// RecordAttempt counts one validation attempt for a method.
func (m *Metrics) RecordAttempt(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("auth.method", method)))
}

// RecordFailure counts one per-method validation failure.
func (m *Metrics) RecordFailure(ctx context.Context, method string) {
	if m == nil {
		return
	}
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("auth.method", method)))
}

// RecordResolution records the duration and outcome of a full resolution.
func (m *Metrics) RecordResolution(ctx context.Context, method string, duration time.Duration, ok bool) {
	if m == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Bool("auth.ok", ok),
	}
	if method != "" {
		attrs = append(attrs, attribute.String("auth.method", method))
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
}

// RecordRateLimited counts one rate-limiter rejection.
func (m *Metrics) RecordRateLimited(ctx context.Context) {
	if m == nil {
		return
	}
	m.rateLimited.Add(ctx, 1)
}
