package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records varsub metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordResolve records a completed resolve call with its duration,
	// the number of distinct variable lookups, and the number of
	// lookups that failed.
	RecordResolve(ctx context.Context, duration time.Duration, lookups, failures int)

	// RecordLookup records a single variable lookup with its duration
	// and error status.
	RecordLookup(ctx context.Context, name string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	resolveCalls   metric.Int64Counter
	resolveLatency metric.Float64Histogram
	lookupCount    metric.Int64Counter
	lookupErrors   metric.Int64Counter
	lookupLatency  metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("varsub")

	resolveCalls, err := meter.Int64Counter("varsub.resolve.calls",
		metric.WithDescription("Number of resolve calls"),
	)
	if err != nil {
		return nil, err
	}

	resolveLatency, err := meter.Float64Histogram("varsub.resolve.latency_ms",
		metric.WithDescription("Resolve call latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	lookupCount, err := meter.Int64Counter("varsub.lookup.count",
		metric.WithDescription("Number of variable lookups"),
	)
	if err != nil {
		return nil, err
	}

	lookupErrors, err := meter.Int64Counter("varsub.lookup.errors",
		metric.WithDescription("Number of failed variable lookups"),
	)
	if err != nil {
		return nil, err
	}

	lookupLatency, err := meter.Float64Histogram("varsub.lookup.latency_ms",
		metric.WithDescription("Variable lookup latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		resolveCalls:   resolveCalls,
		resolveLatency: resolveLatency,
		lookupCount:    lookupCount,
		lookupErrors:   lookupErrors,
		lookupLatency:  lookupLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordResolve records a resolve call.
func (m *otelMetrics) RecordResolve(ctx context.Context, duration time.Duration, lookups, failures int) {
	attrs := []attribute.KeyValue{
		attribute.Bool("failures", failures > 0),
	}
	m.resolveCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.resolveLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordLookup records a variable lookup.
func (m *otelMetrics) RecordLookup(ctx context.Context, name string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("variable", name),
	}

	m.lookupCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.lookupLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.lookupErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
