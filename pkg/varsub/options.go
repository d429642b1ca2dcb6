package varsub

import (
	"log/slog"

	"github.com/randalmurphal/varsub/pkg/varsub/observability"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the diagnostic logger.
//
// Absorbed lookup failures are reported here at Warn level. Default:
// slog.Default().
//
// Example:
//
//	r := varsub.New(reg, varsub.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder.
//
// Default: observability.NoopMetrics{}.
//
// Example:
//
//	r := varsub.New(reg, varsub.WithMetrics(observability.NewMetricsRecorder()))
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithSpanManager sets the trace span manager.
//
// Default: observability.NoopSpanManager{}.
//
// Example:
//
//	r := varsub.New(reg, varsub.WithSpanManager(observability.NewSpanManager()))
func WithSpanManager(s observability.SpanManager) Option {
	return func(r *Resolver) {
		if s != nil {
			r.spans = s
		}
	}
}
