package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the varsub tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("varsub")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartResolveSpan starts a span for an entire resolve call.
	// Returns the context with span and the span itself.
	StartResolveSpan(ctx context.Context, callID string) (context.Context, trace.Span)

	// StartLookupSpan starts a span for a single variable lookup.
	// The lookup span should be a child of the resolve span.
	StartLookupSpan(ctx context.Context, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartResolveSpan starts a span for an entire resolve call.
func (m *otelSpanManager) StartResolveSpan(ctx context.Context, callID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "varsub.resolve",
		trace.WithAttributes(
			attribute.String("call.id", callID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLookupSpan starts a span for a variable lookup.
func (m *otelSpanManager) StartLookupSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "varsub.lookup",
		trace.WithAttributes(
			attribute.String("variable", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Convenience functions that operate on the global tracer.
// These are useful for simple cases where you don't need the interface.

// StartResolveSpan starts a span for an entire resolve call.
// Uses the global OTel tracer.
func StartResolveSpan(ctx context.Context, callID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "varsub.resolve",
		trace.WithAttributes(
			attribute.String("call.id", callID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartLookupSpan starts a span for a variable lookup.
// Uses the global OTel tracer.
func StartLookupSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "varsub.lookup",
		trace.WithAttributes(
			attribute.String("variable", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
