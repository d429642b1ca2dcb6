// Package observability provides production-grade observability features
// for varsub: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds resolve-call context to a logger.
// Returns a new logger with a call_id field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "call-123")
//	enriched.Info("doing work") // includes call_id
func EnrichLogger(logger *slog.Logger, callID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("call_id", callID),
	)
}

// LogResolveStart logs the start of a resolve call.
func LogResolveStart(logger *slog.Logger, callID string) {
	if logger == nil {
		return
	}
	logger.Debug("resolve starting",
		slog.String("call_id", callID),
	)
}

// LogResolveComplete logs resolve call completion.
func LogResolveComplete(logger *slog.Logger, callID string, durationMs float64, lookups, failures int) {
	if logger == nil {
		return
	}
	logger.Debug("resolve completed",
		slog.String("call_id", callID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("lookups", lookups),
		slog.Int("failures", failures),
	)
}

// LogLookupError logs a variable lookup failure (non-fatal).
// This is the diagnostic channel for failures the resolver absorbs:
// the token stays unreplaced and the resolve call carries on.
func LogLookupError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("variable lookup failed",
		slog.String("variable", name),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
