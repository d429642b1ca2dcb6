package varsub

import (
	"context"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/varsub/pkg/varsub/observability"
	"github.com/randalmurphal/varsub/pkg/varsub/registry"
)

// tokenPattern matches ${name} - the name is captured non-greedily and
// may be empty or contain any character other than a closing brace.
var tokenPattern = regexp.MustCompile(`\$\{(.*?)\}`)

// Resolver substitutes ${name} tokens in arbitrarily shaped values.
//
// Create with New() and configure with Option functions.
// Resolver is safe for concurrent use after construction.
type Resolver struct {
	source  registry.Source
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates a Resolver over the given variable source.
//
// Default configuration:
//   - Logger: slog.Default()
//   - Metrics: observability.NoopMetrics{}
//   - Spans: observability.NoopSpanManager{}
//
// Example:
//
//	r := varsub.New(reg,
//	    varsub.WithLogger(logger),
//	    varsub.WithMetrics(observability.NewMetricsRecorder()),
//	)
func New(source registry.Source, opts ...Option) *Resolver {
	r := &Resolver{
		source:  source,
		logger:  slog.Default(),
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns a copy of value with every resolvable ${name} token in
// every reachable string replaced by its resolved text.
//
// Resolve never fails. Unknown variables, variables without values, and
// failed lookups all leave the original token text in place; failures are
// additionally reported through the diagnostic logger and metrics.
//
// The output has the same shape as the input: same kind, same map keys,
// same slice lengths and order. Only string leaves change. Each distinct
// name is looked up at most once per call.
func (r *Resolver) Resolve(ctx context.Context, value any) any {
	if ctx == nil {
		ctx = context.Background()
	}

	callID := uuid.NewString()
	logger := observability.EnrichLogger(r.logger, callID)
	res := r.newResolution(logger)

	start := time.Now()
	ctx, span := r.spans.StartResolveSpan(ctx, callID)
	observability.LogResolveStart(logger, callID)

	out := res.resolveValue(ctx, value)

	duration := time.Since(start)
	r.metrics.RecordResolve(ctx, duration, res.lookups, res.failures)
	r.spans.EndSpanWithError(span, nil)
	observability.LogResolveComplete(logger, callID,
		float64(duration.Milliseconds()), res.lookups, res.failures)

	return out
}

// ResolveStrings resolves each element of values. It is semantically
// identical to calling Resolve on the slice, with a typed result.
//
// Returns nil for a nil slice. Length and order are preserved.
func (r *Resolver) ResolveStrings(ctx context.Context, values []string) []string {
	if values == nil {
		return nil
	}
	out, _ := r.Resolve(ctx, values).([]string)
	return out
}

// resolveValue dispatches on the value's shape. The case set is closed:
// anything not listed passes through untouched.
func (c *resolution) resolveValue(ctx context.Context, value any) any {
	switch val := value.(type) {
	case nil:
		return nil
	case string:
		return c.resolveString(ctx, val)
	case []string:
		return c.resolveStrings(ctx, val)
	case []any:
		return c.resolveSlice(ctx, val)
	case map[string]any:
		return c.resolveMap(ctx, val)
	case *yaml.Node:
		return c.resolveNode(ctx, val)
	default:
		return value
	}
}

// resolveString substitutes tokens in a single string in two phases.
//
// The scan phase resolves every matched name so the cache holds an
// outcome for each distinct name in this string. The substitute phase
// re-matches the same pattern and splices in cached values, keeping the
// original token text where the cache holds no value. Go's regexp
// matching carries no position state between the phases.
func (c *resolution) resolveString(ctx context.Context, s string) string {
	matches := tokenPattern.FindAllStringSubmatch(s, -1)
	if matches == nil {
		return s
	}

	for _, m := range matches {
		c.resolve(ctx, m[1])
	}

	return tokenPattern.ReplaceAllStringFunc(s, func(token string) string {
		name := token[2 : len(token)-1]
		if value, ok := c.value(name); ok {
			return value
		}
		return token
	})
}

func (c *resolution) resolveStrings(ctx context.Context, values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, s := range values {
		out[i] = c.resolveString(ctx, s)
	}
	return out
}

func (c *resolution) resolveSlice(ctx context.Context, values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = c.resolveValue(ctx, v)
	}
	return out
}

func (c *resolution) resolveMap(ctx context.Context, values map[string]any) map[string]any {
	if values == nil {
		return nil
	}
	out := make(map[string]any, len(values))
	for k, v := range values {
		out[k] = c.resolveValue(ctx, v)
	}
	return out
}
