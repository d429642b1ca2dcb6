package varsub

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/varsub/pkg/varsub/observability"
	"github.com/randalmurphal/varsub/pkg/varsub/registry"
)

// lookupResult is the terminal state of one name within a resolution.
// ok=false means absent: unknown name, no value, or failed lookup.
type lookupResult struct {
	value string
	ok    bool
}

// resolution is the lookup cache for a single top-level resolve call.
//
// It lives exactly as long as the call, is threaded by reference through
// the traversal, and is discarded when the call returns. Once a name is
// cached - with a value or as absent - it is never consulted against the
// source again within this resolution.
type resolution struct {
	source  registry.Source
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	values   map[string]lookupResult
	lookups  int
	failures int
}

func (r *Resolver) newResolution(logger *slog.Logger) *resolution {
	return &resolution{
		source:  r.source,
		logger:  logger,
		metrics: r.metrics,
		spans:   r.spans,
		values:  make(map[string]lookupResult),
	}
}

// value returns the cached result for name. ok=false means name was
// never resolved in this call or resolved to absent.
func (c *resolution) value(name string) (string, bool) {
	res, cached := c.values[name]
	if !cached || !res.ok {
		return "", false
	}
	return res.value, true
}

// resolve looks up name and caches the outcome. It is idempotent per
// name: a cached name, even one cached as absent, returns immediately
// without consulting the source.
//
// Failures never escape: a lookup error is reported through the
// diagnostic logger and metrics, then cached as absent.
func (c *resolution) resolve(ctx context.Context, name string) {
	if _, cached := c.values[name]; cached {
		return
	}

	v, known := c.source.Variable(name)
	if !known {
		// Unknown names are absent, not errors.
		c.values[name] = lookupResult{}
		return
	}

	c.lookups++
	start := time.Now()
	ctx, span := c.spans.StartLookupSpan(ctx, name)
	value, ok, err := v.Resolve(ctx)
	duration := time.Since(start)

	if err != nil {
		c.failures++
		lerr := &LookupError{Name: name, Err: err}
		observability.LogLookupError(c.logger, name, err)
		c.metrics.RecordLookup(ctx, name, duration, lerr)
		c.spans.EndSpanWithError(span, lerr)
		c.values[name] = lookupResult{}
		return
	}

	if !ok {
		c.spans.AddSpanEvent(ctx, "varsub.lookup.novalue",
			attribute.String("variable", name))
	}
	c.metrics.RecordLookup(ctx, name, duration, nil)
	c.spans.EndSpanWithError(span, nil)

	if !ok {
		c.values[name] = lookupResult{}
		return
	}
	c.values[name] = lookupResult{value: value, ok: true}
}
