/*
Package varsub provides recursive ${name} variable substitution for
arbitrarily shaped values.

# Overview

varsub walks a value of any shape - strings, slices, maps, or YAML node
trees - finds ${name} tokens in every reachable string, resolves each
distinct name once per call against a pluggable variable source, and
returns a structurally identical copy with resolvable tokens replaced.

Resolution never fails: an unknown variable or a failed lookup leaves the
original ${name} text in place, so partial failure is visible in the
output instead of aborting the whole call.

# Basic Usage

Create a resolver over a variable source and resolve values:

	reg := registry.New()
	reg.RegisterValue("host", "api.example.com")

	r := varsub.New(reg)
	out := r.Resolve(ctx, map[string]any{
	    "url":   "https://${host}/v1",
	    "ports": []any{"${port}", 8080},
	})
	// out: map[string]any{"url": "https://api.example.com/v1",
	//                     "ports": []any{"${port}", 8080}}

Slices of strings have a dedicated entry point:

	args := r.ResolveStrings(ctx, []string{"--host=${host}"})

# Lookup Semantics

Each top-level call owns a fresh lookup cache: a given name is resolved
against the source at most once per call, no matter how many times it
appears in the input. Variables that report no value, unknown names, and
failed lookups are all cached as absent for the remainder of the call.

Lookup failures are absorbed. They are reported through the configured
slog.Logger and recorded by the configured metrics, then the token is
left as-is.

# Shape Preservation

The output always has the same shape as the input: the same kind, the
same map keys, the same slice lengths and order. Only string leaves
change. Non-string scalars (numbers, booleans, nil) pass through
untouched. For inputs where key order matters, resolve a *yaml.Node
tree: mapping key order and node styles are preserved.

Resolved values are not re-scanned for further tokens, and cyclic inputs
are not detected; a cyclic map or slice will recurse without bound.

# Observability

Wire in logging, metrics, and tracing with options:

	r := varsub.New(reg,
	    varsub.WithLogger(logger),
	    varsub.WithMetrics(observability.NewMetricsRecorder()),
	    varsub.WithSpanManager(observability.NewSpanManager()),
	)

Each call gets a unique call ID that appears in logs and trace spans.

# Thread Safety

Resolver is safe for concurrent use after construction; every call works
on its own cache. The variable source must be safe for concurrent use.
*/
package varsub
