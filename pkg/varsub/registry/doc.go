/*
Package registry provides variable sources for varsub.

# Overview

A variable source maps names to variables. The resolver asks a source for
a variable by name, then asks the variable to produce its value. Sources
ship in several flavors:

  - Registry - mutable, thread-safe, for programmatic registration
  - Static - fixed name/value pairs
  - Env - the process environment
  - Multi - composition of sources with first-match precedence
  - SQLiteStore - persistent name/value storage

# Basic Usage

Register variables and hand the registry to a resolver:

	reg := registry.New()
	reg.RegisterValue("region", "us-east-1")
	reg.RegisterFunc("hostname", func(ctx context.Context) (string, bool, error) {
	    return os.Hostname()
	})

	r := varsub.New(reg)
	out := r.Resolve(ctx, "deploying to ${region}")

# Composition

Combine sources so earlier ones shadow later ones:

	src := registry.Multi(
	    registry.Static(map[string]string{"env": "prod"}),
	    registry.Env(),
	)

# Value Semantics

A variable's Resolve returns (value, ok, err). ok=false means the variable
exists but currently has no value. A non-nil error means the lookup failed;
the resolver absorbs both cases and leaves the token unreplaced.
*/
package registry
