// Package config loads declarative variable-source setup from files.
//
// A config file names static variables, opts into the process
// environment, and optionally points at a SQLite variable store:
//
//	variables:
//	  region: us-east-1
//	  service: billing
//	env: true
//	database: ./vars.db
//
// Load a file and build the composite source:
//
//	cfg, err := config.Load("varsub.yaml")
//	src, closeSrc, err := cfg.Source()
//	defer closeSrc()
//	r := varsub.New(src)
package config

import (
	"github.com/randalmurphal/varsub/pkg/varsub/registry"
)

// Config describes how to assemble a variable source.
type Config struct {
	// Variables holds static name/value pairs.
	Variables map[string]string `yaml:"variables" json:"variables"`

	// Env includes the process environment as a source.
	Env bool `yaml:"env" json:"env"`

	// Database is an optional path to a SQLite variable store.
	// Empty means no store.
	Database string `yaml:"database" json:"database"`
}

// Source builds the composite variable source described by the config.
//
// Precedence is static variables, then the environment, then the
// database: earlier sources shadow later ones. The returned close
// function releases the database handle (it is a no-op when no database
// is configured) and must be called when the source is no longer needed.
func (c Config) Source() (registry.Source, func() error, error) {
	sources := make([]registry.Source, 0, 3)

	if len(c.Variables) > 0 {
		sources = append(sources, registry.Static(c.Variables))
	}
	if c.Env {
		sources = append(sources, registry.Env())
	}

	closeSrc := func() error { return nil }
	if c.Database != "" {
		store, err := registry.NewSQLiteStore(c.Database)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, store)
		closeSrc = store.Close
	}

	return registry.Multi(sources...), closeSrc, nil
}
