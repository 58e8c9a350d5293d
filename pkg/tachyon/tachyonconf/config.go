// Package tachyonconf holds the one piece of runtime-tunable policy this
// module leaves implementation-defined: which randomness source a caller
// hands to custody authorization. Domain separators are not configurable
// here; they are fixed in package constants. There is no persisted state,
// file, or environment parsing here —
// the cryptographic core never reads configuration from outside a caller's
// explicit construction (SPEC_FULL.md section 6).
package tachyonconf

import (
	"crypto/rand"
	"io"
)

// Config is a plain value built via functional options, matching the
// teacher's own options-struct convention for its client/service configs.
type Config struct {
	rng io.Reader
}

// Option mutates a Config under construction.
type Option func(*Config)

// WithRandomSource overrides the default crypto/rand.Reader, primarily for
// deterministic tests that need reproducible entropy.
func WithRandomSource(rng io.Reader) Option {
	return func(c *Config) { c.rng = rng }
}

// New builds a Config, defaulting to crypto/rand.Reader.
func New(opts ...Option) Config {
	c := Config{rng: rand.Reader}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// RandomSource returns the configured randomness source.
func (c Config) RandomSource() io.Reader { return c.rng }
