package testutil

import "time"

// FixedRunIDGenerator returns the same run id every time.
//
// Unlike batch.FixedGenerator which returns ids in sequence, this generator
// never runs out, so a test can start any number of runs.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id.
// If id is empty, Generate() returns "test-run-default".
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run id.
//
// Implements batch.RunIDGenerator interface.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// FrozenNow returns a wall clock stuck at t. Every duration measured
// with it is zero, which keeps timing columns stable in golden reports.
func FrozenNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
