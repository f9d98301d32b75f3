// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"fmt"
	"sync"
)

// SequentialRunIDGenerator generates predictable run IDs for tests:
// "<prefix>-0001", "<prefix>-0002", and so on.
//
// A test can record any number of runs and still know every ID in advance.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialRunIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialRunIDGenerator creates a generator. An empty prefix
// defaults to "run".
func NewSequentialRunIDGenerator(prefix string) *SequentialRunIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialRunIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
//
// Implements engine.RunIDGenerator.
func (g *SequentialRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
