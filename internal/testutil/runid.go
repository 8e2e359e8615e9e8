package testutil

import (
	"fmt"
	"sync"
)

// DefaultRunID is used when a scenario does not pin its own run ID.
const DefaultRunID = "test-run-default"

// FixedRunIDGenerator returns the same run ID every time.
//
// This keeps journaled call IDs and golden traces byte-identical across
// test runs.
//
// Thread-safety: FixedRunIDGenerator is stateless and safe for concurrent use.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator creates a generator for id.
// If id is empty, Generate() returns DefaultRunID.
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run ID.
// Implements journal.RunIDGenerator.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}

// SequenceRunIDGenerator returns predetermined run IDs in order.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceRunIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewSequenceRunIDGenerator creates a generator that returns ids in order.
func NewSequenceRunIDGenerator(ids ...string) *SequenceRunIDGenerator {
	return &SequenceRunIDGenerator{ids: ids}
}

// Generate returns the next predetermined ID.
//
// Panics once all IDs have been consumed, so a test that makes more runs
// than it planned for fails loudly.
func (g *SequenceRunIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic(fmt.Sprintf("SequenceRunIDGenerator: all %d IDs consumed", len(g.ids)))
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}
