package testutil

import (
	"fmt"
	"sync/atomic"
)

// SequentialIDGenerator yields "id-1", "id-2", ... so tests can assert on ids
type SequentialIDGenerator struct {
	counter atomic.Int64
}

// NewSequentialIDGenerator creates a generator starting at id-1
func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{}
}

// NewID returns the next id in the sequence
func (g *SequentialIDGenerator) NewID() string {
	return fmt.Sprintf("id-%d", g.counter.Add(1))
}
