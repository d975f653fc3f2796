package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDs generates predictable record IDs for golden tests.
//
// IDs have the shape of a UUID so they pass the same column constraints as
// the production UUIDv7 generator:
//
//	00000000-0000-7000-8000-000000000001
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceIDs struct {
	mu  sync.Mutex
	seq int64
}

// NewSequenceIDs creates a generator whose first ID ends in ...0001.
func NewSequenceIDs() *SequenceIDs {
	return &SequenceIDs{}
}

// NewID returns the next ID. Implements store.IDGenerator.
func (g *SequenceIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", g.seq)
}

// Reset restarts the sequence at 1.
func (g *SequenceIDs) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
