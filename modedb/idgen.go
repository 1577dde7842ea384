package modedb

import (
	"strconv"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// NewSequentialIDGenerator returns a generator that produces "1", "2", ... so
// that catalogs built in tests are deterministic.
func NewSequentialIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

// NewParallelIDGenerator returns a generator of globally unique IDs that is
// safe to share between processes writing to the same store.
func NewParallelIDGenerator() IDGenerator {
	return parallelIDGenerator{}
}

// sequentialIDGenerator counts catalog entries from 1. The catalog skips
// numbers that a reloaded store already uses.
type sequentialIDGenerator struct {
	last atomic.Uint64
}

func (g *sequentialIDGenerator) Generate() string {
	return strconv.FormatUint(g.last.Add(1), 10)
}

// parallelIDGenerator hands out xids, so entries written by separate
// processes into one database never collide.
type parallelIDGenerator struct{}

func (parallelIDGenerator) Generate() string {
	return xid.New().String()
}
