package models

import (
	"sync"

	"github.com/google/uuid"
)

// IDGenerator hands out identifiers that are never reused, including ids
// that were loaded from storage and later deleted.
type IDGenerator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	source func() string
}

// NewIDGenerator creates a generator backed by time-ordered UUIDs
func NewIDGenerator() *IDGenerator {
	return NewIDGeneratorWithSource(newUUID)
}

// NewIDGeneratorWithSource creates a generator drawing candidates from source
func NewIDGeneratorWithSource(source func() string) *IDGenerator {
	return &IDGenerator{
		issued: make(map[string]struct{}),
		source: source,
	}
}

// New returns an id that has not been issued or reserved before
func (g *IDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		id := g.source()
		if id == "" {
			continue
		}
		if _, taken := g.issued[id]; taken {
			continue
		}
		g.issued[id] = struct{}{}
		return id
	}
}

// Reserve marks an externally created id as used
func (g *IDGenerator) Reserve(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.issued[id] = struct{}{}
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
