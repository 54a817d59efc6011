package memory

import (
	"context"
	"sync"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// MemoryBackend keeps entries in process memory, in first-insertion order
type MemoryBackend struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]types.MemoryEntry
}

// NewMemoryBackend creates an empty in-process backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]types.MemoryEntry)}
}

// Put stores or replaces an entry
func (b *MemoryBackend) Put(_ context.Context, entry types.MemoryEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.entries[entry.ID]; !exists {
		b.order = append(b.order, entry.ID)
	}
	entry.Embedding = append([]float32(nil), entry.Embedding...)
	b.entries[entry.ID] = entry
	return nil
}

// All returns a snapshot of every entry
func (b *MemoryBackend) All(_ context.Context) ([]types.MemoryEntry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]types.MemoryEntry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.entries[id])
	}
	return out, nil
}

// Len returns the number of stored entries
func (b *MemoryBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.order)
}
