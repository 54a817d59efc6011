package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// FileBackend keeps entries in process memory and rewrites a JSON file on every Put
type FileBackend struct {
	mu    sync.Mutex // serializes Put and the file rewrite it triggers
	path  string
	inner *MemoryBackend
}

// OpenFileBackend loads entries from path. A missing file starts empty.
func OpenFileBackend(path string) (*FileBackend, error) {
	b := &FileBackend{path: path, inner: NewMemoryBackend()}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}

	var entries []types.MemoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse memory file %s: %w", path, err)
	}
	for _, e := range entries {
		_ = b.inner.Put(context.Background(), e)
	}
	return b, nil
}

// Put stores or replaces an entry and persists the whole set
func (b *FileBackend) Put(ctx context.Context, entry types.MemoryEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.inner.Put(ctx, entry); err != nil {
		return err
	}
	return b.flush(ctx)
}

// All returns every entry in first-insertion order
func (b *FileBackend) All(ctx context.Context) ([]types.MemoryEntry, error) {
	return b.inner.All(ctx)
}

func (b *FileBackend) flush(ctx context.Context) error {
	entries, err := b.inner.All(ctx)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal memory entries: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return fmt.Errorf("failed to create memory directory: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("failed to replace memory file: %w", err)
	}
	return nil
}
