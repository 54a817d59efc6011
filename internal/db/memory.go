package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// MemoryBackend persists semantic memory entries in the quote_memory table
type MemoryBackend struct {
	db *DB
}

// NewMemoryBackend creates a memory backend over db
func NewMemoryBackend(db *DB) *MemoryBackend {
	return &MemoryBackend{db: db}
}

// Put stores or replaces an entry
func (m *MemoryBackend) Put(ctx context.Context, entry types.MemoryEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal memory metadata: %w", err)
	}

	_, err = m.db.pool.Exec(ctx,
		`INSERT INTO quote_memory (id, document, embedding, metadata)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET
		     document = $2, embedding = $3, metadata = $4, updated_at = NOW()`,
		entry.ID, entry.Document, entry.Embedding, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to store memory entry %s: %w", entry.ID, err)
	}
	return nil
}

// All returns every entry in first-insertion order
func (m *MemoryBackend) All(ctx context.Context) ([]types.MemoryEntry, error) {
	rows, err := m.db.pool.Query(ctx,
		`SELECT id, document, embedding, metadata FROM quote_memory ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory entries: %w", err)
	}
	defer rows.Close()

	entries := []types.MemoryEntry{}
	for rows.Next() {
		var e types.MemoryEntry
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.Document, &e.Embedding, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan memory entry: %w", err)
		}
		if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memory entries: %w", err)
	}
	return entries, nil
}
