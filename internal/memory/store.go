// Package memory stores quotes by transcript and retrieves similar past quotes.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/jonathan/renovation-quoter/internal/logging"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// DefaultTopK is the number of matches returned when none is requested
const DefaultTopK = 3

// Store is a write-then-query semantic memory of quotes
type Store interface {
	Add(ctx context.Context, quoteID, transcript string, quote *types.Quote) error
	Search(ctx context.Context, query string, topK int) ([]types.MemoryMatch, error)
}

// Embedder turns text into a vector. Documents and queries may be embedded differently.
type Embedder interface {
	EmbedDocument(ctx context.Context, text string) ([]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Backend persists memory entries. Put replaces an entry with the same id.
type Backend interface {
	Put(ctx context.Context, entry types.MemoryEntry) error
	All(ctx context.Context) ([]types.MemoryEntry, error)
}

// VectorStore ranks stored entries by cosine distance to the query embedding
type VectorStore struct {
	embedder Embedder
	backend  Backend
	logger   *slog.Logger
}

// NewVectorStore creates a store from an embedder and a backend
func NewVectorStore(embedder Embedder, backend Backend, logger *slog.Logger) *VectorStore {
	return &VectorStore{embedder: embedder, backend: backend, logger: logging.OrDiscard(logger)}
}

// Add embeds the transcript and stores it with the quote's flat metadata
func (s *VectorStore) Add(ctx context.Context, quoteID, transcript string, quote *types.Quote) error {
	if quote == nil {
		return fmt.Errorf("quote is required")
	}
	meta, err := NewMetadata(quoteID, quote)
	if err != nil {
		return err
	}

	embedding, err := s.embedder.EmbedDocument(ctx, transcript)
	if err != nil {
		return fmt.Errorf("failed to embed transcript: %w", err)
	}

	entry := types.MemoryEntry{
		ID:        quoteID,
		Document:  transcript,
		Embedding: embedding,
		Metadata:  meta,
	}
	if err := s.backend.Put(ctx, entry); err != nil {
		return fmt.Errorf("failed to store memory entry: %w", err)
	}
	s.logger.Debug("quote added to memory", "quote_id", quoteID, "dimensions", len(embedding))
	return nil
}

// Search returns up to topK entries closest to query, nearest first
func (s *VectorStore) Search(ctx context.Context, query string, topK int) ([]types.MemoryMatch, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	entries, err := s.backend.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read memory entries: %w", err)
	}

	matches := make([]types.MemoryMatch, 0, len(entries))
	for _, e := range entries {
		if len(e.Embedding) != len(queryVec) {
			s.logger.Debug("skipping entry with mismatched dimensions",
				"id", e.ID, "entry_dimensions", len(e.Embedding), "query_dimensions", len(queryVec))
			continue
		}
		matches = append(matches, types.MemoryMatch{
			ID:       e.ID,
			Distance: CosineDistance(queryVec, e.Embedding),
			Document: e.Document,
			Metadata: e.Metadata,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	return matches, nil
}

// NewMetadata flattens a quote into memory metadata, embedding the full quote as JSON
func NewMetadata(quoteID string, quote *types.Quote) (types.MemoryMetadata, error) {
	raw, err := json.Marshal(quote)
	if err != nil {
		return types.MemoryMetadata{}, fmt.Errorf("failed to marshal quote: %w", err)
	}
	return types.MemoryMetadata{
		QuoteID:         quoteID,
		City:            quote.City,
		Zone:            quote.Zone,
		OverallTotal:    quote.OverallTotal,
		ConfidenceScore: quote.ConfidenceScore,
		QuoteJSON:       string(raw),
	}, nil
}

// StoredQuote decodes the quote kept in a match's metadata
func StoredQuote(meta types.MemoryMetadata) (*types.Quote, error) {
	var q types.Quote
	if err := json.Unmarshal([]byte(meta.QuoteJSON), &q); err != nil {
		return nil, fmt.Errorf("failed to decode stored quote: %w", err)
	}
	return &q, nil
}

// CosineDistance returns 1 - cosine similarity. A zero vector is at distance 1 from everything.
func CosineDistance(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
