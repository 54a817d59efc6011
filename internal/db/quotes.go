package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// QuoteArchive stores generated quotes
type QuoteArchive struct {
	db *DB
}

// NewQuoteArchive creates an archive over db
func NewQuoteArchive(db *DB) *QuoteArchive {
	return &QuoteArchive{db: db}
}

// Save stores a quote with the transcript it was built from. Saving the same
// quote id again replaces the stored content.
func (a *QuoteArchive) Save(ctx context.Context, transcript string, quote *types.Quote) error {
	id, err := uuid.Parse(quote.QuoteID)
	if err != nil {
		return fmt.Errorf("invalid quote id %q: %w", quote.QuoteID, err)
	}
	content, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("failed to marshal quote: %w", err)
	}

	_, err = a.db.pool.Exec(ctx,
		`INSERT INTO quotes (id, city, zone, size_m2, overall_total, overall_margin,
		                     confidence_score, transcript, content)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		     city = $2, zone = $3, size_m2 = $4, overall_total = $5, overall_margin = $6,
		     confidence_score = $7, transcript = $8, content = $9`,
		id, quote.City, quote.Zone, quote.SizeM2, quote.OverallTotal, quote.OverallMargin,
		quote.ConfidenceScore, transcript, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save quote %s: %w", quote.QuoteID, err)
	}
	return nil
}

// Get retrieves an archived quote, or nil if it does not exist
func (a *QuoteArchive) Get(ctx context.Context, id uuid.UUID) (*QuoteRecord, error) {
	var rec QuoteRecord
	var content []byte

	err := a.db.pool.QueryRow(ctx,
		`SELECT id, transcript, content, created_at FROM quotes WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.Transcript, &content, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}

	var quote types.Quote
	if err := json.Unmarshal(content, &quote); err != nil {
		return nil, fmt.Errorf("failed to decode quote %s: %w", id, err)
	}
	rec.Quote = &quote
	return &rec, nil
}

// List returns recent quotes, newest first
func (a *QuoteArchive) List(ctx context.Context, filters QuoteFilters) ([]QuoteSummary, error) {
	query, args := buildListQuery(filters)

	rows, err := a.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	summaries := []QuoteSummary{}
	for rows.Next() {
		var s QuoteSummary
		if err := rows.Scan(&s.ID, &s.City, &s.Zone, &s.SizeM2, &s.OverallTotal, &s.ConfidenceScore, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	return summaries, nil
}

func buildListQuery(filters QuoteFilters) (string, []any) {
	if filters.Limit <= 0 {
		filters.Limit = DefaultQuoteListLimit
	}

	query := `SELECT id, city, zone, size_m2, overall_total, confidence_score, created_at
		FROM quotes WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.City != "" {
		query += fmt.Sprintf(" AND city ILIKE $%d", argNum)
		args = append(args, filters.City)
		argNum++
	}
	if filters.MinConfidence > 0 {
		query += fmt.Sprintf(" AND confidence_score >= $%d", argNum)
		args = append(args, filters.MinConfidence)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)
	return query, args
}
