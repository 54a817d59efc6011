package db

import (
	"context"
	"fmt"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// FeedbackLedger is an append-only feedback log in the quote_feedback table.
// Records are read back in insertion order.
type FeedbackLedger struct {
	db *DB
}

// NewFeedbackLedger creates a ledger over db
func NewFeedbackLedger(db *DB) *FeedbackLedger {
	return &FeedbackLedger{db: db}
}

// Append inserts one record
func (l *FeedbackLedger) Append(ctx context.Context, record types.FeedbackRecord) error {
	_, err := l.db.pool.Exec(ctx,
		`INSERT INTO quote_feedback (quote_id, accepted) VALUES ($1, $2)`,
		record.QuoteID, record.Accepted,
	)
	if err != nil {
		return fmt.Errorf("failed to append feedback for %s: %w", record.QuoteID, err)
	}
	return nil
}

// ReadAll returns every record in insertion order
func (l *FeedbackLedger) ReadAll(ctx context.Context) ([]types.FeedbackRecord, error) {
	rows, err := l.db.pool.Query(ctx,
		`SELECT quote_id, accepted FROM quote_feedback ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}
	defer rows.Close()

	records := []types.FeedbackRecord{}
	for rows.Next() {
		var r types.FeedbackRecord
		if err := rows.Scan(&r.QuoteID, &r.Accepted); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feedback: %w", err)
	}
	return records, nil
}
