// Package feedback records quote outcomes and turns the win rate into a margin.
package feedback

import (
	"context"
	"errors"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// ErrLedgerNotFound is returned by ReadAll when nothing was ever recorded
var ErrLedgerNotFound = errors.New("feedback ledger not found")

// Ledger is an append-only store of feedback records, read back in insertion order
type Ledger interface {
	Append(ctx context.Context, record types.FeedbackRecord) error
	ReadAll(ctx context.Context) ([]types.FeedbackRecord, error)
}
