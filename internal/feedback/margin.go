package feedback

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/jonathan/renovation-quoter/internal/logging"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// Margin adjustment thresholds
const (
	MinRecords  = 3
	LowWinRate  = 0.5
	HighWinRate = 0.8
	MarginStep  = 2.0
	MarginFloor = 5.0
)

// ComputeMargin returns the margin percent to apply given past outcomes.
// Below MinRecords the base margin is kept. A win rate under LowWinRate lowers
// the margin by MarginStep (never under MarginFloor); above HighWinRate raises it.
func ComputeMargin(records []types.FeedbackRecord, base float64) float64 {
	if len(records) < MinRecords {
		return base
	}

	winRate := Summarize(records).WinRate
	switch {
	case winRate < LowWinRate:
		return math.Max(base-MarginStep, MarginFloor)
	case winRate > HighWinRate:
		return base + MarginStep
	default:
		return base
	}
}

// Summarize counts accepted and rejected records
func Summarize(records []types.FeedbackRecord) types.FeedbackSummary {
	summary := types.FeedbackSummary{Total: len(records)}
	for _, r := range records {
		if r.Accepted {
			summary.Accepted++
		}
	}
	summary.Rejected = summary.Total - summary.Accepted
	if summary.Total > 0 {
		summary.WinRate = float64(summary.Accepted) / float64(summary.Total)
	}
	return summary
}

// Adjuster reads a ledger to adjust margins and records new outcomes
type Adjuster struct {
	ledger Ledger
	logger *slog.Logger
}

// NewAdjuster creates an Adjuster over a ledger
func NewAdjuster(ledger Ledger, logger *slog.Logger) *Adjuster {
	return &Adjuster{ledger: ledger, logger: logging.OrDiscard(logger)}
}

// Margin returns the adjusted margin. An unreadable ledger keeps the base margin.
func (a *Adjuster) Margin(ctx context.Context, base float64) float64 {
	records, err := a.ledger.ReadAll(ctx)
	if err != nil {
		if !errors.Is(err, ErrLedgerNotFound) {
			a.logger.Warn("feedback ledger unreadable, using base margin", "error", err, "base_margin", base)
		}
		return base
	}

	margin := ComputeMargin(records, base)
	a.logger.Debug("margin computed", "records", len(records), "base_margin", base, "margin", margin)
	return margin
}

// Record appends one outcome. Duplicate quote ids are not rejected.
func (a *Adjuster) Record(ctx context.Context, quoteID string, accepted bool) error {
	if err := a.ledger.Append(ctx, types.FeedbackRecord{QuoteID: quoteID, Accepted: accepted}); err != nil {
		return err
	}
	a.logger.Info("feedback recorded", "quote_id", quoteID, "accepted", accepted)
	return nil
}

// Summary returns aggregate statistics. A missing ledger is an empty summary.
func (a *Adjuster) Summary(ctx context.Context) (types.FeedbackSummary, error) {
	records, err := a.ledger.ReadAll(ctx)
	if err != nil {
		if errors.Is(err, ErrLedgerNotFound) {
			return types.FeedbackSummary{}, nil
		}
		return types.FeedbackSummary{}, err
	}
	return Summarize(records), nil
}
