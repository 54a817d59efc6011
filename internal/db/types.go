package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/renovation-quoter/internal/types"
)

// QuoteRecord is an archived quote
type QuoteRecord struct {
	ID         uuid.UUID    `json:"id"`
	Transcript string       `json:"transcript,omitempty"`
	Quote      *types.Quote `json:"quote"`
	CreatedAt  time.Time    `json:"created_at"`
}

// QuoteSummary is a lightweight view of an archived quote for listing
type QuoteSummary struct {
	ID              uuid.UUID `json:"id"`
	City            string    `json:"city"`
	Zone            string    `json:"zone"`
	SizeM2          float64   `json:"size_m2"`
	OverallTotal    float64   `json:"overall_total"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// QuoteFilters holds optional filters for listing quotes
type QuoteFilters struct {
	City          string
	MinConfidence float64
	Limit         int
}

// DefaultQuoteListLimit caps list results when no limit is given
const DefaultQuoteListLimit = 50
