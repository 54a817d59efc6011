// Package quoting assembles itemized quotes from parsed jobs.
package quoting

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/renovation-quoter/internal/catalog"
	"github.com/jonathan/renovation-quoter/internal/labor"
	"github.com/jonathan/renovation-quoter/internal/logging"
	"github.com/jonathan/renovation-quoter/internal/mathutil"
	"github.com/jonathan/renovation-quoter/internal/supplier"
	"github.com/jonathan/renovation-quoter/internal/types"
	"github.com/jonathan/renovation-quoter/internal/vat"
)

// Builder prices each task of a parsed job and sums the results into a quote
type Builder struct {
	labor  *labor.Estimator
	vat    *vat.Resolver
	prices supplier.PriceFetcher
	newID  func() string
	logger *slog.Logger
}

// Option configures a Builder
type Option func(*Builder)

// WithIDGenerator replaces the UUID quote id generator
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) {
		b.newID = gen
	}
}

// WithLogger sets the builder's logger
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logging.OrDiscard(logger)
	}
}

// NewBuilder creates a Builder
func NewBuilder(est *labor.Estimator, vatResolver *vat.Resolver, prices supplier.PriceFetcher, opts ...Option) *Builder {
	b := &Builder{
		labor:  est,
		vat:    vatResolver,
		prices: prices,
		newID:  func() string { return uuid.New().String() },
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build prices every task in order. Any task error aborts the whole quote.
func (b *Builder) Build(ctx context.Context, parsed types.ParsedJob, cat catalog.Catalog, marginPercent float64) (*types.Quote, error) {
	quote := &types.Quote{
		QuoteID:         b.newID(),
		Zone:            types.ZoneBathroom,
		City:            parsed.City,
		SizeM2:          parsed.SizeM2,
		Tasks:           make([]types.TaskQuoteLine, 0, len(parsed.Tasks)),
		ConfidenceScore: parsed.Confidence,
	}

	var overallTotal, overallMargin float64
	for _, task := range parsed.Tasks {
		line, margin, total, err := b.priceTask(ctx, task, parsed, cat, marginPercent)
		if err != nil {
			return nil, fmt.Errorf("failed to price task %s: %w", task.Code, err)
		}
		quote.Tasks = append(quote.Tasks, line)
		overallTotal += total
		overallMargin += margin
	}

	quote.OverallTotal = mathutil.Round2(overallTotal)
	quote.OverallMargin = mathutil.Round2(overallMargin)

	b.logger.Info("quote built",
		"quote_id", quote.QuoteID,
		"city", quote.City,
		"tasks", len(quote.Tasks),
		"margin_percent", marginPercent,
		"overall_total", quote.OverallTotal)
	return quote, nil
}

// priceTask returns the rounded line plus the unrounded margin and total
func (b *Builder) priceTask(ctx context.Context, task types.TaskRequest, parsed types.ParsedJob, cat catalog.Catalog, marginPercent float64) (types.TaskQuoteLine, float64, float64, error) {
	info, err := cat.Lookup(task.MaterialKey)
	if err != nil {
		return types.TaskQuoteLine{}, 0, 0, err
	}
	basePrice, err := catalog.UnitPrice(info, parsed.City)
	if err != nil {
		return types.TaskQuoteLine{}, 0, 0, err
	}
	unitPrice, err := b.prices.Fetch(ctx, info.Name, basePrice)
	if err != nil {
		return types.TaskQuoteLine{}, 0, 0, fmt.Errorf("failed to fetch live price: %w", err)
	}

	materialCost := unitPrice
	if info.Unit == types.UnitPerArea {
		materialCost = parsed.SizeM2 * unitPrice
	}

	hours, laborCost, err := b.labor.Estimate(task.Code, parsed.SizeM2, parsed.City)
	if err != nil {
		return types.TaskQuoteLine{}, 0, 0, err
	}
	vatRate := b.vat.Rate(task.Code)

	subtotal := laborCost + materialCost
	margin := subtotal * marginPercent / 100
	total := (subtotal + margin) * (1 + vatRate/100)

	b.logger.Debug("task priced",
		"task", task.Code,
		"material", info.Name,
		"base_price", basePrice,
		"unit_price", unitPrice,
		"total_price", total)

	line := types.TaskQuoteLine{
		Name:                info.Name,
		Labor:               types.LaborLine{Hours: mathutil.Round2(hours), Cost: mathutil.Round2(laborCost)},
		Materials:           types.MaterialLine{Item: info.Name, Cost: mathutil.Round2(materialCost)},
		EstimatedDurationHr: mathutil.Round2(hours),
		VATRate:             vatRate,
		Subtotal:            mathutil.Round2(subtotal),
		Margin:              mathutil.Round2(margin),
		TotalPrice:          mathutil.Round2(total),
		Confidence:          parsed.Confidence,
	}
	return line, margin, total, nil
}
