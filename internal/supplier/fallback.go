package supplier

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonathan/renovation-quoter/internal/logging"
)

// fallbackFetcher returns the base price whenever the wrapped fetcher fails
type fallbackFetcher struct {
	inner   PriceFetcher
	timeout time.Duration
	logger  *slog.Logger
}

// WithFallback wraps inner so that a failure or a call exceeding timeout yields
// the base price instead of an error. A zero timeout disables the deadline.
func WithFallback(inner PriceFetcher, timeout time.Duration, logger *slog.Logger) PriceFetcher {
	return &fallbackFetcher{inner: inner, timeout: timeout, logger: logging.OrDiscard(logger)}
}

func (f *fallbackFetcher) Fetch(ctx context.Context, materialName string, basePrice float64) (float64, error) {
	callCtx := ctx
	if f.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	price, err := f.inner.Fetch(callCtx, materialName, basePrice)
	if err != nil {
		f.logger.Warn("live price unavailable, using base price",
			"material", materialName, "base_price", basePrice, "error", err)
		return basePrice, nil
	}
	return price, nil
}
