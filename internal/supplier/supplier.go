// Package supplier provides live material prices.
package supplier

import (
	"context"
	"fmt"
)

// PriceFetcher returns the current unit price for a material given its catalog base price
type PriceFetcher interface {
	Fetch(ctx context.Context, materialName string, basePrice float64) (float64, error)
}

// FetcherFunc adapts a function to PriceFetcher
type FetcherFunc func(ctx context.Context, materialName string, basePrice float64) (float64, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, materialName string, basePrice float64) (float64, error) {
	return f(ctx, materialName, basePrice)
}

// Error represents a failed price lookup
type Error struct {
	Material   string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("price lookup for %q failed: %s", e.Material, e.Message)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}
