// Package vat resolves the VAT percentage applied to each renovation task.
package vat

import "github.com/jonathan/renovation-quoter/internal/types"

// DefaultRate is applied to tasks without a specific rate
const DefaultRate = 20.0

// Table is the immutable VAT configuration
type Table struct {
	Rates   map[types.TaskCode]float64
	Default float64
}

// DefaultTable returns the reduced renovation rate for every known task
func DefaultTable() Table {
	rates := make(map[types.TaskCode]float64)
	for _, code := range types.AllTaskCodes() {
		rates[code] = 10
	}
	return Table{Rates: rates, Default: DefaultRate}
}

// Resolver maps task codes to VAT percentages
type Resolver struct {
	rates    map[types.TaskCode]float64
	fallback float64
}

// NewResolver creates a Resolver over a copy of the given table
func NewResolver(table Table) *Resolver {
	rates := make(map[types.TaskCode]float64, len(table.Rates))
	for code, rate := range table.Rates {
		rates[code] = rate
	}
	return &Resolver{rates: rates, fallback: table.Default}
}

// Rate returns the VAT percent for a task; it never fails
func (r *Resolver) Rate(code types.TaskCode) float64 {
	if rate, ok := r.rates[code]; ok {
		return rate
	}
	return r.fallback
}
