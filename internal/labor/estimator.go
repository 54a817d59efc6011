// Package labor estimates labor hours and cost per renovation task.
package labor

import (
	"github.com/jonathan/renovation-quoter/internal/mathutil"
	"github.com/jonathan/renovation-quoter/internal/types"
)

// TaskHours describes how long a task takes
type TaskHours struct {
	Hours float64 // hours per m² when Fixed is false, total hours otherwise
	Fixed bool
}

// Table is the immutable labor configuration
type Table struct {
	HourlyRates map[string]float64 // city -> EUR/hour
	DefaultCity string             // used when the city has no rate
	Tasks       map[types.TaskCode]TaskHours
}

// DefaultTable returns the built-in labor rates and task durations
func DefaultTable() Table {
	return Table{
		HourlyRates: map[string]float64{
			"Marseille": 30,
			"Paris":     40,
		},
		DefaultCity: "Marseille",
		Tasks: map[types.TaskCode]TaskHours{
			types.TaskTileRemoval:        {Hours: 1.0},
			types.TaskTiling:             {Hours: 1.5},
			types.TaskPlumbing:           {Hours: 5.0, Fixed: true},
			types.TaskToiletInstallation: {Hours: 3.0, Fixed: true},
			types.TaskVanityInstallation: {Hours: 2.5, Fixed: true},
			types.TaskPainting:           {Hours: 0.5},
		},
	}
}

// Estimator maps a task, job size and city to labor hours and cost
type Estimator struct {
	table Table
}

// NewEstimator creates an Estimator over a copy of the given table
func NewEstimator(table Table) *Estimator {
	rates := make(map[string]float64, len(table.HourlyRates))
	for city, rate := range table.HourlyRates {
		rates[city] = rate
	}
	tasks := make(map[types.TaskCode]TaskHours, len(table.Tasks))
	for code, th := range table.Tasks {
		tasks[code] = th
	}
	return &Estimator{table: Table{HourlyRates: rates, DefaultCity: table.DefaultCity, Tasks: tasks}}
}

// Estimate returns the labor hours and cost (rounded to cents) for a task.
// Unknown cities fall back to the default city's rate; unknown tasks fail.
func (e *Estimator) Estimate(code types.TaskCode, sizeM2 float64, city string) (float64, float64, error) {
	th, ok := e.table.Tasks[code]
	if !ok {
		return 0, 0, &UnknownTaskError{Code: code}
	}

	hours := th.Hours
	if !th.Fixed {
		hours = sizeM2 * th.Hours
	}

	cost := hours * e.HourlyRate(city)
	return hours, mathutil.Round2(cost), nil
}

// HourlyRate returns the rate for a city, falling back to the default city
func (e *Estimator) HourlyRate(city string) float64 {
	if rate, ok := e.table.HourlyRates[city]; ok {
		return rate
	}
	return e.table.HourlyRates[e.table.DefaultCity]
}

// Knows reports whether the task code has a labor entry
func (e *Estimator) Knows(code types.TaskCode) bool {
	_, ok := e.table.Tasks[code]
	return ok
}
