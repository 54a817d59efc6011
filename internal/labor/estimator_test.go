package labor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/renovation-quoter/internal/types"
)

func TestEstimate_PerAreaTasks(t *testing.T) {
	est := NewEstimator(DefaultTable())

	tests := []struct {
		name      string
		code      types.TaskCode
		size      float64
		city      string
		wantHours float64
		wantCost  float64
	}{
		{"tile removal in Paris", types.TaskTileRemoval, 5, "Paris", 5, 200},
		{"tiling in Paris", types.TaskTiling, 5, "Paris", 7.5, 300},
		{"painting in Marseille", types.TaskPainting, 12, "Marseille", 6, 180},
		{"zero area", types.TaskTiling, 0, "Paris", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, cost, err := est.Estimate(tt.code, tt.size, tt.city)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantHours, hours, 1e-9)
			assert.InDelta(t, tt.wantCost, cost, 1e-9)
		})
	}
}

func TestEstimate_FixedTasksIgnoreSize(t *testing.T) {
	est := NewEstimator(DefaultTable())

	for _, size := range []float64{0, 3, 40} {
		hours, cost, err := est.Estimate(types.TaskPlumbing, size, "Paris")
		require.NoError(t, err)
		assert.Equal(t, 5.0, hours)
		assert.Equal(t, 200.0, cost)
	}

	hours, cost, err := est.Estimate(types.TaskVanityInstallation, 9, "Marseille")
	require.NoError(t, err)
	assert.Equal(t, 2.5, hours)
	assert.Equal(t, 75.0, cost)
}

func TestEstimate_UnknownCityFallsBack(t *testing.T) {
	est := NewEstimator(DefaultTable())

	hours, cost, err := est.Estimate(types.TaskToiletInstallation, 0, "Lyon")
	require.NoError(t, err)
	assert.Equal(t, 3.0, hours)
	assert.Equal(t, 90.0, cost, "Lyon should use the Marseille rate")
	assert.Equal(t, 30.0, est.HourlyRate(""))
}

func TestEstimate_UnknownTask(t *testing.T) {
	est := NewEstimator(DefaultTable())

	_, _, err := est.Estimate(types.TaskCode("demolition"), 5, "Paris")
	require.Error(t, err)

	var unknown *UnknownTaskError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, types.TaskCode("demolition"), unknown.Code)
	assert.Contains(t, err.Error(), "unknown task: demolition")
}

func TestEstimate_CostIsHoursTimesRate(t *testing.T) {
	est := NewEstimator(DefaultTable())
	cities := []string{"Paris", "Marseille", "Nice"}
	sizes := []float64{0, 1, 2.5, 7.3, 18}

	for _, code := range types.AllTaskCodes() {
		for _, city := range cities {
			for _, size := range sizes {
				hours, cost, err := est.Estimate(code, size, city)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, hours, 0.0)
				assert.InDelta(t, hours*est.HourlyRate(city), cost, 0.005)
			}
		}
	}
}

func TestNewEstimator_CopiesTable(t *testing.T) {
	table := DefaultTable()
	est := NewEstimator(table)

	table.HourlyRates["Paris"] = 999
	delete(table.Tasks, types.TaskTiling)

	assert.Equal(t, 40.0, est.HourlyRate("Paris"))
	assert.True(t, est.Knows(types.TaskTiling))
}

func TestEstimate_SubstitutedTable(t *testing.T) {
	est := NewEstimator(Table{
		HourlyRates: map[string]float64{"Lyon": 35},
		DefaultCity: "Lyon",
		Tasks: map[types.TaskCode]TaskHours{
			types.TaskTiling: {Hours: 2},
		},
	})

	hours, cost, err := est.Estimate(types.TaskTiling, 3, "Paris")
	require.NoError(t, err)
	assert.Equal(t, 6.0, hours)
	assert.Equal(t, 210.0, cost)
	assert.False(t, est.Knows(types.TaskPainting))
}
