package staffing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plannererrors "shift-planner/errors"
	"shift-planner/models"
	"shift-planner/staffing"
	"shift-planner/timeseries"
)

func TestEstimate(t *testing.T) {
	params := staffing.Params{SalesCapacity: 75, TxnCapacity: 10, FixedStaff: 1}

	tests := map[string]struct {
		sales    float64
		txns     float64
		params   staffing.Params
		expected int
	}{
		"SalesBound": {
			// ceil(max(150/75, 12/10)) + 1 = ceil(2.0) + 1 = 3
			sales: 150, txns: 12, params: params, expected: 3,
		},
		"TransactionBound": {
			// ceil(max(75/75, 25/10)) + 1 = ceil(2.5) + 1 = 4
			sales: 75, txns: 25, params: params, expected: 4,
		},
		"ZeroDemandFloorsAtFixedStaff": {
			sales: 0, txns: 0,
			params:   staffing.Params{SalesCapacity: 75, TxnCapacity: 10, FixedStaff: 2},
			expected: 2,
		},
		"NegativeDemandClamped": {
			sales: -100, txns: -5, params: params, expected: 1,
		},
		"FractionalLoadRoundsUp": {
			// ceil(max(10/75, 1/10)) + 1 = ceil(0.133) + 1 = 2
			sales: 10, txns: 1, params: params, expected: 2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			staff, err := staffing.Estimate(tt.sales, tt.txns, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, staff)
		})
	}
}

func TestEstimate_InvalidParameters(t *testing.T) {
	tests := map[string]staffing.Params{
		"ZeroSalesCapacity":     {SalesCapacity: 0, TxnCapacity: 10, FixedStaff: 1},
		"NegativeSalesCapacity": {SalesCapacity: -75, TxnCapacity: 10, FixedStaff: 1},
		"ZeroTxnCapacity":       {SalesCapacity: 75, TxnCapacity: 0, FixedStaff: 1},
		"NegativeFixedStaff":    {SalesCapacity: 75, TxnCapacity: 10, FixedStaff: -1},
	}

	for name, params := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := staffing.Estimate(100, 10, params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, plannererrors.ErrInvalidParameter))
		})
	}
}

func TestFromForecast(t *testing.T) {
	// 2023-01-09 was a Monday.
	monday9am := time.Date(2023, 1, 9, 9, 0, 0, 0, time.UTC)
	points := []models.ForecastPoint{
		{Timestamp: monday9am, Predicted: 40},
		{Timestamp: monday9am.Add(time.Hour), Predicted: 0},
	}
	params := staffing.Params{SalesCapacity: 75, TxnCapacity: 20, FixedStaff: 1}

	reqs, err := staffing.FromForecast(points, models.MetricTransactions, params)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	// ceil(40/20) + 1 = 3
	assert.Equal(t, models.StaffingRequirement{DayOfWeek: 0, Hour: 9, RequiredStaff: 3}, reqs[0])
	// Zero predicted demand still floors at fixed staff.
	assert.Equal(t, models.StaffingRequirement{DayOfWeek: 0, Hour: 10, RequiredStaff: 1}, reqs[1])
}

func TestFromForecast_SalesMetric(t *testing.T) {
	point := []models.ForecastPoint{
		{Timestamp: time.Date(2023, 1, 14, 12, 0, 0, 0, time.UTC), Predicted: 160}, // Saturday
	}
	params := staffing.Params{SalesCapacity: 75, TxnCapacity: 20, FixedStaff: 1}

	reqs, err := staffing.FromForecast(point, models.MetricSales, params)
	require.NoError(t, err)
	// ceil(160/75) + 1 = 4, on Saturday (day 5) at noon.
	assert.Equal(t, []models.StaffingRequirement{{DayOfWeek: 5, Hour: 12, RequiredStaff: 4}}, reqs)
}

func TestFromSeries(t *testing.T) {
	series := timeseries.Normalize([]models.Observation{
		{Timestamp: time.Date(2023, 1, 2, 9, 0, 0, 0, time.UTC), SalesAmount: 150, TransactionCount: 12},
	})
	params := staffing.Params{SalesCapacity: 75, TxnCapacity: 10, FixedStaff: 1}

	reqs, err := staffing.FromSeries(series, params)
	require.NoError(t, err)
	assert.Equal(t, []models.StaffingRequirement{{DayOfWeek: 0, Hour: 9, RequiredStaff: 3}}, reqs)
}

func TestAggregateShifts(t *testing.T) {
	windows := []models.ShiftWindow{
		{Label: "Morning", StartHour: 8, EndHour: 12},
		{Label: "Midday", StartHour: 12, EndHour: 17},
	}

	t.Run("PeakNotSumOrMean", func(t *testing.T) {
		reqs := []models.StaffingRequirement{
			{DayOfWeek: 0, Hour: 8, RequiredStaff: 2},
			{DayOfWeek: 0, Hour: 9, RequiredStaff: 5},
			{DayOfWeek: 0, Hour: 10, RequiredStaff: 3},
		}
		plan := staffing.AggregateShifts(reqs, windows)
		require.Len(t, plan, 14)

		assert.Equal(t, models.ShiftAssignment{DayOfWeek: 0, Label: "Morning", Staff: 5}, plan[0])
		assert.Equal(t, models.ShiftAssignment{DayOfWeek: 0, Label: "Midday", Staff: 0}, plan[1])
	})

	t.Run("EmptyWindowYieldsZero", func(t *testing.T) {
		plan := staffing.AggregateShifts(nil, windows)
		for _, s := range plan {
			assert.Zero(t, s.Staff)
		}
	})

	t.Run("OverlappingWindowsIndependent", func(t *testing.T) {
		overlapping := []models.ShiftWindow{
			{Label: "Early", StartHour: 8, EndHour: 14},
			{Label: "Late", StartHour: 12, EndHour: 18},
		}
		reqs := []models.StaffingRequirement{
			{DayOfWeek: 2, Hour: 13, RequiredStaff: 7},
		}
		plan := staffing.AggregateShifts(reqs, overlapping)

		byLabel := make(map[string]int)
		for _, s := range plan {
			if s.DayOfWeek == 2 {
				byLabel[s.Label] = s.Staff
			}
		}
		assert.Equal(t, 7, byLabel["Early"])
		assert.Equal(t, 7, byLabel["Late"])
	})

	t.Run("DaysOrderedMondayFirst", func(t *testing.T) {
		plan := staffing.AggregateShifts(nil, windows)
		require.Len(t, plan, 14)
		assert.Equal(t, 0, plan[0].DayOfWeek)
		assert.Equal(t, 6, plan[13].DayOfWeek)
	})
}
