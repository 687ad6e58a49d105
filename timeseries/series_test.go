package timeseries_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shift-planner/models"
	"shift-planner/timeseries"
)

func ts(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestNormalize(t *testing.T) {
	tests := map[string]struct {
		input    []models.Observation
		expected []models.SeriesPoint
	}{
		"DuplicateHoursSummed": {
			// Two partial rows for Monday 9:00 combine by summation.
			input: []models.Observation{
				{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 100, TransactionCount: 10},
				{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 50, TransactionCount: 5},
			},
			expected: []models.SeriesPoint{
				{
					Timestamp:        ts(2023, 1, 2, 9),
					Features:         timeseries.FeaturesFor(ts(2023, 1, 2, 9)),
					SalesAmount:      150,
					TransactionCount: 15,
				},
			},
		},
		"UnorderedInputSorted": {
			input: []models.Observation{
				{Timestamp: ts(2023, 1, 3, 10), SalesAmount: 20, TransactionCount: 2},
				{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 10, TransactionCount: 1},
			},
			expected: []models.SeriesPoint{
				{
					Timestamp:        ts(2023, 1, 2, 9),
					Features:         timeseries.FeaturesFor(ts(2023, 1, 2, 9)),
					SalesAmount:      10,
					TransactionCount: 1,
				},
				{
					Timestamp:        ts(2023, 1, 3, 10),
					Features:         timeseries.FeaturesFor(ts(2023, 1, 3, 10)),
					SalesAmount:      20,
					TransactionCount: 2,
				},
			},
		},
		"NegativeValuesClampedToZero": {
			input: []models.Observation{
				{Timestamp: ts(2023, 1, 2, 9), SalesAmount: -40, TransactionCount: -3},
			},
			expected: []models.SeriesPoint{
				{
					Timestamp:        ts(2023, 1, 2, 9),
					Features:         timeseries.FeaturesFor(ts(2023, 1, 2, 9)),
					SalesAmount:      0,
					TransactionCount: 0,
				},
			},
		},
		"SubHourTimestampsTruncated": {
			input: []models.Observation{
				{Timestamp: time.Date(2023, 1, 2, 9, 45, 12, 0, time.UTC), SalesAmount: 10, TransactionCount: 1},
				{Timestamp: time.Date(2023, 1, 2, 9, 5, 0, 0, time.UTC), SalesAmount: 5, TransactionCount: 1},
			},
			expected: []models.SeriesPoint{
				{
					Timestamp:        ts(2023, 1, 2, 9),
					Features:         timeseries.FeaturesFor(ts(2023, 1, 2, 9)),
					SalesAmount:      15,
					TransactionCount: 2,
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			series := timeseries.Normalize(tt.input)
			assert.Equal(t, tt.expected, series.Points)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	input := []models.Observation{
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 100, TransactionCount: 10},
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 50, TransactionCount: 5},
		{Timestamp: ts(2023, 1, 3, 11), SalesAmount: 75, TransactionCount: 8},
	}
	once := timeseries.Normalize(input)

	// Feed the normalized series back through as observations.
	back := make([]models.Observation, 0, once.Len())
	for _, p := range once.Points {
		back = append(back, models.Observation{
			Timestamp:        p.Timestamp,
			SalesAmount:      p.SalesAmount,
			TransactionCount: p.TransactionCount,
		})
	}
	twice := timeseries.Normalize(back)

	assert.Equal(t, once, twice)
	assert.Equal(t, timeseries.Fingerprint(once), timeseries.Fingerprint(twice))
}

func TestFeaturesFor(t *testing.T) {
	tests := map[string]struct {
		input    time.Time
		expected models.CalendarFeatures
	}{
		"MondayIsZero": {
			// 2023-01-02 was a Monday, ISO week 1.
			input:    ts(2023, 1, 2, 9),
			expected: models.CalendarFeatures{Hour: 9, DayOfWeek: 0, Month: 1, Year: 2023, ISOWeek: 1},
		},
		"SundayIsSix": {
			// 2023-01-08 was a Sunday, still ISO week 1.
			input:    ts(2023, 1, 8, 23),
			expected: models.CalendarFeatures{Hour: 23, DayOfWeek: 6, Month: 1, Year: 2023, ISOWeek: 1},
		},
		"ISOWeekYearBoundary": {
			// 2023-01-01 was a Sunday belonging to ISO week 52 of 2022.
			input:    ts(2023, 1, 1, 0),
			expected: models.CalendarFeatures{Hour: 0, DayOfWeek: 6, Month: 1, Year: 2023, ISOWeek: 52},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, timeseries.FeaturesFor(tt.input))
		})
	}
}

func TestFingerprint_DistinguishesContent(t *testing.T) {
	a := timeseries.Normalize([]models.Observation{
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 100, TransactionCount: 10},
	})
	b := timeseries.Normalize([]models.Observation{
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 101, TransactionCount: 10},
	})
	assert.NotEqual(t, timeseries.Fingerprint(a), timeseries.Fingerprint(b))
}

func TestFilter(t *testing.T) {
	series := timeseries.Normalize([]models.Observation{
		{Timestamp: ts(2023, 1, 2, 8), SalesAmount: 10, TransactionCount: 1},  // Monday
		{Timestamp: ts(2023, 1, 2, 20), SalesAmount: 20, TransactionCount: 2}, // Monday
		{Timestamp: ts(2023, 1, 7, 9), SalesAmount: 30, TransactionCount: 3},  // Saturday
		{Timestamp: ts(2023, 2, 1, 9), SalesAmount: 40, TransactionCount: 4},  // Wednesday
	})

	t.Run("DateRange", func(t *testing.T) {
		got := timeseries.Filter(series, timeseries.FilterOptions{
			From: ts(2023, 1, 1, 0),
			To:   ts(2023, 1, 31, 23),
		})
		assert.Equal(t, 3, got.Len())
	})

	t.Run("Weekdays", func(t *testing.T) {
		got := timeseries.Filter(series, timeseries.FilterOptions{Weekdays: []int{5}})
		require.Equal(t, 1, got.Len())
		assert.Equal(t, ts(2023, 1, 7, 9), got.Points[0].Timestamp)
	})

	t.Run("HourRangeInclusive", func(t *testing.T) {
		got := timeseries.Filter(series, timeseries.FilterOptions{
			HourRange: true, HourFrom: 8, HourTo: 9,
		})
		assert.Equal(t, 3, got.Len())
	})

	t.Run("NoOptionsKeepsEverything", func(t *testing.T) {
		got := timeseries.Filter(series, timeseries.FilterOptions{})
		assert.Equal(t, series.Points, got.Points)
	})
}

func TestParseWeekdays(t *testing.T) {
	tests := map[string]struct {
		input       string
		expected    []int
		expectError bool
	}{
		"Empty":            {input: "", expected: nil},
		"Blank":            {input: "  ", expected: nil},
		"Single":           {input: "5", expected: []int{5}},
		"WeekendWithSpace": {input: "0, 5,6", expected: []int{0, 5, 6}},
		"Error_NotANumber": {input: "0,mon", expectError: true},
		"Error_OutOfRange": {input: "7", expectError: true},
		"Error_Negative":   {input: "-1", expectError: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := timeseries.ParseWeekdays(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestHourlySummaries(t *testing.T) {
	series := timeseries.Normalize([]models.Observation{
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 100, TransactionCount: 10},
		{Timestamp: ts(2023, 1, 3, 9), SalesAmount: 200, TransactionCount: 20},
		{Timestamp: ts(2023, 1, 3, 10), SalesAmount: 50, TransactionCount: 5},
	})

	summaries := timeseries.HourlySummaries(series)
	require.Len(t, summaries, 2)

	// Two distinct dates in the series.
	assert.Equal(t, 9, summaries[0].Hour)
	assert.InDelta(t, 300, summaries[0].TotalSales, 1e-9)
	assert.Equal(t, 30, summaries[0].Transactions)
	assert.InDelta(t, 150, summaries[0].AvgSalesPerDay, 1e-9)
	assert.InDelta(t, 15, summaries[0].AvgTxnsPerDay, 1e-9)

	assert.Equal(t, 10, summaries[1].Hour)
	assert.InDelta(t, 25, summaries[1].AvgSalesPerDay, 1e-9)
}

func TestWeekdaySummaries(t *testing.T) {
	series := timeseries.Normalize([]models.Observation{
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 100, TransactionCount: 10}, // Monday
		{Timestamp: ts(2023, 1, 8, 9), SalesAmount: 70, TransactionCount: 7},   // Sunday
	})

	summaries := timeseries.WeekdaySummaries(series)
	require.Len(t, summaries, 7)
	assert.InDelta(t, 100, summaries[0].TotalSales, 1e-9)
	assert.InDelta(t, 70, summaries[6].TotalSales, 1e-9)
	assert.Zero(t, summaries[3].Transactions)
}

func TestMonthlySummaries(t *testing.T) {
	series := timeseries.Normalize([]models.Observation{
		{Timestamp: ts(2023, 2, 1, 9), SalesAmount: 40, TransactionCount: 4},
		{Timestamp: ts(2023, 1, 2, 9), SalesAmount: 100, TransactionCount: 10},
		{Timestamp: ts(2022, 12, 30, 9), SalesAmount: 10, TransactionCount: 1},
	})

	summaries := timeseries.MonthlySummaries(series)
	require.Len(t, summaries, 3)
	assert.Equal(t, 2022, summaries[0].Year)
	assert.Equal(t, 12, summaries[0].Month)
	assert.Equal(t, 1, summaries[1].Month)
	assert.Equal(t, 2, summaries[2].Month)
}
