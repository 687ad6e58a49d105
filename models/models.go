package models

import "time"

// Metric selects which demand figure the forecaster trains on.
type Metric string

const (
	MetricSales        Metric = "sales"
	MetricTransactions Metric = "transactions"
)

// Observation represents one historical hour of sales activity.
// Timestamps are truncated to the hour; multiple rows for the same
// hour are partial counts and get summed during normalization.
type Observation struct {
	Timestamp        time.Time
	SalesAmount      float64
	TransactionCount int
}

// CalendarFeatures holds the derived calendar attributes of a timestamp.
// DayOfWeek uses 0=Monday..6=Sunday.
type CalendarFeatures struct {
	Hour      int
	DayOfWeek int
	Month     int
	Year      int
	ISOWeek   int
}

// SeriesPoint is one normalized hour: its timestamp, derived features,
// and both demand metrics.
type SeriesPoint struct {
	Timestamp        time.Time
	Features         CalendarFeatures
	SalesAmount      float64
	TransactionCount int
}

// DemandSeries is the normalized, ascending-sorted, duplicate-free
// training data for the forecaster.
type DemandSeries struct {
	Points []SeriesPoint
}

// Len returns the number of points in the series.
func (s *DemandSeries) Len() int { return len(s.Points) }

// MetricValue returns the selected metric for a point.
func (p SeriesPoint) MetricValue(m Metric) float64 {
	if m == MetricSales {
		return p.SalesAmount
	}
	return float64(p.TransactionCount)
}

// ForecastPoint is a single predicted future hour. Predicted is always
// non-negative; the forecaster clamps before returning.
type ForecastPoint struct {
	Timestamp time.Time
	Predicted float64
}

// StaffingRequirement is the required headcount for one (day, hour) cell.
type StaffingRequirement struct {
	DayOfWeek     int
	Hour          int
	RequiredStaff int
}

// ScheduleAssignment is the staffing actually assigned to a cell under a
// staff-hour budget. 0 <= AssignedStaff <= RequiredStaff always holds.
type ScheduleAssignment struct {
	DayOfWeek     int
	Hour          int
	RequiredStaff int
	AssignedStaff int
}

// ShiftWindow is a named contiguous hour range [StartHour, EndHour).
type ShiftWindow struct {
	Label     string `yaml:"label"`
	StartHour int    `yaml:"start"`
	EndHour   int    `yaml:"end"`
}

// ShiftAssignment is the peak staffing requirement for one shift window
// on one day of the week.
type ShiftAssignment struct {
	DayOfWeek int
	Label     string
	Staff     int
}

// DayNames maps DayOfWeek (0=Monday) to a display name.
var DayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}
