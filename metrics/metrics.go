// Package metrics provides Prometheus observability metrics for the shift
// planner. It includes Critical and Important metrics for business and
// operational visibility.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry is the custom prometheus registry for our application
var Registry = prometheus.NewRegistry()

// factory allows us to register metrics to our custom Registry directly
var factory = promauto.With(Registry)

// =============================================================================
// CRITICAL METRICS - Business Impact Visibility
// =============================================================================

// StaffRequiredTotal tracks total staff-hours required across the planned week.
var StaffRequiredTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "staff_required_total",
	Help:      "Total staff-hours required across all days and hours of the plan",
})

// StaffAssignedTotal tracks staff-hours actually assigned under the budget.
var StaffAssignedTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "staff_assigned_total",
	Help:      "Total staff-hours assigned within the staff-hour budget",
})

// StaffShortfallTotal tracks required staff-hours that received no assignment.
// High values indicate the budget is too small for predicted demand.
var StaffShortfallTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "staff_shortfall_total",
	Help:      "Required staff-hours left unassigned after the budget was exhausted",
})

// ForecastPointsTotal tracks the number of future hours predicted.
var ForecastPointsTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "forecast_points_total",
	Help:      "Number of future hours in the generated forecast",
})

// =============================================================================
// IMPORTANT METRICS - Operational Health
// =============================================================================

// ParserRowsTotal tracks total observation rows successfully parsed.
var ParserRowsTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "rows_total",
	Help:      "Total observation rows successfully parsed",
})

// ParserRowsSkipped tracks malformed rows dropped during ingest.
var ParserRowsSkipped = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "parser",
	Name:      "rows_skipped_total",
	Help:      "Malformed observation rows dropped during ingest",
})

// SeriesPointsTotal tracks the size of the normalized series.
var SeriesPointsTotal = factory.NewGauge(prometheus.GaugeOpts{
	Namespace: "planner",
	Name:      "series_points_total",
	Help:      "Distinct hours in the normalized demand series",
})

// FitDurationSeconds tracks time spent fitting the demand model.
var FitDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "planner",
	Name:      "fit_duration_seconds",
	Help:      "Time taken to fit the demand model",
	Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
})

// PredictDurationSeconds tracks time spent evaluating the forecast.
var PredictDurationSeconds = factory.NewHistogram(prometheus.HistogramOpts{
	Namespace: "planner",
	Name:      "predict_duration_seconds",
	Help:      "Time taken to evaluate the forecast horizon",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
})

// =============================================================================
// Helper Functions
// =============================================================================

// ResetPlannerGauges resets all planner gauges before a new run.
func ResetPlannerGauges() {
	StaffRequiredTotal.Set(0)
	StaffAssignedTotal.Set(0)
	StaffShortfallTotal.Set(0)
	ForecastPointsTotal.Set(0)
	SeriesPointsTotal.Set(0)
}
