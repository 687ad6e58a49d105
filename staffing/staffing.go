// Package staffing converts demand figures into required headcount and
// summarizes per-hour requirements into shift blocks.
package staffing

import (
	"math"

	"shift-planner/errors"
	"shift-planner/models"
	"shift-planner/timeseries"
)

// Params are the caller-supplied staffing tunables. Capacities are the
// hourly throughput one staff member can sustain; FixedStaff is the
// minimum coverage an open store always carries.
type Params struct {
	SalesCapacity float64
	TxnCapacity   float64
	FixedStaff    int
}

// Validate rejects parameters outside their legal ranges before any
// computation runs.
func (p Params) Validate() error {
	if p.SalesCapacity <= 0 {
		return &errors.InvalidParameterError{Name: "sales_capacity", Value: p.SalesCapacity}
	}
	if p.TxnCapacity <= 0 {
		return &errors.InvalidParameterError{Name: "txn_capacity", Value: p.TxnCapacity}
	}
	if p.FixedStaff < 0 {
		return &errors.InvalidParameterError{Name: "fixed_staff", Value: float64(p.FixedStaff)}
	}
	return nil
}

// Estimate converts one hour of demand into a required headcount:
// ceil(max(sales/salesCapacity, txns/txnCapacity)) + fixedStaff, never
// below fixedStaff. The heuristic does not care whether the demand is
// historical or predicted.
func Estimate(sales, transactions float64, p Params) (int, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if sales < 0 {
		sales = 0
	}
	if transactions < 0 {
		transactions = 0
	}
	load := math.Max(sales/p.SalesCapacity, transactions/p.TxnCapacity)
	return int(math.Ceil(load)) + p.FixedStaff, nil
}

// FromForecast derives per-hour staffing requirements from forecast
// points. The forecast carries a single metric; the other enters the
// heuristic as zero.
func FromForecast(points []models.ForecastPoint, metric models.Metric, p Params) ([]models.StaffingRequirement, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]models.StaffingRequirement, 0, len(points))
	for _, fp := range points {
		sales, txns := 0.0, 0.0
		if metric == models.MetricSales {
			sales = fp.Predicted
		} else {
			txns = fp.Predicted
		}
		staff, err := Estimate(sales, txns, p)
		if err != nil {
			return nil, err
		}
		f := timeseries.FeaturesFor(fp.Timestamp)
		out = append(out, models.StaffingRequirement{
			DayOfWeek:     f.DayOfWeek,
			Hour:          f.Hour,
			RequiredStaff: staff,
		})
	}
	return out, nil
}

// FromSeries derives per-hour staffing requirements from historical
// observations, for retrospective analysis. Both metrics feed the
// heuristic.
func FromSeries(series *models.DemandSeries, p Params) ([]models.StaffingRequirement, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]models.StaffingRequirement, 0, series.Len())
	for _, pt := range series.Points {
		staff, err := Estimate(pt.SalesAmount, float64(pt.TransactionCount), p)
		if err != nil {
			return nil, err
		}
		out = append(out, models.StaffingRequirement{
			DayOfWeek:     pt.Features.DayOfWeek,
			Hour:          pt.Features.Hour,
			RequiredStaff: staff,
		})
	}
	return out, nil
}
