package timeseries

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"shift-planner/models"
)

// FilterOptions narrows a series before analysis or fitting. Zero-valued
// fields leave that dimension unfiltered. Hours are inclusive on both ends
// to match the dashboard's hour-range control.
type FilterOptions struct {
	From      time.Time
	To        time.Time
	Weekdays  []int // 0=Monday..6=Sunday; empty keeps all
	HourFrom  int
	HourTo    int
	HourRange bool // apply HourFrom/HourTo
}

// ParseWeekdays reads a comma-separated weekday list ("0,5,6") into the
// FilterOptions form. An empty string means no weekday filter.
func ParseWeekdays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid weekday %q: %w", part, err)
		}
		if d < 0 || d > 6 {
			return nil, fmt.Errorf("weekday %d out of range 0-6", d)
		}
		out = append(out, d)
	}
	return out, nil
}

// Filter returns a new series containing only the points that pass the
// options. The input series is not modified.
func Filter(series *models.DemandSeries, opts FilterOptions) *models.DemandSeries {
	weekdays := make(map[int]bool, len(opts.Weekdays))
	for _, d := range opts.Weekdays {
		weekdays[d] = true
	}

	out := &models.DemandSeries{}
	for _, p := range series.Points {
		if !opts.From.IsZero() && p.Timestamp.Before(opts.From) {
			continue
		}
		if !opts.To.IsZero() && p.Timestamp.After(opts.To) {
			continue
		}
		if len(weekdays) > 0 && !weekdays[p.Features.DayOfWeek] {
			continue
		}
		if opts.HourRange && (p.Features.Hour < opts.HourFrom || p.Features.Hour > opts.HourTo) {
			continue
		}
		out.Points = append(out.Points, p)
	}
	return out
}

// HourlySummary is one row of the hour-of-day breakdown table.
type HourlySummary struct {
	Hour            int
	TotalSales      float64
	Transactions    int
	AvgSalesPerDay  float64
	AvgTxnsPerDay   float64
	ObservedSamples int
}

// HourlySummaries aggregates the series by hour of day. Per-day averages
// divide by the number of distinct dates in the series, matching the
// dashboard's "average hourly performance" view.
func HourlySummaries(series *models.DemandSeries) []HourlySummary {
	days := make(map[string]bool)
	byHour := make(map[int]*HourlySummary)
	for _, p := range series.Points {
		days[p.Timestamp.Format("2006-01-02")] = true
		s, ok := byHour[p.Features.Hour]
		if !ok {
			s = &HourlySummary{Hour: p.Features.Hour}
			byHour[p.Features.Hour] = s
		}
		s.TotalSales += p.SalesAmount
		s.Transactions += p.TransactionCount
		s.ObservedSamples++
	}

	numDays := float64(len(days))
	out := make([]HourlySummary, 0, len(byHour))
	for _, s := range byHour {
		if numDays > 0 {
			s.AvgSalesPerDay = s.TotalSales / numDays
			s.AvgTxnsPerDay = float64(s.Transactions) / numDays
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// WeekdaySummary is one row of the day-of-week breakdown table.
type WeekdaySummary struct {
	DayOfWeek    int
	TotalSales   float64
	Transactions int
}

// WeekdaySummaries aggregates the series by day of week, ordered Monday
// through Sunday. Days with no observations are present with zeros so the
// table always has seven rows.
func WeekdaySummaries(series *models.DemandSeries) []WeekdaySummary {
	out := make([]WeekdaySummary, 7)
	for d := range out {
		out[d].DayOfWeek = d
	}
	for _, p := range series.Points {
		out[p.Features.DayOfWeek].TotalSales += p.SalesAmount
		out[p.Features.DayOfWeek].Transactions += p.TransactionCount
	}
	return out
}

// MonthlySummary is one row of the month-over-month table.
type MonthlySummary struct {
	Year         int
	Month        int
	TotalSales   float64
	Transactions int
}

// MonthlySummaries aggregates the series by calendar month, ascending.
func MonthlySummaries(series *models.DemandSeries) []MonthlySummary {
	type key struct{ year, month int }
	byMonth := make(map[key]*MonthlySummary)
	for _, p := range series.Points {
		k := key{p.Features.Year, p.Features.Month}
		s, ok := byMonth[k]
		if !ok {
			s = &MonthlySummary{Year: k.year, Month: k.month}
			byMonth[k] = s
		}
		s.TotalSales += p.SalesAmount
		s.Transactions += p.TransactionCount
	}
	out := make([]MonthlySummary, 0, len(byMonth))
	for _, s := range byMonth {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}
