// Package timeseries normalizes raw observations into the canonical
// demand series the rest of the planner consumes. No other package may
// assume anything about raw input shape.
package timeseries

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"shift-planner/models"
)

// Normalize turns an unordered collection of observations into a demand
// series: timestamps truncated to the hour, duplicate hours summed,
// negative metrics clamped to zero, points sorted ascending, calendar
// features computed for every retained hour.
//
// Hours with no activity are simply absent. Downstream consumers must
// treat absence as unseen, not as an observed zero.
func Normalize(observations []models.Observation) *models.DemandSeries {
	type bucket struct {
		sales float64
		txns  int
	}
	buckets := make(map[time.Time]*bucket, len(observations))

	for _, obs := range observations {
		ts := obs.Timestamp.Truncate(time.Hour)
		b, ok := buckets[ts]
		if !ok {
			b = &bucket{}
			buckets[ts] = b
		}
		// Negative values are data noise, not refunds; zero them before
		// they enter the model.
		if obs.SalesAmount > 0 {
			b.sales += obs.SalesAmount
		}
		if obs.TransactionCount > 0 {
			b.txns += obs.TransactionCount
		}
	}

	series := &models.DemandSeries{Points: make([]models.SeriesPoint, 0, len(buckets))}
	for ts, b := range buckets {
		series.Points = append(series.Points, models.SeriesPoint{
			Timestamp:        ts,
			Features:         FeaturesFor(ts),
			SalesAmount:      b.sales,
			TransactionCount: b.txns,
		})
	}
	sort.Slice(series.Points, func(i, j int) bool {
		return series.Points[i].Timestamp.Before(series.Points[j].Timestamp)
	})
	return series
}

// FeaturesFor derives the calendar features of a timestamp. DayOfWeek is
// 0=Monday..6=Sunday.
func FeaturesFor(ts time.Time) models.CalendarFeatures {
	_, isoWeek := ts.ISOWeek()
	return models.CalendarFeatures{
		Hour:      ts.Hour(),
		DayOfWeek: (int(ts.Weekday()) + 6) % 7,
		Month:     int(ts.Month()),
		Year:      ts.Year(),
		ISOWeek:   isoWeek,
	}
}

// Fingerprint returns a stable content hash of the series, for callers
// that cache fitted models keyed by their training data.
func Fingerprint(series *models.DemandSeries) string {
	h := sha256.New()
	var sb strings.Builder
	for _, p := range series.Points {
		sb.Reset()
		fmt.Fprintf(&sb, "%d|%.6f|%d\n", p.Timestamp.Unix(), p.SalesAmount, p.TransactionCount)
		h.Write([]byte(sb.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// LastTimestamp returns the latest timestamp in the series, or the zero
// time for an empty series.
func LastTimestamp(series *models.DemandSeries) time.Time {
	if len(series.Points) == 0 {
		return time.Time{}
	}
	return series.Points[len(series.Points)-1].Timestamp
}
