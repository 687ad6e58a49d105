// Package forecast fits a demand model over calendar features and
// evaluates it on future hours. The model is an ensemble of regression
// trees grown on bootstrap samples; training uses a fixed seed so a
// refit on identical data reproduces identical predictions.
package forecast

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"shift-planner/errors"
	"shift-planner/models"
	"shift-planner/timeseries"
)

// MinObservations is the smallest series Fit accepts. Anything below one
// full daily cycle produces an unreliable model.
const MinObservations = 24

// graceWindow is how far before the last training hour a requested
// forecast timestamp may fall before it is rejected as "the past".
const graceWindow = 24 * time.Hour

const numFeatures = 3 // hour, day of week, month

// Config tunes the ensemble. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Trees    int
	MinLeaf  int
	MaxDepth int
	Seed     int64
}

// DefaultConfig mirrors the tuning the staffing forecast shipped with:
// 100 trees, leaves of at least 3 samples, seed 42.
func DefaultConfig() Config {
	return Config{Trees: 100, MinLeaf: 3, MaxDepth: 10, Seed: 42}
}

// Model is a fitted demand forecaster. It is immutable after Fit and safe
// to reuse for any number of Predict calls.
type Model struct {
	metric         models.Metric
	trees          []*node
	trainedThrough time.Time
	observations   int
}

// node is one regression-tree node. Leaves have left == nil and carry the
// mean of their training targets in value.
type node struct {
	feature   int
	threshold float64
	left      *node
	right     *node
	value     float64
}

// Fit trains a model on the series for the chosen metric. It fails with
// InsufficientDataError when the series has fewer than MinObservations
// points.
func Fit(series *models.DemandSeries, metric models.Metric, cfg Config) (*Model, error) {
	n := series.Len()
	if n < MinObservations {
		return nil, &errors.InsufficientDataError{Got: n, Min: MinObservations}
	}
	if cfg.Trees <= 0 {
		return nil, &errors.InvalidParameterError{Name: "trees", Value: float64(cfg.Trees)}
	}
	if cfg.MinLeaf <= 0 {
		return nil, &errors.InvalidParameterError{Name: "min_leaf", Value: float64(cfg.MinLeaf)}
	}
	if cfg.MaxDepth <= 0 {
		return nil, &errors.InvalidParameterError{Name: "max_depth", Value: float64(cfg.MaxDepth)}
	}

	features := make([][numFeatures]float64, n)
	targets := make([]float64, n)
	for i, p := range series.Points {
		features[i] = featureVector(p.Features)
		targets[i] = p.MetricValue(metric)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	trees := make([]*node, cfg.Trees)
	sample := make([]int, n)
	for t := range trees {
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		trees[t] = grow(features, targets, sample, 0, cfg)
	}

	return &Model{
		metric:         metric,
		trees:          trees,
		trainedThrough: series.Points[n-1].Timestamp,
		observations:   n,
	}, nil
}

// Predict evaluates the model on each future timestamp, in input order.
// Outputs are clamped to zero; physical demand cannot be negative. An
// empty horizon, or a timestamp earlier than the last training hour minus
// the grace window, is rejected with InvalidHorizonError.
func (m *Model) Predict(future []time.Time) ([]models.ForecastPoint, error) {
	if len(future) == 0 {
		return nil, &errors.InvalidHorizonError{Reason: "no future timestamps supplied"}
	}
	cutoff := m.trainedThrough.Add(-graceWindow)
	for _, ts := range future {
		if ts.Before(cutoff) {
			return nil, &errors.InvalidHorizonError{Reason: "timestamp precedes training data", Timestamp: ts}
		}
	}

	points := make([]models.ForecastPoint, len(future))
	for i, ts := range future {
		x := featureVector(timeseries.FeaturesFor(ts))
		sum := 0.0
		for _, t := range m.trees {
			sum += evaluate(t, x)
		}
		pred := sum / float64(len(m.trees))
		if pred < 0 {
			pred = 0
		}
		points[i] = models.ForecastPoint{Timestamp: ts, Predicted: pred}
	}
	return points, nil
}

// Metric returns the metric the model was trained on.
func (m *Model) Metric() models.Metric { return m.metric }

// TrainedThrough returns the last training timestamp.
func (m *Model) TrainedThrough() time.Time { return m.trainedThrough }

// Observations returns the number of training points.
func (m *Model) Observations() int { return m.observations }

// Horizon builds an hourly timestamp sequence covering the given number
// of whole days
// starting at start (truncated to the hour). A non-positive day count
// yields nil, which Predict then rejects.
func Horizon(start time.Time, days int) []time.Time {
	if days <= 0 {
		return nil
	}
	start = start.Truncate(time.Hour)
	out := make([]time.Time, 0, days*24)
	for h := 0; h < days*24; h++ {
		out = append(out, start.Add(time.Duration(h)*time.Hour))
	}
	return out
}

func featureVector(f models.CalendarFeatures) [numFeatures]float64 {
	return [numFeatures]float64{float64(f.Hour), float64(f.DayOfWeek), float64(f.Month)}
}

func evaluate(n *node, x [numFeatures]float64) float64 {
	for n.left != nil {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

// grow recursively builds a regression tree over the sampled rows,
// splitting on the feature/threshold pair that minimizes the summed
// squared error of the two sides.
func grow(features [][numFeatures]float64, targets []float64, rows []int, depth int, cfg Config) *node {
	if depth >= cfg.MaxDepth || len(rows) < 2*cfg.MinLeaf {
		return leaf(targets, rows)
	}

	bestFeature, bestThreshold, bestScore := -1, 0.0, math.Inf(1)
	sorted := make([]int, len(rows))
	for f := 0; f < numFeatures; f++ {
		copy(sorted, rows)
		sortRowsByFeature(sorted, features, f)

		// Prefix sums over the sorted order let each candidate split be
		// scored in constant time: SSE = sum(y^2) - (sum y)^2 / n.
		prefixSum := make([]float64, len(sorted)+1)
		prefixSq := make([]float64, len(sorted)+1)
		for i, r := range sorted {
			prefixSum[i+1] = prefixSum[i] + targets[r]
			prefixSq[i+1] = prefixSq[i] + targets[r]*targets[r]
		}
		total := len(sorted)
		for i := cfg.MinLeaf; i <= total-cfg.MinLeaf; i++ {
			lv := features[sorted[i-1]][f]
			rv := features[sorted[i]][f]
			if lv == rv {
				continue
			}
			leftSSE := prefixSq[i] - prefixSum[i]*prefixSum[i]/float64(i)
			rightN := float64(total - i)
			rightSum := prefixSum[total] - prefixSum[i]
			rightSSE := (prefixSq[total] - prefixSq[i]) - rightSum*rightSum/rightN
			score := leftSSE + rightSSE
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (lv + rv) / 2
			}
		}
	}

	if bestFeature < 0 {
		return leaf(targets, rows)
	}

	var left, right []int
	for _, r := range rows {
		if features[r][bestFeature] <= bestThreshold {
			left = append(left, r)
		} else {
			right = append(right, r)
		}
	}
	if len(left) < cfg.MinLeaf || len(right) < cfg.MinLeaf {
		return leaf(targets, rows)
	}

	return &node{
		feature:   bestFeature,
		threshold: bestThreshold,
		left:      grow(features, targets, left, depth+1, cfg),
		right:     grow(features, targets, right, depth+1, cfg),
	}
}

func leaf(targets []float64, rows []int) *node {
	sum := 0.0
	for _, r := range rows {
		sum += targets[r]
	}
	mean := 0.0
	if len(rows) > 0 {
		mean = sum / float64(len(rows))
	}
	return &node{value: mean}
}

// sortRowsByFeature orders rows by one feature. The stable sort keeps
// equal-valued rows in sample order, so tree growth is fully determined
// by the bootstrap sample.
func sortRowsByFeature(rows []int, features [][numFeatures]float64, f int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return features[rows[i]][f] < features[rows[j]][f]
	})
}
