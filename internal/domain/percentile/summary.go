package percentile

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/slugger/internal/domain/model"
)

// MetricSummary describes the distribution of one metric in a population.
type MetricSummary struct {
	Metric model.Metric `json:"metric"`
	Count  int          `json:"count"`
	Mean   float64      `json:"mean"`
	Median float64      `json:"median"`
	Min    float64      `json:"min"`
	Max    float64      `json:"max"`
}

// Summarize returns a summary per metric over the non-null values of subset.
// All-null metrics are reported with Count 0.
func Summarize(subset model.Dataset, metrics []model.Metric) []MetricSummary {
	out := make([]MetricSummary, 0, len(metrics))
	for _, m := range metrics {
		values, present := subset.Column(m)
		xs := make([]float64, 0, len(values))
		for i, v := range values {
			if present[i] {
				xs = append(xs, v)
			}
		}
		s := MetricSummary{Metric: m, Count: len(xs)}
		if len(xs) > 0 {
			sort.Float64s(xs)
			s.Mean = stat.Mean(xs, nil)
			s.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)
			s.Min = floats.Min(xs)
			s.Max = floats.Max(xs)
		}
		out = append(out, s)
	}
	return out
}
