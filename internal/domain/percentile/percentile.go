// Package percentile ranks each player's metrics within a peer group.
package percentile

import (
	"gonum.org/v1/gonum/floats"

	"github.com/okian/slugger/internal/domain/model"
)

// Percentile bounds.
const (
	maxPercentile = 100.0
	// DefaultFloor keeps any computed percentile from reporting as zero.
	DefaultFloor = 1.0
)

// Compute returns one row per player of subset, in subset order, holding the
// percentile of each requested metric relative to subset only.
//
// A percentile is the player's average (fractional) rank among the non-null
// values of the metric divided by their count, times 100. Metrics in reverse
// become 100-p, and the result is then raised to floor when floor > 0.
// Null raw values yield null percentiles. subset is not modified.
func Compute(subset model.Dataset, metrics []model.Metric, reverse model.MetricSet, floor float64) []model.PercentileRow {
	rows := make([]model.PercentileRow, subset.Len())
	for i := range rows {
		rows[i] = model.PercentileRow{
			PlayerRecord: subset.At(i),
			Percentiles:  make(model.Values, len(metrics)),
		}
	}

	for _, m := range metrics {
		pct, ok := Rank(subset.Column(m))
		for i := range rows {
			if !ok[i] {
				continue
			}
			p := pct[i]
			if reverse.Has(m) {
				p = maxPercentile - p
			}
			if floor > 0 && p < floor {
				p = floor
			}
			rows[i].Percentiles[m] = p
		}
	}
	return rows
}

// Rank computes percentile ranks (0,100] for the present entries of values.
// Tied values share the average of their ranks. The returned mask is false
// where the input was absent.
func Rank(values []float64, present []bool) ([]float64, []bool) {
	pct := make([]float64, len(values))
	ok := make([]bool, len(values))

	sorted := make([]float64, 0, len(values))
	origin := make([]int, 0, len(values))
	for i, v := range values {
		if present[i] {
			sorted = append(sorted, v)
			origin = append(origin, i)
		}
	}
	n := len(sorted)
	if n == 0 {
		return pct, ok
	}

	inds := make([]int, n)
	floats.Argsort(sorted, inds)

	for start := 0; start < n; {
		end := start + 1
		for end < n && sorted[end] == sorted[start] {
			end++
		}
		// 1-based ranks start+1..end share their mean.
		avg := float64(start+1+end) / 2
		p := avg / float64(n) * maxPercentile
		for k := start; k < end; k++ {
			at := origin[inds[k]]
			pct[at] = p
			ok[at] = true
		}
		start = end
	}
	return pct, ok
}
