// Package model contains domain models passed between layers.
package model

// Metric names a hitter statistic column, e.g. "OPS" or "K%".
type Metric string

// Hitter metrics in display order.
const (
	OPS   Metric = "OPS"
	AVG   Metric = "AVG"
	OBP   Metric = "OBP"
	SLG   Metric = "SLG"
	KPct  Metric = "K%"
	BBPct Metric = "BB%"
	Whiff Metric = "Whiff%"
	SwStr Metric = "SwStr%"
	FBPct Metric = "FB%"
	GBPct Metric = "GB%"
	LDPct Metric = "LD%"
	SBPct Metric = "SB%"
	BABIP Metric = "BABIP"
)

// MetricOrder is the fixed order in which metrics are ranked and drawn.
// The engine and the renderer both take it explicitly so they never disagree.
var MetricOrder = []Metric{OPS, AVG, OBP, SLG, KPct, BBPct, Whiff, SwStr, FBPct, GBPct, LDPct, SBPct, BABIP}

// ReverseMetrics are metrics where a lower raw value is better.
var ReverseMetrics = NewMetricSet(KPct, Whiff, SwStr, GBPct)

// DecimalMetrics are rate stats shown with exactly three decimals.
var DecimalMetrics = NewMetricSet(OBP, SLG, AVG, OPS, BABIP)

// MetricSet is an unordered set of metrics.
type MetricSet map[Metric]struct{}

// NewMetricSet builds a set from the given metrics.
func NewMetricSet(metrics ...Metric) MetricSet {
	s := make(MetricSet, len(metrics))
	for _, m := range metrics {
		s[m] = struct{}{}
	}
	return s
}

// Has reports whether m is in the set. A nil set contains nothing.
func (s MetricSet) Has(m Metric) bool {
	_, ok := s[m]
	return ok
}

// Metrics returns a copy of MetricOrder.
func Metrics() []Metric {
	out := make([]Metric, len(MetricOrder))
	copy(out, MetricOrder)
	return out
}
