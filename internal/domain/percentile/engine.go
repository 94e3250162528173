package percentile

import (
	"github.com/okian/slugger/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithFloor sets the lowest percentile ever reported. Zero or negative disables the clamp.
func WithFloor(floor float64) Option {
	return func(e *Engine) {
		if floor < maxPercentile {
			e.floor = floor
		}
	}
}

// WithMetrics sets the metrics to rank, in order.
func WithMetrics(metrics []model.Metric) Option {
	return func(e *Engine) {
		if len(metrics) > 0 {
			e.metrics = append([]model.Metric(nil), metrics...)
		}
	}
}

// WithReverse sets the metrics where lower raw values rank higher.
func WithReverse(reverse model.MetricSet) Option {
	return func(e *Engine) {
		if reverse != nil {
			e.reverse = reverse
		}
	}
}

// Engine binds a ranking policy to Compute.
type Engine struct {
	metrics []model.Metric
	reverse model.MetricSet
	floor   float64
}

// NewEngine creates an Engine ranking model.MetricOrder with model.ReverseMetrics
// and DefaultFloor unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		metrics: model.Metrics(),
		reverse: model.ReverseMetrics,
		floor:   DefaultFloor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute ranks every player of subset.
func (e *Engine) Compute(subset model.Dataset) []model.PercentileRow {
	return Compute(subset, e.metrics, e.reverse, e.floor)
}

// Row ranks subset and returns the named player's row.
func (e *Engine) Row(subset model.Dataset, name string) (model.PercentileRow, error) {
	if !subset.Contains(name) {
		return model.PercentileRow{}, model.ErrPlayerNotFound
	}
	for _, row := range e.Compute(subset) {
		if row.Name == name {
			return row, nil
		}
	}
	return model.PercentileRow{}, model.ErrPlayerNotFound
}

// Metrics returns the ranked metrics in order.
func (e *Engine) Metrics() []model.Metric {
	return append([]model.Metric(nil), e.metrics...)
}

// Reverse returns the reversed metric set.
func (e *Engine) Reverse() model.MetricSet { return e.reverse }

// Floor returns the configured floor.
func (e *Engine) Floor() float64 { return e.floor }
