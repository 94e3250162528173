// Package service provides the dashboard service behind the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/okian/slugger/internal/adapters/chart"
	"github.com/okian/slugger/internal/adapters/repository"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/internal/domain/percentile"
	"github.com/okian/slugger/internal/domain/render"
	"github.com/okian/slugger/pkg/logger"
	"github.com/okian/slugger/pkg/metrics"
)

// DefaultPlayer is preselected in the all-players view when present.
const DefaultPlayer = "Art Charles"

// PlayerList is the selectable names of a population.
type PlayerList struct {
	Population model.Population `json:"population"`
	Label      string           `json:"label"`
	Default    string           `json:"default"`
	Players    []string         `json:"players"`
}

// Summary describes the distribution of every metric in a population.
type Summary struct {
	Population model.Population           `json:"population"`
	Players    int                        `json:"players"`
	Metrics    []percentile.MetricSummary `json:"metrics"`
}

// Service answers dashboard queries. Every query recomputes percentiles over
// the requested population; only the loaded dataset is shared.
type Service struct {
	mu sync.RWMutex

	store         repository.Store
	engine        *percentile.Engine
	renderOpts    render.Options
	defaultPlayer string

	started   bool
	startedAt time.Time
	players   int
	qualified int

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the dataset source.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithEngine sets the percentile engine.
func WithEngine(e *percentile.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithRenderOptions sets the chart options. Metric order and the reversed
// set are always taken from the engine.
func WithRenderOptions(opts render.Options) Option {
	return func(s *Service) {
		s.renderOpts = opts
	}
}

// WithDefaultPlayer sets the preferred default of the all-players view.
func WithDefaultPlayer(name string) Option {
	return func(s *Service) {
		s.defaultPlayer = name
	}
}

// New constructs a Service. A store must be supplied with WithStore.
func New(opts ...Option) *Service {
	s := &Service{
		engine:        percentile.NewEngine(),
		renderOpts:    render.DefaultOptions(),
		defaultPlayer: DefaultPlayer,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.renderOpts.Metrics = s.engine.Metrics()
	s.renderOpts.Reverse = s.engine.Reverse()
	return s
}

// Start loads the dataset. A missing or malformed file fails startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		return ErrNoStore
	}

	s.logger.Info(ctx, "starting dashboard service...")
	ds, err := s.store.Dataset(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}

	s.players = ds.Len()
	s.qualified = ds.Qualified().Len()
	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("players", s.players),
		logger.Int("qualified", s.qualified),
		logger.Float64("floor", s.engine.Floor()),
	)
	return nil
}

// Stop marks the service stopped. The dataset stays cached.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) subset(ctx context.Context, pop model.Population) (model.Dataset, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return model.Dataset{}, ErrNotStarted
	}
	ds, err := s.store.Dataset(ctx)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("%w: %w", ErrDatasetUnavailable, err)
	}
	return pop.Apply(ds), nil
}

// Players lists the population's names in dataset order and its default selection.
func (s *Service) Players(ctx context.Context, pop model.Population) (PlayerList, error) {
	sub, err := s.subset(ctx, pop)
	if err != nil {
		return PlayerList{}, err
	}
	return PlayerList{
		Population: pop,
		Label:      pop.Label(),
		Default:    s.defaultFor(pop, sub),
		Players:    sub.Names(),
	}, nil
}

// defaultFor picks the preselected player: the configured default in the
// all-players view when present, otherwise the first player.
func (s *Service) defaultFor(pop model.Population, sub model.Dataset) string {
	if sub.Len() == 0 {
		return ""
	}
	if pop == model.PopulationAll && s.defaultPlayer != "" && sub.Contains(s.defaultPlayer) {
		return s.defaultPlayer
	}
	return sub.At(0).Name
}

// Percentiles ranks the population and returns one player's row. An empty
// name selects the population default.
func (s *Service) Percentiles(ctx context.Context, pop model.Population, name string) (model.PercentileRow, error) {
	sub, err := s.subset(ctx, pop)
	if err != nil {
		return model.PercentileRow{}, err
	}
	if name == "" {
		name = s.defaultFor(pop, sub)
	}

	start := time.Now()
	row, err := s.engine.Row(sub, name)
	metrics.RecordPercentileComputation(string(pop), float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return model.PercentileRow{}, fmt.Errorf("%w: %q in %s", model.ErrPlayerNotFound, name, pop.Label())
		}
		return model.PercentileRow{}, err
	}
	for _, m := range s.engine.Metrics() {
		if _, ok := row.Percentiles.Get(m); !ok {
			metrics.RecordPercentileNull(string(m))
		}
	}
	return row, nil
}

// Table ranks every player of the population.
func (s *Service) Table(ctx context.Context, pop model.Population) ([]model.PercentileRow, error) {
	sub, err := s.subset(ctx, pop)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rows := s.engine.Compute(sub)
	metrics.RecordPercentileComputation(string(pop), float64(time.Since(start).Microseconds())/1000)
	return rows, nil
}

// Chart builds the percentile chart of one player.
func (s *Service) Chart(ctx context.Context, pop model.Population, name string) (render.Figure, error) {
	row, err := s.Percentiles(ctx, pop, name)
	if err != nil {
		return render.Figure{}, err
	}
	fig := render.Render(row, s.renderOpts)
	if skipped := len(s.renderOpts.Metrics) - len(fig.Bars); skipped > 0 {
		metrics.RecordChartSkippedMetrics(skipped)
		s.logger.Debug(ctx, "metrics left off chart",
			logger.String("player", row.Name),
			logger.Int("skipped", skipped),
		)
	}
	return fig, nil
}

// ChartImage paints one player's chart to w.
func (s *Service) ChartImage(ctx context.Context, pop model.Population, name string, format chart.Format, w io.Writer) error {
	fig, err := s.Chart(ctx, pop, name)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := chart.Paint(w, fig, format); err != nil {
		metrics.RecordErrorByComponent("chart", "paint")
		return err
	}
	metrics.RecordChartRender(string(format), float64(time.Since(start).Microseconds())/1000)
	return nil
}

// Summary describes the population's metric distributions.
func (s *Service) Summary(ctx context.Context, pop model.Population) (Summary, error) {
	sub, err := s.subset(ctx, pop)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Population: pop,
		Players:    sub.Len(),
		Metrics:    percentile.Summarize(sub, s.engine.Metrics()),
	}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":         s.started,
		"percentileFloor": s.engine.Floor(),
		"metrics":         len(s.engine.Metrics()),
		"defaultPlayer":   s.defaultPlayer,
	}
	if s.started {
		stats["players"] = s.players
		stats["qualifiedPlayers"] = s.qualified
		stats["uptimeSeconds"] = int(time.Since(s.startedAt).Seconds())
	}
	return stats
}
