package smoke

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	service "github.com/okian/slugger/internal/app"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/pkg/logger"
	"github.com/okian/slugger/pkg/metrics"
)

// Check names reported to metrics and in the Report.
const (
	CheckHealth      = "health"
	CheckDefault     = "default"
	CheckSubset      = "subset"
	CheckPercentiles = "percentiles"
)

// PopulationReport summarises the checks for one population.
type PopulationReport struct {
	Population model.Population
	Players    int
	Default    string
	Checked    int
	Passed     int
	Failed     int
	Failures   []string
}

// Report is the outcome of a Run.
type Report struct {
	Populations []PopulationReport
	StartTime   time.Time
	Duration    time.Duration
}

// Failed returns the number of failing checks across populations.
func (r *Report) Failed() int {
	n := 0
	for _, p := range r.Populations {
		n += p.Failed
	}
	return n
}

// SuccessRate is the share of passing player checks, in percent.
func (r *Report) SuccessRate() float64 {
	checked, passed := 0, 0
	for _, p := range r.Populations {
		checked += p.Checked
		passed += p.Passed
	}
	if checked == 0 {
		return 0
	}
	return float64(passed) / float64(checked) * percentageMultiplier
}

// Run checks the server described by cfg. It returns an error when the
// server is unreachable; invariant violations are collected in the Report.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Report, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Nop()
	}
	report := &Report{StartTime: time.Now()}
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting smoke check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.Float64("floor", cfg.Floor))

	err := client.Health(ctx)
	metrics.RecordSmokeCheck(CheckHealth, err == nil)
	if err != nil {
		return nil, err
	}

	lists := make(map[model.Population]service.PlayerList, 2)
	for _, pop := range []model.Population{model.PopulationAll, model.PopulationQualified} {
		list, err := client.Players(ctx, pop)
		if err != nil {
			return nil, fmt.Errorf("players %s: %w", pop, err)
		}
		lists[pop] = list

		pr := PopulationReport{Population: pop, Players: len(list.Players), Default: list.Default}
		if err := verifyDefault(list, cfg.DefaultPlayer); err != nil {
			pr.fail(err)
		}
		metrics.RecordSmokeCheck(CheckDefault, pr.Failed == 0)

		checkPercentiles(ctx, client, cfg, log, list, &pr)
		report.Populations = append(report.Populations, pr)
	}

	err = verifySubset(lists[model.PopulationAll], lists[model.PopulationQualified])
	metrics.RecordSmokeCheck(CheckSubset, err == nil)
	if err != nil {
		report.Populations[1].fail(err)
	}

	report.Duration = time.Since(report.StartTime)
	log.Info(ctx, "smoke check completed",
		logger.Int("failed", report.Failed()),
		logger.Float64("successRate", report.SuccessRate()),
		logger.Duration("duration", report.Duration))
	return report, nil
}

func (p *PopulationReport) fail(err error) {
	p.Failed++
	p.Failures = append(p.Failures, err.Error())
}

// checkPercentiles fetches every player of the list with a bounded worker pool.
func checkPercentiles(ctx context.Context, client *Client, cfg Config, log logger.Logger, list service.PlayerList, pr *PopulationReport) {
	var (
		checked int64
		passed  int64
		mu      sync.Mutex
		wg      sync.WaitGroup
	)
	names := make(chan string, cfg.Workers*workerChannelFactor)

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range names {
				if ctx.Err() != nil {
					continue
				}
				row, err := client.Percentiles(ctx, list.Population, name)
				if err == nil {
					err = verifyRow(row, list.Population, cfg.Floor)
				}
				atomic.AddInt64(&checked, 1)
				metrics.RecordSmokeCheck(CheckPercentiles, err == nil)
				if err == nil {
					atomic.AddInt64(&passed, 1)
					continue
				}
				if cfg.Verbose {
					log.Warn(ctx, "player check failed", logger.String("player", name), logger.Error(err))
				}
				mu.Lock()
				pr.fail(err)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(names)
		for _, name := range list.Players {
			select {
			case <-ctx.Done():
				return
			case names <- name:
			}
		}
	}()

	wg.Wait()
	pr.Checked = int(atomic.LoadInt64(&checked))
	pr.Passed = int(atomic.LoadInt64(&passed))
}
