package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/okian/slugger/internal/adapters/chart"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/internal/domain/render"
	"github.com/okian/slugger/internal/smoke"
	"github.com/okian/slugger/pkg/logger"
)

const outputFilePermission = 0o644

var errNoOutput = errors.New("render needs an output file")

func playersCmd() *cli.Command {
	return &cli.Command{
		Name:   "players",
		Usage:  "List the players of a population and its default selection",
		Flags:  []cli.Flag{populationFlag()},
		Action: runPlayers,
	}
}

func runPlayers(c *cli.Context) error {
	pop, err := model.ParsePopulation(c.String("population"))
	if err != nil {
		return err
	}
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Stop()

	list, err := svc.Players(c.Context, pop)
	if err != nil {
		return err
	}
	if len(list.Players) == 0 {
		color.New(color.FgYellow).Fprintf(c.App.Writer, "No %s found\n", list.Label)
		return nil
	}

	rows := make([][]string, 0, len(list.Players))
	for i, name := range list.Players {
		mark := ""
		if name == list.Default {
			mark = "default"
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), name, mark})
	}
	return writeTable(c.App.Writer, fmt.Sprintf("%s (%d)", list.Label, len(list.Players)), []string{"#", "Player", ""}, rows)
}

func tableCmd() *cli.Command {
	return &cli.Command{
		Name:   "table",
		Usage:  "Show one player's values and percentiles",
		Flags:  []cli.Flag{populationFlag(), playerFlag()},
		Action: runTable,
	}
}

func runTable(c *cli.Context) error {
	pop, err := model.ParsePopulation(c.String("population"))
	if err != nil {
		return err
	}
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Stop()

	row, err := svc.Percentiles(c.Context, pop, c.String("player"))
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(model.MetricOrder))
	for _, m := range model.MetricOrder {
		v, ok := row.Stats.Get(m)
		if !ok {
			rows = append(rows, []string{string(m), "-", "-"})
			continue
		}
		p, _ := row.Percentiles.Get(m)
		rows = append(rows, []string{
			string(m),
			render.FormatValue(m, v, model.DecimalMetrics),
			percentileCell(p),
		})
	}
	title := fmt.Sprintf("%s, %s", row.Name, pop.Label())
	return writeTable(c.App.Writer, title, []string{"Metric", "Value", "Percentile"}, rows)
}

func summaryCmd() *cli.Command {
	return &cli.Command{
		Name:   "summary",
		Usage:  "Describe each metric's distribution in a population",
		Flags:  []cli.Flag{populationFlag()},
		Action: runSummary,
	}
}

func runSummary(c *cli.Context) error {
	pop, err := model.ParsePopulation(c.String("population"))
	if err != nil {
		return err
	}
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Stop()

	sum, err := svc.Summary(c.Context, pop)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(sum.Metrics))
	for _, m := range sum.Metrics {
		if m.Count == 0 {
			rows = append(rows, []string{string(m.Metric), "0", "-", "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			string(m.Metric),
			fmt.Sprint(m.Count),
			render.FormatValue(m.Metric, m.Mean, model.DecimalMetrics),
			render.FormatValue(m.Metric, m.Median, model.DecimalMetrics),
			render.FormatValue(m.Metric, m.Min, model.DecimalMetrics),
			render.FormatValue(m.Metric, m.Max, model.DecimalMetrics),
		})
	}
	title := fmt.Sprintf("%s (%d)", pop.Label(), sum.Players)
	return writeTable(c.App.Writer, title, []string{"Metric", "Count", "Mean", "Median", "Min", "Max"}, rows)
}

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "Write a player's chart to an .svg or .png file",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{populationFlag(), playerFlag()},
		Action:    runRender,
	}
}

func runRender(c *cli.Context) error {
	out := c.Args().First()
	if out == "" {
		return errNoOutput
	}
	format, err := chart.ParseFormat(filepath.Ext(out))
	if err != nil {
		return err
	}
	pop, err := model.ParsePopulation(c.String("population"))
	if err != nil {
		return err
	}
	svc, err := loadService(c)
	if err != nil {
		return err
	}
	defer svc.Stop()

	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, outputFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := svc.ChartImage(c.Context, pop, c.String("player"), format, f); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	color.New(color.FgGreen).Fprintf(c.App.Writer, "Chart written to %s\n", out)
	return nil
}

func checkCmd() *cli.Command {
	d := smoke.DefaultConfig()
	return &cli.Command{
		Name:  "check",
		Usage: "Smoke-check a running dashboard server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: d.BaseURL, Usage: "Base URL of the server"},
			&cli.IntFlag{Name: "workers", Value: d.Workers, Usage: "Concurrent requests"},
			&cli.DurationFlag{Name: "timeout", Value: d.Timeout, Usage: "Per-request timeout"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log every failing player"},
		},
		Action: runCheck,
	}
}

func runCheck(c *cli.Context) error {
	cfg := smoke.Config{
		BaseURL:       c.String("url"),
		Workers:       c.Int("workers"),
		Timeout:       c.Duration("timeout"),
		Floor:         c.Float64("floor"),
		DefaultPlayer: c.String("default-player"),
		Verbose:       c.Bool("verbose"),
	}
	report, err := smoke.Run(c.Context, cfg, logger.Get())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(report.Populations))
	for _, p := range report.Populations {
		status := color.GreenString("ok")
		if p.Failed > 0 {
			status = color.RedString("%d failed", p.Failed)
		}
		rows = append(rows, []string{p.Population.Label(), fmt.Sprint(p.Players), p.Default, fmt.Sprint(p.Checked), status})
	}
	if err := writeTable(c.App.Writer, "Smoke check", []string{"Population", "Players", "Default", "Checked", "Status"}, rows); err != nil {
		return err
	}
	for _, p := range report.Populations {
		for _, f := range p.Failures {
			color.New(color.FgRed).Fprintf(c.App.Writer, "  %s: %s\n", p.Population, f)
		}
	}
	fmt.Fprintf(c.App.Writer, "%.1f%% of player checks passed in %s\n", report.SuccessRate(), report.Duration.Round(time.Millisecond))

	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%w: %d failures", smoke.ErrCheckFailed, n)
	}
	return nil
}
