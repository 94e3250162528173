package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	app "github.com/okian/slugger/internal/app"
	"github.com/okian/slugger/internal/config"
	"github.com/okian/slugger/internal/domain/model"
	"github.com/okian/slugger/pkg/logger"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp(os.Stdout, os.Stderr).RunContext(ctx, os.Args); err != nil {
		color.Red("Error: %v", err)
		stop()
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "slugger",
		Usage:     "Hitter percentile rankings from the command line",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Hitters CSV file",
				EnvVars: []string{"SLUGGER_DATA_PATH"},
			},
			&cli.Float64Flag{
				Name:  "floor",
				Usage: "Minimum displayed percentile; 0 disables the floor",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "default-player",
				Usage: "Player preselected for the all population",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "Log level: debug, info, warn, error",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable coloured output",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("no-color") {
				color.NoColor = true
			}
			return logger.Init(logger.WithWriter(c.App.ErrWriter), logger.WithLevel(c.String("log-level")))
		},
		Commands: []*cli.Command{
			playersCmd(),
			tableCmd(),
			summaryCmd(),
			renderCmd(),
			checkCmd(),
		},
	}
}

func populationFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "population",
		Aliases: []string{"p"},
		Value:   string(model.PopulationAll),
		Usage:   "all or qualified",
	}
}

func playerFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "player",
		Usage: "Player name; the population default when omitted",
	}
}

// loadService builds and starts a Service from config, environment and flags.
func loadService(c *cli.Context) (*app.Service, error) {
	cfg, err := config.Load(c.Context)
	if err != nil {
		return nil, err
	}
	if c.IsSet("data") {
		cfg.DataPath = c.String("data")
	}
	if c.IsSet("floor") {
		cfg.PercentileFloor = c.Float64("floor")
	}
	if c.IsSet("default-player") {
		cfg.DefaultPlayer = c.String("default-player")
	}

	svc, err := app.NewFromConfig(cfg, logger.Get())
	if err != nil {
		return nil, err
	}
	if err := svc.Start(c.Context); err != nil {
		return nil, err
	}
	return svc, nil
}
