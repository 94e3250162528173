package service

import (
	"fmt"

	"github.com/okian/slugger/internal/adapters/repository"
	"github.com/okian/slugger/internal/config"
	"github.com/okian/slugger/internal/domain/percentile"
	"github.com/okian/slugger/internal/domain/render"
	"github.com/okian/slugger/pkg/logger"
)

// NewFromConfig builds an unstarted Service reading cfg.DataPath.
func NewFromConfig(cfg *config.Config, log logger.Logger) (*Service, error) {
	if log == nil {
		log = logger.Nop()
	}
	store, err := repository.NewFileStore(cfg.DataPath, repository.WithLogger(log.Named("repository")))
	if err != nil {
		return nil, fmt.Errorf("dataset store: %w", err)
	}

	opts := render.DefaultOptions()
	opts.Disclaimer = cfg.Disclaimer
	opts.Watermark = cfg.Watermark
	opts.Width = cfg.ChartWidth
	opts.Height = cfg.ChartHeight

	return New(
		WithLogger(log),
		WithStore(store),
		WithEngine(percentile.NewEngine(percentile.WithFloor(cfg.PercentileFloor))),
		WithRenderOptions(opts),
		WithDefaultPlayer(cfg.DefaultPlayer),
	), nil
}
