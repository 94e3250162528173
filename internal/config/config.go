// Package config defines the dashboard configuration and its loading hooks.
//
// Conventions:
//   - New returns a Config with defaults.
//   - Load layers an optional YAML file and SLUGGER_ env vars on top of it.
package config

import (
	"context"
)

// Social is a link shown in the page's socials panel.
type Social struct {
	Name string `koanf:"name" json:"name"`
	URL  string `koanf:"url"  json:"url"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataPath is the hitters CSV file.
	DataPath string `koanf:"data_path"`

	// PercentileFloor is the minimum displayed percentile; 0 disables the floor.
	PercentileFloor float64 `koanf:"percentile_floor"`

	// DefaultPlayer is preselected for the all-players population when present.
	DefaultPlayer string `koanf:"default_player"`

	Disclaimer string `koanf:"disclaimer"`
	Watermark  string `koanf:"watermark"`

	// ChartWidth and ChartHeight are the chart size in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	ContactEmail string   `koanf:"contact_email"`
	Socials      []Social `koanf:"socials"`
}

// New creates a Config with defaults. Context is accepted first to follow the
// project convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		Addr:            ":9080",
		DataPath:        "hitters_perc.csv",
		PercentileFloor: 1,
		DefaultPlayer:   "Art Charles",
		Disclaimer:      "*2.1 PA per team game to qualify",
		Watermark:       "@iamfrankjuarez",
		ChartWidth:      800,
		ChartHeight:     800,
		ContactEmail:    "data.frankly@gmail.com",
		Socials: []Social{
			{Name: "Twitter", URL: "https://twitter.com/iamfrankjuarez"},
			{Name: "LinkedIn", URL: "https://linkedin.com/in/francisco-juarez-niebla-4b6271147"},
			{Name: "GitHub", URL: "https://github.com/franciscojuarezn"},
		},
	}
}
