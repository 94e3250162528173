// Package smoke verifies a running dashboard server over HTTP.
package smoke

import (
	"runtime"
	"time"
)

// Defaults for a check run.
const (
	DefaultBaseURL       = "http://localhost:9080"
	DefaultTimeout       = 30 * time.Second
	DefaultFloor         = 1.0
	DefaultPlayer        = "Art Charles"
	workerChannelFactor  = 2
	maxPercentile        = 100.0
	percentageMultiplier = 100
)

// Config holds the settings for a check run.
type Config struct {
	BaseURL       string        // Base URL of the server
	Workers       int           // Concurrent percentile fetches
	Timeout       time.Duration // Per-request timeout
	Floor         float64       // Percentile floor the server was started with; <= 0 means none
	DefaultPlayer string        // Expected default for the all population
	Verbose       bool          // Log every failing player
}

// DefaultConfig returns a Config for a local server.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Workers:       runtime.NumCPU() * workerChannelFactor,
		Timeout:       DefaultTimeout,
		Floor:         DefaultFloor,
		DefaultPlayer: DefaultPlayer,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.Workers <= 0 {
		c.Workers = d.Workers
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.DefaultPlayer == "" {
		c.DefaultPlayer = d.DefaultPlayer
	}
	return c
}
