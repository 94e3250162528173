package model

import (
	"fmt"
	"math"
	"strings"
)

// Values maps a metric to its value. A missing key is a null value.
type Values map[Metric]float64

// Get returns the value for m and whether it is present.
func (v Values) Get(m Metric) (float64, bool) {
	x, ok := v[m]
	if !ok || math.IsNaN(x) {
		return 0, false
	}
	return x, true
}

// Clone returns an independent copy of v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// PlayerRecord is one hitter row of the source dataset.
type PlayerRecord struct {
	Name      string `json:"name"`
	Qualified bool   `json:"qualified"`
	Stats     Values `json:"stats"`
}

// Clone returns a deep copy of the record.
func (p PlayerRecord) Clone() PlayerRecord {
	p.Stats = p.Stats.Clone()
	return p
}

// PercentileRow is a player's raw values plus percentiles computed against one subset.
type PercentileRow struct {
	PlayerRecord
	Percentiles Values `json:"percentiles"`
}

// Population selects the peer group percentiles are computed against.
type Population string

// Supported populations.
const (
	PopulationAll       Population = "all"
	PopulationQualified Population = "qualified"
)

// ParsePopulation maps user input to a Population. Empty input means all players.
func ParsePopulation(s string) (Population, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all players":
		return PopulationAll, nil
	case "qualified", "qualified players":
		return PopulationQualified, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPopulation, s)
	}
}

// Label returns the human readable name shown in the page selector.
func (p Population) Label() string {
	if p == PopulationQualified {
		return "Qualified Players"
	}
	return "All Players"
}

// Apply returns the subset of d belonging to the population.
func (p Population) Apply(d Dataset) Dataset {
	if p == PopulationQualified {
		return d.Qualified()
	}
	return d
}
