package smoke

import (
	"fmt"

	service "github.com/okian/slugger/internal/app"
	"github.com/okian/slugger/internal/domain/model"
)

// expectedDefault applies the default selection rules to a player list.
func expectedDefault(pop model.Population, players []string, preferred string) string {
	if len(players) == 0 {
		return ""
	}
	if pop == model.PopulationAll {
		for _, p := range players {
			if p == preferred {
				return p
			}
		}
	}
	return players[0]
}

// verifyDefault checks the server's default selection for a list.
func verifyDefault(list service.PlayerList, preferred string) error {
	want := expectedDefault(list.Population, list.Players, preferred)
	if list.Default != want {
		return fmt.Errorf("%w: %s default is %q, want %q", ErrCheckFailed, list.Population, list.Default, want)
	}
	return nil
}

// verifySubset checks that every qualified player is also in the full list.
func verifySubset(all, qualified service.PlayerList) error {
	known := make(map[string]struct{}, len(all.Players))
	for _, p := range all.Players {
		known[p] = struct{}{}
	}
	for _, p := range qualified.Players {
		if _, ok := known[p]; !ok {
			return fmt.Errorf("%w: qualified player %q missing from all players", ErrCheckFailed, p)
		}
	}
	return nil
}

// verifyRow checks the range, floor and null invariants of one percentile row.
func verifyRow(row PercentileRow, pop model.Population, floor float64) error {
	if row.Population != pop {
		return fmt.Errorf("%w: %s: population %q, want %q", ErrCheckFailed, row.Name, row.Population, pop)
	}
	if pop == model.PopulationQualified && !row.Qualified {
		return fmt.Errorf("%w: %s is not qualified", ErrCheckFailed, row.Name)
	}
	low := 0.0
	if floor > 0 {
		low = floor
	}
	for m, p := range row.Percentiles {
		if p < low || p > maxPercentile {
			return fmt.Errorf("%w: %s %s percentile %.2f outside [%.0f, 100]", ErrCheckFailed, row.Name, m, p, low)
		}
		if _, ok := row.Stats.Get(m); !ok {
			return fmt.Errorf("%w: %s %s has a percentile but no value", ErrCheckFailed, row.Name, m)
		}
	}
	for m := range row.Stats {
		if _, ok := row.Stats.Get(m); !ok {
			continue
		}
		if _, ok := row.Percentiles.Get(m); !ok {
			return fmt.Errorf("%w: %s %s has a value but no percentile", ErrCheckFailed, row.Name, m)
		}
	}
	return nil
}
