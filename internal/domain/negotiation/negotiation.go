// Package negotiation derives salary negotiation targets from market
// percentiles.
package negotiation

import (
	"math"

	"github.com/okian/offerlens/internal/domain/model"
)

const conservativeRaise = 1.05

// Room computes conservative/realistic/aggressive targets for the given
// current total compensation.
//
//   - conservative: max(current * 1.05, p75)
//   - aggressive:   p90
//   - realistic:    midpoint of the two
//
// Missing percentiles fall back to current*1.1 / current*1.2 so the
// arithmetic stays defined, though callers normally short-circuit to an
// insufficient-data result before reaching this point. When current is
// zero the percentage deltas are undefined and stay nil; the targets are
// still returned. Invariant: conservative <= realistic <= aggressive
// whenever p75 <= p90.
func Room(current float64, stats model.MarketStats) model.NegotiationRoom {
	p75 := valueOr(stats.P75, current*1.1)
	p90 := valueOr(stats.P90, current*1.2)

	conservative := math.Max(current*conservativeRaise, p75)
	aggressive := math.Max(p90, conservative)
	realistic := (conservative + aggressive) / 2

	return model.NegotiationRoom{
		Conservative: conservative,
		Realistic:    realistic,
		Aggressive:   aggressive,
		PercentageIncrease: model.PercentageIncrease{
			Conservative: percentageIncrease(conservative, current),
			Realistic:    percentageIncrease(realistic, current),
			Aggressive:   percentageIncrease(aggressive, current),
		},
	}
}

// percentageIncrease returns (target/current - 1) * 100 rounded to one
// decimal, or nil when current is zero. The nil sentinel is the guard
// against a division by zero escaping as NaN or a panic.
func percentageIncrease(target, current float64) *float64 {
	if current == 0 {
		return nil
	}
	pct := math.Round((target/current-1)*1000) / 10
	return &pct
}

func valueOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}
