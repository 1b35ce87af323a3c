// Package scoring implements Lumina's customer risk scoring engine.
//
// The engine is a pure function of a RiskProfile: no store, no clock, no
// randomness. Each rule inspects the profile independently and emits at most
// one driver. Contributions are additive; the total is rounded and clamped
// to [0, 100] before the band is derived.
//
// Rule order is significant only for ranking: drivers with equal
// contributions keep their evaluation order.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"lumina/risk-api/internal/domain"
)

// ─── Public API ───────────────────────────────────────────────────────────────

// Score evaluates every rule against p and returns the clamped score, its
// band, and the top drivers by contribution.
func Score(p domain.RiskProfile) domain.ScoreResult {
	return ScoreDrivers(Evaluate(p))
}

// ScoreDrivers builds the result from an already evaluated driver set, as
// returned by Evaluate.
func ScoreDrivers(drivers []domain.RiskDriver) domain.ScoreResult {
	score := clamp(int(math.Round(RawScore(drivers))), 0, 100)

	return domain.ScoreResult{
		Score:   score,
		Band:    BandFor(score),
		Drivers: TopDrivers(drivers, domain.MaxDrivers),
	}
}

// Evaluate returns the full set of triggered drivers in rule order.
// The result is never nil.
func Evaluate(p domain.RiskProfile) []domain.RiskDriver {
	drivers := make([]domain.RiskDriver, 0, len(rules))
	for _, r := range rules {
		if d, hit := r.eval(&p); hit {
			drivers = append(drivers, d)
		}
	}
	return drivers
}

// RawScore sums contributions over drivers without rounding or clamping.
func RawScore(drivers []domain.RiskDriver) float64 {
	var total float64
	for _, d := range drivers {
		total += d.Contribution
	}
	return total
}

// BandFor maps a score to its band. Lower bounds are inclusive.
func BandFor(score int) domain.RiskLevel {
	switch {
	case score >= domain.ThresholdHigh:
		return domain.RiskHigh
	case score >= domain.ThresholdMedium:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// TopDrivers returns at most n drivers ordered by contribution descending.
// Ties keep their input order. The input slice is not modified.
func TopDrivers(drivers []domain.RiskDriver, n int) []domain.RiskDriver {
	sorted := make([]domain.RiskDriver, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Contribution > sorted[j].Contribution
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Explain formats a result into a single readable line.
func Explain(res domain.ScoreResult) string {
	if len(res.Drivers) == 0 {
		return fmt.Sprintf("Risk Score: %d (%s). No risk drivers triggered.", res.Score, res.Band)
	}

	parts := make([]string, len(res.Drivers))
	for i, d := range res.Drivers {
		parts[i] = fmt.Sprintf("%s (+%g)", d.Label, d.Contribution)
	}
	return fmt.Sprintf("Risk Score: %d (%s). Drivers: %s.", res.Score, res.Band, strings.Join(parts, "; "))
}

// ─── Rule catalogue ───────────────────────────────────────────────────────────

// RuleInfo describes a rule without evaluating it.
type RuleInfo struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Weight float64 `json:"weight"`
}

// Rules lists every rule in evaluation order. Keys repeat where two rules
// are mutually exclusive variants of one signal.
func Rules() []RuleInfo {
	out := make([]RuleInfo, len(rules))
	for i, r := range rules {
		out[i] = RuleInfo{Key: r.key, Label: r.label, Weight: r.weight}
	}
	return out
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

// levelWeight maps a qualitative level to points. Unknown levels score 0.
func levelWeight(level domain.RiskLevel, medium, high float64) float64 {
	switch level {
	case domain.RiskHigh:
		return high
	case domain.RiskMedium:
		return medium
	}
	return 0
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
