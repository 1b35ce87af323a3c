// Package synthetic produces pseudo-random risk profiles for demos and tests.
//
// Profiles are fully determined by a 32-bit seed, so a seed shown in the UI
// or API response can be replayed to reproduce the exact same profile.
package synthetic

import (
	"math"

	"lumina/risk-api/internal/domain"
)

var (
	riskLevels  = []domain.RiskLevel{domain.RiskLow, domain.RiskMedium, domain.RiskHigh}
	incomeBands = []domain.IncomeBand{domain.IncomeLow, domain.IncomeMiddle, domain.IncomeHigh}
	channels    = []domain.OnboardingChannel{domain.ChannelInPerson, domain.ChannelOnline, domain.ChannelThirdParty}
)

// Per-band base transaction amount; a uniform spread of up to amountSpread
// is added on top.
var baseAmount = map[domain.IncomeBand]float64{
	domain.IncomeLow:    800,
	domain.IncomeMiddle: 2500,
	domain.IncomeHigh:   6000,
}

const (
	amountSpread = 12000
	ageMin       = 18
	ageSpan      = 60
	maxVelocity  = 12

	pepRate         = 0.07
	sanctionsRate   = 0.02
	crossBorderRate = 0.35
)

// Generate returns the profile for seed. Field draws happen in a fixed order;
// changing the order changes every generated profile.
func Generate(seed uint32) domain.RiskProfile {
	rng := newMulberry32(seed)

	income := pick(rng, incomeBands)

	return domain.RiskProfile{
		Age:               ageMin + int(math.Floor(rng.next()*ageSpan)),
		CountryRisk:       pick(rng, riskLevels),
		PEP:               chance(rng, pepRate),
		SanctionsMatch:    chance(rng, sanctionsRate),
		IncomeBand:        income,
		OccupationRisk:    pick(rng, riskLevels),
		OnboardingChannel: pick(rng, channels),
		Amount:            math.Floor(baseAmount[income] + rng.next()*amountSpread + 0.5),
		Velocity24h:       int(math.Floor(rng.next() * maxVelocity)),
		CrossBorder:       chance(rng, crossBorderRate),
		CashIntensity:     pick(rng, riskLevels),
		CounterpartyRisk:  pick(rng, riskLevels),
	}
}

// Batch returns n profiles generated from seeds seed, seed+1, ….
func Batch(seed uint32, n int) []domain.RiskProfile {
	out := make([]domain.RiskProfile, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Generate(seed+uint32(i)))
	}
	return out
}

// ─── PRNG ─────────────────────────────────────────────────────────────────────

// mulberry32 is a small 32-bit generator with a good enough distribution for
// demo data. It is not safe for concurrent use.
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed uint32) *mulberry32 {
	return &mulberry32{state: seed}
}

// next returns a float in [0, 1).
func (m *mulberry32) next() float64 {
	m.state += 0x6d2b79f5
	t := m.state
	r := (t ^ (t >> 15)) * (1 | t)
	r ^= r + (r^(r>>7))*(61|r)
	return float64(r^(r>>14)) / 4294967296
}

func pick[T any](rng *mulberry32, items []T) T {
	i := int(math.Floor(rng.next() * float64(len(items))))
	if i >= len(items) {
		i = 0
	}
	return items[i]
}

func chance(rng *mulberry32, p float64) bool {
	return rng.next() < p
}
