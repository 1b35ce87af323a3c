// Package domain contains all core types used across the application.
// Keeping domain types in one place makes the scoring rules easy to reason about.
package domain

import "time"

// ─── Enumerations ────────────────────────────────────────────────────────────

// RiskLevel is a qualitative low/medium/high rating. It doubles as the score
// band of a ScoreResult.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"    // 0-29
	RiskMedium RiskLevel = "medium" // 30-69
	RiskHigh   RiskLevel = "high"   // 70-100
)

// Valid reports whether l is one of the known levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// IncomeBand is the customer's declared income bracket.
type IncomeBand string

const (
	IncomeLow    IncomeBand = "low"
	IncomeMiddle IncomeBand = "middle"
	IncomeHigh   IncomeBand = "high"
)

// Valid reports whether b is one of the known income bands.
func (b IncomeBand) Valid() bool {
	switch b {
	case IncomeLow, IncomeMiddle, IncomeHigh:
		return true
	}
	return false
}

// OnboardingChannel is how the customer relationship was established.
type OnboardingChannel string

const (
	ChannelInPerson   OnboardingChannel = "in-person"
	ChannelOnline     OnboardingChannel = "online"
	ChannelThirdParty OnboardingChannel = "third-party"
)

// Valid reports whether c is one of the known channels.
func (c OnboardingChannel) Valid() bool {
	switch c {
	case ChannelInPerson, ChannelOnline, ChannelThirdParty:
		return true
	}
	return false
}

// ─── Scoring thresholds ───────────────────────────────────────────────────────

// Band boundaries; each is the inclusive lower bound of its band.
const (
	ThresholdMedium = 30
	ThresholdHigh   = 70
)

// MaxDrivers is the number of drivers surfaced on a ScoreResult.
const MaxDrivers = 5

// Documented age domain. The scorer does not enforce it; the API does.
const (
	MinAge = 18
	MaxAge = 90
)

// ─── Core domain types ────────────────────────────────────────────────────────

// RiskProfile is the full set of customer and transaction attributes the
// scorer reads. It is treated as immutable for the duration of a scoring call.
type RiskProfile struct {
	Age               int               `json:"age"`
	CountryRisk       RiskLevel         `json:"country_risk"`
	PEP               bool              `json:"pep"`
	SanctionsMatch    bool              `json:"sanctions_match"`
	IncomeBand        IncomeBand        `json:"income_band"`
	OccupationRisk    RiskLevel         `json:"occupation_risk"`
	OnboardingChannel OnboardingChannel `json:"onboarding_channel"`
	Amount            float64           `json:"amount"`       // currency units
	Velocity24h       int               `json:"velocity_24h"` // transactions in trailing 24h
	CrossBorder       bool              `json:"cross_border"`
	CashIntensity     RiskLevel         `json:"cash_intensity"`
	CounterpartyRisk  RiskLevel         `json:"counterparty_risk"`
}

// RiskDriver is a single triggered rule and the points it awarded.
type RiskDriver struct {
	Key          string  `json:"key"`          // stable machine-readable identifier
	Label        string  `json:"label"`        // display name
	Weight       float64 `json:"weight"`       // maximum the rule can award
	Contribution float64 `json:"contribution"` // points awarded, 0 <= contribution <= weight
	Explanation  string  `json:"explanation"`
}

// ScoreResult is the scorer's output.
type ScoreResult struct {
	Score   int          `json:"score"` // 0-100
	Band    RiskLevel    `json:"band"`
	Drivers []RiskDriver `json:"drivers"` // top drivers, at most MaxDrivers
}

// Assessment is a scored profile as recorded and returned by the API.
type Assessment struct {
	ID          string      `json:"id"`
	Profile     RiskProfile `json:"profile"`
	Result      ScoreResult `json:"result"`
	RawScore    float64     `json:"raw_score"`      // sum over every triggered driver, before clamping
	Seed        *uint32     `json:"seed,omitempty"` // set when the profile came from the generator
	Explanation string      `json:"explanation"`
	ScoredAt    time.Time   `json:"scored_at"`
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// WebhookConfig is a registered callback fired when an assessment score
// reaches the threshold.
type WebhookConfig struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Threshold int       `json:"threshold"` // fire when score >= this value
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// WebhookPayload is the body sent to registered webhook URLs.
type WebhookPayload struct {
	Event       string     `json:"event"` // always "high_risk_assessment"
	TriggeredAt time.Time  `json:"triggered_at"`
	Assessment  Assessment `json:"assessment"`
}

// ─── Reporting ────────────────────────────────────────────────────────────────

// BandReport summarises every assessment recorded since startup.
type BandReport struct {
	GeneratedAt      time.Time         `json:"generated_at"`
	TotalAssessments int               `json:"total_assessments"`
	LowCount         int               `json:"low_count"`
	MediumCount      int               `json:"medium_count"`
	HighCount        int               `json:"high_count"`
	AvgScore         float64           `json:"avg_score"`
	DriverCounts     []DriverFrequency `json:"driver_counts"`
}

// DriverFrequency counts how often a driver key appeared in surfaced drivers.
type DriverFrequency struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}
