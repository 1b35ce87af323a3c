package scoring

import "lumina/risk-api/internal/domain"

// Transaction thresholds shared by the amount and income-mismatch rules.
const (
	amountElevated = 5000
	amountLarge    = 10000

	velocityElevated = 5
	velocityBurst    = 10

	ageYoungBelow  = 21
	ageSeniorAbove = 70
)

// rule is one row of the scoring table. contribution returns the points to
// award; a rule triggers when its contribution is positive.
type rule struct {
	key          string
	label        string
	weight       float64
	explanation  string
	contribution func(p *domain.RiskProfile) float64
}

func (r rule) eval(p *domain.RiskProfile) (domain.RiskDriver, bool) {
	c := r.contribution(p)
	if c <= 0 {
		return domain.RiskDriver{}, false
	}
	return domain.RiskDriver{
		Key:          r.key,
		Label:        r.label,
		Weight:       r.weight,
		Contribution: c,
		Explanation:  r.explanation,
	}, true
}

// flat awards the full weight when cond holds.
func flat(weight float64, cond func(p *domain.RiskProfile) bool) func(p *domain.RiskProfile) float64 {
	return func(p *domain.RiskProfile) float64 {
		if cond(p) {
			return weight
		}
		return 0
	}
}

// rules is evaluated top to bottom.
var rules = []rule{
	{
		key:          "pep",
		label:        "PEP flag",
		weight:       20,
		explanation:  "Politically exposed persons require enhanced due diligence.",
		contribution: flat(20, func(p *domain.RiskProfile) bool { return p.PEP }),
	},
	{
		key:          "sanctions",
		label:        "Potential sanctions match",
		weight:       40,
		explanation:  "Potential sanctions matches dramatically elevate risk.",
		contribution: flat(40, func(p *domain.RiskProfile) bool { return p.SanctionsMatch }),
	},
	{
		key:         "country",
		label:       "Country risk",
		weight:      15,
		explanation: "Higher jurisdictional risk increases monitoring intensity.",
		contribution: func(p *domain.RiskProfile) float64 {
			return levelWeight(p.CountryRisk, 8, 15)
		},
	},
	{
		key:         "occupation",
		label:       "Occupation risk",
		weight:      8,
		explanation: "Certain industries have higher exposure to AML risk.",
		contribution: func(p *domain.RiskProfile) float64 {
			return levelWeight(p.OccupationRisk, 4, 8)
		},
	},
	{
		key:         "onboarding-online",
		label:       "Online onboarding",
		weight:      4,
		explanation: "Remote onboarding can reduce identity assurance.",
		contribution: flat(4, func(p *domain.RiskProfile) bool {
			return p.OnboardingChannel == domain.ChannelOnline
		}),
	},
	{
		key:         "onboarding-third-party",
		label:       "Third-party onboarding",
		weight:      6,
		explanation: "Third-party introductions can obscure source verification.",
		contribution: flat(6, func(p *domain.RiskProfile) bool {
			return p.OnboardingChannel == domain.ChannelThirdParty
		}),
	},
	{
		key:         "amount",
		label:       "High transaction amount",
		weight:      12,
		explanation: "Larger transfers demand more scrutiny for source of funds.",
		contribution: func(p *domain.RiskProfile) float64 {
			switch {
			case p.Amount >= amountLarge:
				return 12
			case p.Amount >= amountElevated:
				return 6
			}
			return 0
		},
	},
	{
		key:         "velocity",
		label:       "High transaction velocity",
		weight:      10,
		explanation: "Rapid transaction bursts can signal layering behavior.",
		contribution: func(p *domain.RiskProfile) float64 {
			switch {
			case p.Velocity24h >= velocityBurst:
				return 10
			case p.Velocity24h >= velocityElevated:
				return 5
			}
			return 0
		},
	},
	{
		key:          "cross-border",
		label:        "Cross-border activity",
		weight:       8,
		explanation:  "Cross-border flows elevate jurisdictional complexity.",
		contribution: flat(8, func(p *domain.RiskProfile) bool { return p.CrossBorder }),
	},
	{
		key:         "cash",
		label:       "Cash intensity",
		weight:      10,
		explanation: "Cash-heavy activity is harder to trace and verify.",
		contribution: func(p *domain.RiskProfile) float64 {
			return levelWeight(p.CashIntensity, 5, 10)
		},
	},
	{
		key:         "counterparty",
		label:       "Counterparty risk",
		weight:      10,
		explanation: "Riskier counterparties increase the exposure surface.",
		contribution: func(p *domain.RiskProfile) float64 {
			return levelWeight(p.CounterpartyRisk, 5, 10)
		},
	},
	// The two income-mismatch rows share a key; their income bands are
	// disjoint so at most one fires.
	{
		key:         "income-mismatch",
		label:       "Income mismatch",
		weight:      8,
		explanation: "Transaction size appears inconsistent with stated income.",
		contribution: flat(8, func(p *domain.RiskProfile) bool {
			return p.IncomeBand == domain.IncomeLow && p.Amount >= amountElevated
		}),
	},
	{
		key:         "income-mismatch",
		label:       "Income mismatch",
		weight:      6,
		explanation: "Transaction size may be high relative to income band.",
		contribution: flat(6, func(p *domain.RiskProfile) bool {
			return p.IncomeBand == domain.IncomeMiddle && p.Amount >= amountLarge
		}),
	},
	{
		key:          "age-young",
		label:        "Young customer",
		weight:       4,
		explanation:  "Young customers can have limited financial history.",
		contribution: flat(4, func(p *domain.RiskProfile) bool { return p.Age < ageYoungBelow }),
	},
	{
		key:          "age-senior",
		label:        "Senior customer",
		weight:       3,
		explanation:  "Senior customers can be more vulnerable to misuse.",
		contribution: flat(3, func(p *domain.RiskProfile) bool { return p.Age > ageSeniorAbove }),
	},
}
