// Package render turns scoring results into human-readable text for the CLI
// and for log-friendly summaries. It contains no scoring logic.
package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"lumina/risk-api/internal/domain"
)

// Options controls locale-dependent formatting.
type Options struct {
	Locale   language.Tag
	Currency currency.Unit
}

// DefaultOptions formats amounts as US dollars with en-US grouping.
func DefaultOptions() Options {
	return Options{Locale: language.AmericanEnglish, Currency: currency.USD}
}

// BandLabel returns the display name of a band.
func BandLabel(band domain.RiskLevel) string {
	switch band {
	case domain.RiskHigh:
		return "High risk"
	case domain.RiskMedium:
		return "Medium risk"
	case domain.RiskLow:
		return "Low risk"
	}
	return "Unknown"
}

// Amount formats v in the configured currency, e.g. "USD 12,500.00".
func Amount(opts Options, v float64) string {
	p := message.NewPrinter(opts.Locale)
	return p.Sprint(opts.Currency.Amount(v))
}

// Text writes a report of the profile's key inputs and its result.
func Text(w io.Writer, opts Options, p domain.RiskProfile, res domain.ScoreResult) error {
	pr := message.NewPrinter(opts.Locale)

	var b strings.Builder
	fmt.Fprintf(&b, "Risk score: %d/100 (%s)\n", res.Score, BandLabel(res.Band))
	pr.Fprintf(&b, "Amount:     %s, %d transactions in 24h\n", Amount(opts, p.Amount), p.Velocity24h)

	if len(res.Drivers) == 0 {
		b.WriteString("Drivers:    none\n")
	} else {
		b.WriteString("Drivers:\n")
		for i, d := range res.Drivers {
			fmt.Fprintf(&b, "  %d. %-28s +%g/%g\n", i+1, d.Label, d.Contribution, d.Weight)
			fmt.Fprintf(&b, "     %s\n", d.Explanation)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
