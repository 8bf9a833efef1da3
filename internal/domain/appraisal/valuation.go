package appraisal

import (
	"fmt"
	"math"

	"github.com/tradecheck/tradecheck/internal/domain"
)

const insufficientComps = "Insufficient market comps to estimate trade-in value."

// Valuation is the trade-in outcome derived from market values and findings.
type Valuation struct {
	ReconCost          float64       `json:"recon_cost"`
	TradeIn            domain.Amount `json:"trade_in"`
	MarketValueRange   string        `json:"market_value_range"`
	TradeInValue       string        `json:"trade_in_value"`
	TradeInDescription string        `json:"trade_in_description"`
}

// ReconCost sums recon weight × severity. Issue keys missing from the partial
// recon table cost nothing.
func ReconCost(p *domain.AssessmentProfile, findings []domain.Finding) float64 {
	var total float64
	for _, f := range findings {
		total += p.Recon(f.IssueKey) * float64(f.Severity)
	}
	return total
}

// SynthesizeValuation prices the trade-in at mid-market less the dealer margin
// and reconditioning, floored at zero. Mileage is already reflected in mv.
func SynthesizeValuation(p *domain.AssessmentProfile, mv domain.MarketValues, findings []domain.Finding, _ int) Valuation {
	recon := ReconCost(p, findings)

	v := Valuation{
		ReconCost:          recon,
		TradeIn:            domain.Unknown(),
		MarketValueRange:   domain.NotAvailable,
		TradeInDescription: insufficientComps,
	}

	if mv.P25.IsKnown() && mv.P75.IsKnown() {
		v.MarketValueRange = FormatUSD(mv.P25) + " - " + FormatUSD(mv.P75)
	}

	if mid, ok := mv.P50.Value(); ok {
		v.TradeIn = domain.Known(math.Max(0, mid*(1-p.DealerMargin)-recon))
	}
	// The sentence needs both a finite mid-market and a finite trade-in.
	if mid, ok := mv.P50.Value(); ok && v.TradeIn.IsKnown() {
		v.TradeInDescription = fmt.Sprintf(
			"Estimated trade-in assumes ~%s dealer margin from mid-market (%s) and ~$%s reconditioning based on visible issues.",
			marginPercent(p.DealerMargin), NumberToUSD(mid), groupThousands(recon),
		)
	}

	v.TradeInValue = FormatUSD(v.TradeIn)
	return v
}

func marginPercent(m float64) string {
	return fmt.Sprintf("%d%%", int(roundHalfUp(m*100)))
}
