package analysis

import "rental-analysis-engine/internal/models"

// DealScore grades a computed result on a 0-100 scale.
type DealScore struct {
	Score float64 `json:"score"`
	Grade string  `json:"grade"`

	CashFlowComponent float64 `json:"cash_flow_component"`
	CoCComponent      float64 `json:"coc_component"`
	CapRateComponent  float64 `json:"cap_rate_component"`
	DSCRComponent     float64 `json:"dscr_component"`
}

// ScoreDeal computes a weighted 0-100 score over the headline metrics.
//
// Weights: cash flow per door 30 (full marks at $300/door), cash-on-cash 30
// (full at 12%), cap rate 20 (full at 8%), DSCR 20 (full at 1.5; a cash
// purchase has no debt risk and takes full marks). Each component is clamped
// to its weight before summing.
func ScoreDeal(input models.PropertyInput, result models.CalculationResult) DealScore {
	score := DealScore{}

	// Cash flow component (30 points)
	cfComponent := result.CashFlowPerDoor / 300 * 30
	score.CashFlowComponent = clamp(cfComponent, 0, 30)

	// Cash-on-cash component (30 points)
	cocComponent := result.CashOnCashReturn / 12 * 30
	score.CoCComponent = clamp(cocComponent, 0, 30)

	// Cap rate component (20 points)
	capComponent := result.CapRate / 8 * 20
	score.CapRateComponent = clamp(capComponent, 0, 20)

	// DSCR component (20 points)
	if result.DebtServiceCoverageRatio.IsInfinite() {
		score.DSCRComponent = 20
	} else {
		dscrComponent := float64(result.DebtServiceCoverageRatio) / 1.5 * 20
		score.DSCRComponent = clamp(dscrComponent, 0, 20)
	}

	score.Score = score.CashFlowComponent + score.CoCComponent + score.CapRateComponent + score.DSCRComponent
	score.Grade = gradeFor(score.Score)

	return score
}

func gradeFor(score float64) string {
	switch {
	case score >= 80:
		return "A"
	case score >= 65:
		return "B"
	case score >= 50:
		return "C"
	case score >= 35:
		return "D"
	default:
		return "F"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
