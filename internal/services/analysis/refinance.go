package analysis

import "math"

// RefinanceInput describes swapping an existing loan for a new one.
type RefinanceInput struct {
	CurrentBalance        float64 `json:"current_balance"`
	CurrentMonthlyPayment float64 `json:"current_monthly_payment"`
	CurrentRate           float64 `json:"current_rate"`
	RemainingTermYears    int     `json:"remaining_term_years"`

	NewRate      float64 `json:"new_rate"`
	NewTermYears int     `json:"new_term_years"`
	ClosingCosts float64 `json:"closing_costs"`
}

// RefinanceResult summarizes the payment change and when the closing costs
// pay for themselves.
type RefinanceResult struct {
	NewMonthlyPayment     float64 `json:"new_monthly_payment"`
	MonthlySavings        float64 `json:"monthly_savings"`
	BreakEvenMonths       float64 `json:"break_even_months"`
	RemainingInterestOld  float64 `json:"remaining_interest_old"`
	TotalInterestNew      float64 `json:"total_interest_new"`
	LifetimeInterestDelta float64 `json:"lifetime_interest_delta"`
}

// AnalyzeRefinance compares the current loan against a replacement. A
// refinance that does not lower the payment has no break-even point; the
// break-even months resolve to 0 in that case.
func AnalyzeRefinance(input RefinanceInput) RefinanceResult {
	newPayment := MonthlyPayment(input.CurrentBalance, input.NewRate, input.NewTermYears)
	savings := input.CurrentMonthlyPayment - newPayment

	var breakEven float64
	if savings > 0 && input.ClosingCosts > 0 {
		breakEven = math.Ceil(input.ClosingCosts / savings)
	}

	remainingInterestOld := input.CurrentMonthlyPayment*float64(input.RemainingTermYears*12) - input.CurrentBalance
	if remainingInterestOld < 0 {
		remainingInterestOld = 0
	}

	totalInterestNew := newPayment*float64(input.NewTermYears*12) - input.CurrentBalance
	if totalInterestNew < 0 {
		totalInterestNew = 0
	}

	return RefinanceResult{
		NewMonthlyPayment:     newPayment,
		MonthlySavings:        savings,
		BreakEvenMonths:       breakEven,
		RemainingInterestOld:  remainingInterestOld,
		TotalInterestNew:      totalInterestNew,
		LifetimeInterestDelta: totalInterestNew - remainingInterestOld,
	}
}
