package analysis

import (
	"math"

	"rental-analysis-engine/internal/models"
)

// BRRRRInput holds the parameters of a buy-rehab-rent-refinance deal. The
// acquisition is assumed to be cash (or equivalent short-term money); the
// permanent loan arrives at refinance against the after-repair value.
type BRRRRInput struct {
	PurchasePrice        float64 `json:"purchase_price"`
	RehabCost            float64 `json:"rehab_cost"`
	PurchaseClosingCosts float64 `json:"purchase_closing_costs"`
	AfterRepairValue     float64 `json:"after_repair_value"`

	RefinanceLTVPercent float64 `json:"refinance_ltv_percent"`
	RefinanceRate       float64 `json:"refinance_rate"`
	RefinanceTermYears  int     `json:"refinance_term_years"`

	MonthlyRent              float64 `json:"monthly_rent"`
	OtherMonthlyIncome       float64 `json:"other_monthly_income"`
	VacancyRatePercent       float64 `json:"vacancy_rate_percent"`
	MonthlyOperatingExpenses float64 `json:"monthly_operating_expenses"`
}

// BRRRRResult summarizes the deal after the refinance step.
type BRRRRResult struct {
	TotalInvested        float64      `json:"total_invested"`
	RefinanceLoanAmount  float64      `json:"refinance_loan_amount"`
	CashRecovered        float64      `json:"cash_recovered"`
	CashLeftInDeal       float64      `json:"cash_left_in_deal"`
	EquityAfterRefinance float64      `json:"equity_after_refinance"`
	NewMonthlyPayment    float64      `json:"new_monthly_payment"`
	MonthlyCashFlow      float64      `json:"monthly_cash_flow"`
	CashOnCashReturn     models.Ratio `json:"cash_on_cash_return"`
}

// AnalyzeBRRRR evaluates a buy-rehab-rent-refinance deal. When the refinance
// pulls out every invested dollar, cash-on-cash has a zero denominator and
// resolves to the infinite-return sentinel.
func AnalyzeBRRRR(input BRRRRInput) BRRRRResult {
	totalInvested := input.PurchasePrice + input.RehabCost + input.PurchaseClosingCosts

	loanAmount := input.AfterRepairValue * (input.RefinanceLTVPercent / 100)

	cashRecovered := math.Min(loanAmount, totalInvested)
	cashLeft := totalInvested - loanAmount
	if cashLeft < 0 {
		cashLeft = 0
	}

	payment := MonthlyPayment(loanAmount, input.RefinanceRate, input.RefinanceTermYears)

	effectiveIncome := (input.MonthlyRent + input.OtherMonthlyIncome) * (1 - input.VacancyRatePercent/100)
	monthlyCashFlow := effectiveIncome - input.MonthlyOperatingExpenses - payment

	var coc models.Ratio
	if cashLeft > 0 {
		coc = models.Ratio(monthlyCashFlow * 12 / cashLeft * 100)
	} else {
		coc = models.Ratio(math.Inf(1))
	}

	return BRRRRResult{
		TotalInvested:        totalInvested,
		RefinanceLoanAmount:  loanAmount,
		CashRecovered:        cashRecovered,
		CashLeftInDeal:       cashLeft,
		EquityAfterRefinance: input.AfterRepairValue - loanAmount,
		NewMonthlyPayment:    payment,
		MonthlyCashFlow:      monthlyCashFlow,
		CashOnCashReturn:     coc,
	}
}
