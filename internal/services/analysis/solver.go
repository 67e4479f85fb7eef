package analysis

import "math"

// CoC iteration tuning. The shrink/grow steps are deliberately asymmetric and
// the loop is capped, so the result is a terminating heuristic rather than a
// guaranteed root-find. Downstream consumers compare the three price methods
// by exact equality, so the canonical answers must stay stable.
const (
	cocMaxIterations    = 20
	cocTolerancePercent = 0.1
	cocShrinkFactor     = 0.95
	cocGrowFactor       = 1.02
	cocSeedRentMultiple = 10 // seed price at 10x annual gross rent
)

// OfferAssumptions carries the rent, expense, and financing profile used to
// reverse-solve a purchase price. Operating expenses are a flat monthly
// figure here: price-dependent reserves cannot feed a solver whose unknown is
// the price itself.
type OfferAssumptions struct {
	MonthlyRent              float64 `json:"monthly_rent"`
	OtherMonthlyIncome       float64 `json:"other_monthly_income"`
	VacancyRatePercent       float64 `json:"vacancy_rate_percent"`
	MonthlyOperatingExpenses float64 `json:"monthly_operating_expenses"`
	DownPaymentPercent       float64 `json:"down_payment_percent"`
	InterestRate             float64 `json:"interest_rate"`
	LoanTermYears            int     `json:"loan_term_years"`
	ClosingCostPercent       float64 `json:"closing_cost_percent"`
}

// OfferTarget holds the desired returns to solve for.
type OfferTarget struct {
	MonthlyCashFlow   float64 `json:"monthly_cash_flow"`
	CashOnCashPercent float64 `json:"cash_on_cash_percent"`
	CapRatePercent    float64 `json:"cap_rate_percent"`
}

// OfferResult holds the three independent maximum-price estimates and the
// conservative suggestion (the minimum of the three).
type OfferResult struct {
	MaxPriceByCashFlow   float64 `json:"max_price_by_cash_flow"`
	MaxPriceByCapRate    float64 `json:"max_price_by_cap_rate"`
	MaxPriceByCashOnCash float64 `json:"max_price_by_cash_on_cash"`
	SuggestedMaxPrice    float64 `json:"suggested_max_price"`
}

func (a OfferAssumptions) effectiveMonthlyIncome() float64 {
	return (a.MonthlyRent + a.OtherMonthlyIncome) * (1 - a.VacancyRatePercent/100)
}

func (a OfferAssumptions) annualNOI() float64 {
	return (a.effectiveMonthlyIncome() - a.MonthlyOperatingExpenses) * 12
}

// SuggestOffer computes the maximum purchase price implied by each target and
// returns the minimum as the suggested offer. A zero estimate means the
// target is unreachable at this rent and expense level.
func SuggestOffer(assumptions OfferAssumptions, target OfferTarget) OfferResult {
	byCashFlow := MaxPriceByCashFlow(assumptions, target.MonthlyCashFlow)
	byCapRate := MaxPriceByCapRate(assumptions, target.CapRatePercent)
	byCoC := MaxPriceByCashOnCash(assumptions, target.CashOnCashPercent)

	suggested := math.Min(byCashFlow, math.Min(byCapRate, byCoC))

	return OfferResult{
		MaxPriceByCashFlow:   byCashFlow,
		MaxPriceByCapRate:    byCapRate,
		MaxPriceByCashOnCash: byCoC,
		SuggestedMaxPrice:    suggested,
	}
}

// MaxPriceByCashFlow solves the annuity formula backward: the debt service the
// deal can afford while still clearing the target cash flow implies a loan
// amount, and the down-payment split turns that into a price. Returns 0 when
// the target is unreachable (implied debt service is non-positive).
func MaxPriceByCashFlow(a OfferAssumptions, targetMonthlyCashFlow float64) float64 {
	annualDebtService := a.annualNOI() - targetMonthlyCashFlow*12
	if annualDebtService <= 0 {
		return 0
	}

	if a.InterestRate <= 0 || a.LoanTermYears <= 0 || a.DownPaymentPercent >= 100 {
		return 0
	}

	// Invert P = L*c*(1+c)^n / ((1+c)^n - 1) for L.
	c := a.InterestRate / 100 / 12
	n := float64(a.LoanTermYears * 12)
	factor := math.Pow(1+c, n)

	monthlyDebtService := annualDebtService / 12
	loanAmount := monthlyDebtService * (factor - 1) / (c * factor)

	return loanAmount / (1 - a.DownPaymentPercent/100)
}

// MaxPriceByCapRate is the closed-form price at which NOI yields the target
// cap rate.
func MaxPriceByCapRate(a OfferAssumptions, targetCapRatePercent float64) float64 {
	noi := a.annualNOI()
	if targetCapRatePercent <= 0 || noi <= 0 {
		return 0
	}
	return noi / (targetCapRatePercent / 100)
}

// MaxPriceByCashOnCash iterates toward the price whose cash-on-cash return
// matches the target. CoC is not linear in price once debt service is
// reintroduced, so there is no closed form; the loop shrinks the trial price
// 5% when returns fall short and grows it 2% when they overshoot, stopping at
// the tolerance or the iteration cap. It always terminates with the last
// trial price.
func MaxPriceByCashOnCash(a OfferAssumptions, targetCoCPercent float64) float64 {
	if targetCoCPercent <= 0 {
		return 0
	}

	annualGross := (a.MonthlyRent + a.OtherMonthlyIncome) * 12
	price := annualGross * cocSeedRentMultiple
	if price <= 0 {
		return 0
	}

	noi := a.annualNOI()

	for i := 0; i < cocMaxIterations; i++ {
		coc := cashOnCashAtPrice(a, noi, price)
		if math.Abs(coc-targetCoCPercent) < cocTolerancePercent {
			break
		}
		if coc < targetCoCPercent {
			price *= cocShrinkFactor
		} else {
			price *= cocGrowFactor
		}
	}

	return price
}

func cashOnCashAtPrice(a OfferAssumptions, annualNOI, price float64) float64 {
	loanAmount := price * (1 - a.DownPaymentPercent/100)
	payment := MonthlyPayment(loanAmount, a.InterestRate, a.LoanTermYears)

	cashNeeded := price*(a.DownPaymentPercent/100) + price*(a.ClosingCostPercent/100)
	if cashNeeded <= 0 {
		return 0
	}

	annualCashFlow := annualNOI - payment*12
	return annualCashFlow / cashNeeded * 100
}
