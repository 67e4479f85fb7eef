package analysis

import (
	"math"

	"rental-analysis-engine/internal/models"
)

// Calculate produces the full set of investment metrics for a property,
// including the embedded five-year projection. It never fails for finite
// numeric input: degenerate denominators resolve to zero and the all-cash
// DSCR resolves to the positive-infinity sentinel. Range validation is the
// caller's job.
func Calculate(input models.PropertyInput) models.CalculationResult {
	effectiveIncome := input.EffectiveMonthlyIncome()
	operatingExpenses := input.MonthlyOperatingExpenses()
	totalCashNeeded := input.TotalCashNeeded()

	var mortgagePayment float64
	if !input.IsCashPurchase {
		mortgagePayment = MonthlyPayment(input.LoanAmount(), input.InterestRate, input.LoanTermYears)
	}

	monthlyCashFlow := effectiveIncome - operatingExpenses - mortgagePayment
	annualCashFlow := monthlyCashFlow * 12

	// NOI excludes debt service by definition.
	annualNOI := (effectiveIncome - operatingExpenses) * 12

	var cashOnCash float64
	if totalCashNeeded > 0 {
		cashOnCash = annualCashFlow / totalCashNeeded * 100
	}

	var capRate float64
	if input.PurchasePrice > 0 {
		capRate = annualNOI / input.PurchasePrice * 100
	}

	var grossRentMultiplier float64
	if annualGross := input.GrossMonthlyIncome() * 12; annualGross > 0 {
		grossRentMultiplier = input.PurchasePrice / annualGross
	}

	dscr := debtServiceCoverage(input, annualNOI, mortgagePayment)

	var expenseRatio float64
	if gross := input.GrossMonthlyIncome(); gross > 0 {
		expenseRatio = operatingExpenses / gross * 100
	}

	var breakEvenRent float64
	if input.VacancyRatePercent < 100 {
		breakEvenRent = (operatingExpenses + mortgagePayment) / (1 - input.VacancyRatePercent/100)
	}

	doors := input.DoorCount
	if doors < 1 {
		doors = 1
	}

	return models.CalculationResult{
		MonthlyMortgagePayment:   mortgagePayment,
		MonthlyCashFlow:          monthlyCashFlow,
		AnnualCashFlow:           annualCashFlow,
		CashFlowPerDoor:          monthlyCashFlow / float64(doors),
		NetOperatingIncome:       annualNOI,
		CashOnCashReturn:         cashOnCash,
		CapRate:                  capRate,
		GrossRentMultiplier:      grossRentMultiplier,
		DebtServiceCoverageRatio: dscr,
		ExpenseRatio:             expenseRatio,
		BreakEvenRent:            breakEvenRent,
		TotalCashNeeded:          totalCashNeeded,
		FiveYearProjection:       Project(input, mortgagePayment),
	}
}

// debtServiceCoverage computes NOI over annual debt service. An explicit cash
// purchase has no income risk from debt and yields the infinity sentinel. A
// financed deal whose debt service still computes to zero (e.g. a 0% rate)
// falls back to 0; callers treat that as degenerate rather than risk-free.
func debtServiceCoverage(input models.PropertyInput, annualNOI, mortgagePayment float64) models.Ratio {
	annualDebtService := mortgagePayment * 12
	if annualDebtService > 0 {
		return models.Ratio(annualNOI / annualDebtService)
	}
	if input.IsCashPurchase {
		return models.Ratio(math.Inf(1))
	}
	return 0
}
