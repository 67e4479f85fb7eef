package analysis

import (
	"math"

	"rental-analysis-engine/internal/models"
)

// ProjectionYears is the fixed forward-projection horizon.
const ProjectionYears = 5

// Project simulates ProjectionYears of ownership: compounding rent growth and
// appreciation, month-by-month loan amortization, and cumulative cash flow.
// Rent is assumed to grow at the appreciation rate; see ProjectWithRentGrowth
// for the decoupled form.
func Project(input models.PropertyInput, monthlyMortgagePayment float64) models.ProjectionResult {
	return ProjectWithRentGrowth(input, monthlyMortgagePayment, input.AppreciationRatePercent)
}

// ProjectWithRentGrowth is Project with an independent annual rent growth
// rate. The engine's own modeling assumption couples rent growth to
// appreciation, but the parameter keeps the two separable without an
// interface change.
//
// Per-year mechanics: the management fee is recomputed from the grown rent,
// while tax, insurance, HOA, reserves, utilities, and other expenses stay at
// their year-0 values. Equity buildup uses an explicit monthly amortization
// loop because intermediate balances feed the yearly figures.
func ProjectWithRentGrowth(input models.PropertyInput, monthlyMortgagePayment, rentGrowthRatePercent float64) models.ProjectionResult {
	appreciation := input.AppreciationRatePercent / 100
	rentGrowth := rentGrowthRatePercent / 100
	monthlyRate := input.InterestRate / 100 / 12

	// Year-0 expense components that do not track rent growth.
	fixedExpenses := input.AnnualPropertyTax/12 +
		input.MonthlyInsurance +
		input.MonthlyHOA +
		input.PurchasePrice*(input.MaintenancePercent/100)/12 +
		input.PurchasePrice*(input.CapExPercent/100)/12 +
		input.MonthlyUtilities +
		input.OtherMonthlyExpenses

	propertyValue := input.PurchasePrice
	loanBalance := input.LoanAmount()

	var totalCashFlow, totalEquity float64

	for year := 1; year <= ProjectionYears; year++ {
		growthFactor := math.Pow(1+rentGrowth, float64(year-1))
		adjustedRent := input.MonthlyRent * growthFactor
		adjustedGross := adjustedRent + input.OtherMonthlyIncome
		adjustedEffective := adjustedGross * (1 - input.VacancyRatePercent/100)

		managementFee := adjustedRent * (input.PropertyManagementPercent / 100)
		adjustedExpenses := fixedExpenses + managementFee

		totalCashFlow += (adjustedEffective - adjustedExpenses - monthlyMortgagePayment) * 12

		if !input.IsCashPurchase && loanBalance > 0 {
			for month := 0; month < 12 && loanBalance > 0; month++ {
				interest := loanBalance * monthlyRate
				principal := monthlyMortgagePayment - interest
				loanBalance -= principal
				totalEquity += principal
			}
		}

		propertyValue *= 1 + appreciation
	}

	totalAppreciation := propertyValue - input.PurchasePrice
	totalReturn := totalCashFlow + totalEquity + totalAppreciation

	var roi float64
	if cashNeeded := input.TotalCashNeeded(); cashNeeded > 0 {
		roi = totalReturn / cashNeeded * 100
	}

	return models.ProjectionResult{
		TotalCashFlow:          totalCashFlow,
		TotalEquityBuildup:     totalEquity,
		TotalAppreciation:      totalAppreciation,
		ProjectedPropertyValue: propertyValue,
		RemainingLoanBalance:   math.Max(0, loanBalance),
		TotalReturn:            totalReturn,
		ReturnOnInvestment:     roi,
	}
}
