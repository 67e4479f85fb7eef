package analysis

import (
	"fmt"

	"rental-analysis-engine/internal/models"
)

// Warning thresholds.
const (
	lowCoCThresholdPercent     = 5
	highExpenseRatioPercent    = 50
	lowRentPriceRatio          = 0.005 // half the "1% rule"
	lowCashFlowPerDoorDollars  = 200
	minAcceptableCoverageRatio = 1
)

// Warnings evaluates every warning rule against a computed result. Rules are
// independent predicates, evaluated in a fixed order; an empty slice is a
// valid outcome for a clean deal.
func Warnings(input models.PropertyInput, result models.CalculationResult) []models.DealWarning {
	var warnings []models.DealWarning

	if result.MonthlyCashFlow < 0 {
		warnings = append(warnings, models.DealWarning{
			Severity: models.SeverityCritical,
			Title:    "Negative Cash Flow",
			Message: fmt.Sprintf("This property loses $%.0f per month. The rent does not cover expenses and debt service.",
				-result.MonthlyCashFlow),
		})
	}

	// The message names an 8% target even though the trigger is 5%; the
	// framing is intentional and kept as-is.
	if result.CashOnCashReturn > 0 && result.CashOnCashReturn < lowCoCThresholdPercent {
		warnings = append(warnings, models.DealWarning{
			Severity: models.SeverityWarning,
			Title:    "Low Cash-on-Cash Return",
			Message: fmt.Sprintf("Cash-on-cash return is %.1f%%. Most investors target at least 8%% on invested cash.",
				result.CashOnCashReturn),
		})
	}

	if result.ExpenseRatio > highExpenseRatioPercent {
		warnings = append(warnings, models.DealWarning{
			Severity: models.SeverityWarning,
			Title:    "High Expense Ratio",
			Message: fmt.Sprintf("Operating expenses consume %.0f%% of gross income. Above 50%% leaves little margin for surprises.",
				result.ExpenseRatio),
		})
	}

	if input.MonthlyRent > 0 && input.MonthlyRent < input.PurchasePrice*lowRentPriceRatio {
		warnings = append(warnings, models.DealWarning{
			Severity: models.SeverityInfo,
			Title:    "Rent May Be Low",
			Message: fmt.Sprintf("Monthly rent is below 0.5%% of the purchase price ($%.0f). Check comparable rents in the area.",
				input.PurchasePrice*lowRentPriceRatio),
		})
	}

	if !input.IsCashPurchase && float64(result.DebtServiceCoverageRatio) < minAcceptableCoverageRatio {
		warnings = append(warnings, models.DealWarning{
			Severity: models.SeverityCritical,
			Title:    "DSCR Below 1.0",
			Message: fmt.Sprintf("Debt service coverage is %.2f. Net operating income does not cover the mortgage; most lenders require at least 1.2.",
				float64(result.DebtServiceCoverageRatio)),
		})
	}

	if result.CashFlowPerDoor > 0 && result.CashFlowPerDoor < lowCashFlowPerDoorDollars {
		warnings = append(warnings, models.DealWarning{
			Severity: models.SeverityInfo,
			Title:    "Low Cash Flow Per Door",
			Message: fmt.Sprintf("Cash flow is $%.0f per door per month. Many investors look for at least $200 per unit.",
				result.CashFlowPerDoor),
		})
	}

	return warnings
}
