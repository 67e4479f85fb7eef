package analysis

import "rental-analysis-engine/internal/models"

// Residential rental property depreciates over 27.5 years on the building
// value only; land does not depreciate.
const (
	depreciationYears       = 27.5
	defaultLandValuePercent = 20.0
)

// TaxBenefitEstimate is a simplified view of the annual deductions a rental
// generates. These are estimates for comparison between deals, not tax
// advice; depreciation recapture, passive-loss limits, and local rules are
// out of scope.
type TaxBenefitEstimate struct {
	AnnualDepreciation    float64 `json:"annual_depreciation"`
	FirstYearInterest     float64 `json:"first_year_interest"`
	DeductibleExpenses    float64 `json:"deductible_expenses"`
	TotalDeductions       float64 `json:"total_deductions"`
	EstimatedAnnualSaving float64 `json:"estimated_annual_saving"`
}

// EstimateTaxBenefits computes simplified annual deductions: straight-line
// depreciation on the building share of the price, first-year mortgage
// interest from the amortization schedule, and operating expenses. The
// saving applies the caller's marginal tax rate. A non-positive land share
// falls back to the 20% default.
func EstimateTaxBenefits(input models.PropertyInput, marginalRatePercent, landValuePercent float64) TaxBenefitEstimate {
	if landValuePercent <= 0 || landValuePercent >= 100 {
		landValuePercent = defaultLandValuePercent
	}

	buildingValue := input.PurchasePrice * (1 - landValuePercent/100)
	depreciation := buildingValue / depreciationYears

	var firstYearInterest float64
	if schedule := GenerateSchedule(input); len(schedule) > 0 {
		firstYearInterest = schedule[0].InterestPaidThisYear
	}

	deductibleExpenses := input.MonthlyOperatingExpenses() * 12

	total := depreciation + firstYearInterest + deductibleExpenses

	var saving float64
	if marginalRatePercent > 0 {
		saving = total * marginalRatePercent / 100
	}

	return TaxBenefitEstimate{
		AnnualDepreciation:    depreciation,
		FirstYearInterest:     firstYearInterest,
		DeductibleExpenses:    deductibleExpenses,
		TotalDeductions:       total,
		EstimatedAnnualSaving: saving,
	}
}
