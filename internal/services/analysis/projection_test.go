package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProject_ZeroAppreciation(t *testing.T) {
	input := canonicalProperty()
	input.AppreciationRatePercent = 0
	payment := MonthlyPayment(input.LoanAmount(), input.InterestRate, input.LoanTermYears)

	projection := Project(input, payment)

	assert.Zero(t, projection.TotalAppreciation, "No appreciation rate means no appreciation")
	assert.Equal(t, input.PurchasePrice, projection.ProjectedPropertyValue,
		"Property value stays at the purchase price")
}

func TestProject_AppreciationCompoundsAnnually(t *testing.T) {
	input := canonicalProperty()
	input.AppreciationRatePercent = 3

	projection := Project(input, 1398.43)

	expectedValue := input.PurchasePrice * math.Pow(1.03, 5)
	assert.InDelta(t, expectedValue, projection.ProjectedPropertyValue, 0.01,
		"Value compounds once per year over the 5-year horizon")
	assert.InDelta(t, expectedValue-input.PurchasePrice, projection.TotalAppreciation, 0.01)
}

func TestProject_EquityMatchesClosedFormBalance(t *testing.T) {
	input := canonicalProperty()
	payment := MonthlyPayment(input.LoanAmount(), input.InterestRate, input.LoanTermYears)

	projection := Project(input, payment)

	expectedBalance := RemainingBalance(input.LoanAmount(), input.InterestRate, input.LoanTermYears, 60)
	assert.InDelta(t, expectedBalance, projection.RemainingLoanBalance, 0.01,
		"Five years of monthly steps should land on the closed-form balance")
	assert.InDelta(t, input.LoanAmount()-expectedBalance, projection.TotalEquityBuildup, 0.01,
		"Equity buildup is the principal paid down")
}

func TestProject_CashPurchaseHasNoEquityBuildup(t *testing.T) {
	input := canonicalProperty()
	input.IsCashPurchase = true

	projection := Project(input, 0)

	assert.Zero(t, projection.TotalEquityBuildup)
	assert.Zero(t, projection.RemainingLoanBalance)
}

func TestProject_RentGrowthCoupledToAppreciation(t *testing.T) {
	// Rent grows at the appreciation rate; with management fees recomputed
	// from the grown rent and all other expenses frozen, each year's cash
	// flow exceeds the last when rent is growing.
	input := canonicalProperty()
	input.AppreciationRatePercent = 4
	payment := MonthlyPayment(input.LoanAmount(), input.InterestRate, input.LoanTermYears)

	grown := Project(input, payment)

	flat := input
	flat.AppreciationRatePercent = 0
	flatProjection := Project(flat, payment)

	assert.Greater(t, grown.TotalCashFlow, flatProjection.TotalCashFlow,
		"Growing rent produces more cumulative cash flow than flat rent")

	decoupled := ProjectWithRentGrowth(flat, payment, 4)
	assert.Equal(t, grown.TotalCashFlow, decoupled.TotalCashFlow,
		"An explicit rent-growth rate reproduces the coupled behavior")
}

func TestProject_ManagementFeeTracksGrownRent(t *testing.T) {
	withFee := canonicalProperty()
	withFee.AppreciationRatePercent = 5
	withFee.PropertyManagementPercent = 10
	payment := MonthlyPayment(withFee.LoanAmount(), withFee.InterestRate, withFee.LoanTermYears)

	projection := Project(withFee, payment)

	// Hand-compute: each year, cash flow uses grown rent, grown management
	// fee, and frozen remaining expenses.
	fixed := withFee.AnnualPropertyTax/12 + withFee.MonthlyInsurance
	var expected float64
	for year := 1; year <= 5; year++ {
		rent := withFee.MonthlyRent * math.Pow(1.05, float64(year-1))
		effective := rent * (1 - withFee.VacancyRatePercent/100)
		expenses := fixed + rent*0.10
		expected += (effective - expenses - payment) * 12
	}

	assert.InDelta(t, expected, projection.TotalCashFlow, 0.01)
}

func TestProject_ROIAgainstCashInvested(t *testing.T) {
	input := canonicalProperty()
	input.AppreciationRatePercent = 3
	payment := MonthlyPayment(input.LoanAmount(), input.InterestRate, input.LoanTermYears)

	projection := Project(input, payment)

	expected := projection.TotalReturn / input.TotalCashNeeded() * 100
	assert.InDelta(t, expected, projection.ReturnOnInvestment, 1e-9)
	assert.Equal(t, projection.TotalCashFlow+projection.TotalEquityBuildup+projection.TotalAppreciation,
		projection.TotalReturn)
}

func TestProject_ZeroCashInvestedROISentinel(t *testing.T) {
	input := canonicalProperty()
	input.IsCashPurchase = true
	input.ClosingCostPercent = 0 // cash purchase with no closing costs: nothing invested

	projection := Project(input, 0)

	assert.Zero(t, projection.ReturnOnInvestment, "ROI resolves to 0 when no cash was invested")
}
