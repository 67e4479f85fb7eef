package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateClosingCosts_FinancedPurchase(t *testing.T) {
	input := canonicalProperty()
	input.ClosingCostPercent = 3

	breakdown := EstimateClosingCosts(input)

	assert.InDelta(t, 2000, breakdown.LoanOrigination, 0.01, "1% of the 200k loan")
	assert.InDelta(t, 1250, breakdown.TitleInsurance, 0.01, "0.5% of the 250k price")
	assert.InDelta(t, 1100, breakdown.ThirdPartyFees, 0.01)
	assert.InDelta(t, 2400.0/12*6+150*12, breakdown.PrepaidEscrow, 0.01)

	sum := breakdown.LoanOrigination + breakdown.TitleInsurance +
		breakdown.ThirdPartyFees + breakdown.PrepaidEscrow
	assert.InDelta(t, sum, breakdown.EstimatedTotal, 0.001)

	assert.InDelta(t, 7500, breakdown.FlatEstimate, 0.01, "3% of the purchase price")
	assert.InDelta(t, breakdown.EstimatedTotal-7500, breakdown.Difference, 0.001)
}

func TestEstimateClosingCosts_CashPurchaseSkipsOrigination(t *testing.T) {
	input := canonicalProperty()
	input.IsCashPurchase = true

	breakdown := EstimateClosingCosts(input)

	assert.Zero(t, breakdown.LoanOrigination)
	assert.Positive(t, breakdown.TitleInsurance, "Title and escrow apply regardless of financing")
}

func TestEstimateRent_SqftBased(t *testing.T) {
	input := canonicalProperty()
	input.Sqft = 1200
	input.Bedrooms = 3
	input.Bathrooms = 2
	input.YearBuilt = 2005

	estimate := EstimateRent(input)

	// base 1.10, +8% for the third bedroom, +5% for the second bath
	expectedRate := 1.10 * 1.08 * 1.05
	require.InDelta(t, expectedRate, estimate.RentPerSqft, 0.0001)
	assert.InDelta(t, 1200*expectedRate, estimate.Estimate, 0.01)
	assert.InDelta(t, estimate.Estimate*0.9, estimate.Low, 0.01)
	assert.InDelta(t, estimate.Estimate*1.1, estimate.High, 0.01)
	assert.InDelta(t, 2500, estimate.OnePercentOfPrice, 0.01)
}

func TestEstimateRent_OlderHomeDiscount(t *testing.T) {
	input := canonicalProperty()
	input.Sqft = 1000
	input.Bedrooms = 2
	input.Bathrooms = 1
	input.YearBuilt = 1965

	estimate := EstimateRent(input)

	assert.InDelta(t, 1.10*0.9, estimate.RentPerSqft, 0.0001, "Pre-1980 homes rent at a discount")
}

func TestEstimateRent_NoSqftFallsBackToOnePercentRule(t *testing.T) {
	input := canonicalProperty()
	input.Sqft = 0

	estimate := EstimateRent(input)

	assert.InDelta(t, 2500, estimate.Estimate, 0.01)
	assert.InDelta(t, 2250, estimate.Low, 0.01)
	assert.InDelta(t, 2750, estimate.High, 0.01)
	assert.Zero(t, estimate.RentPerSqft)
}

func TestEstimateRent_SmallUnitBelowTwoBedrooms(t *testing.T) {
	input := canonicalProperty()
	input.Sqft = 600
	input.Bedrooms = 1
	input.Bathrooms = 1

	estimate := EstimateRent(input)

	assert.InDelta(t, 1.10*0.92, estimate.RentPerSqft, 0.0001, "One bedroom below the baseline trims 8%")
}

func TestEstimateTaxBenefits_FinancedProperty(t *testing.T) {
	input := canonicalProperty()

	estimate := EstimateTaxBenefits(input, 24, 0)

	// 20% default land share: building 200k over 27.5 years
	assert.InDelta(t, 200000/27.5, estimate.AnnualDepreciation, 0.01)

	schedule := GenerateSchedule(input)
	require.NotEmpty(t, schedule)
	assert.InDelta(t, schedule[0].InterestPaidThisYear, estimate.FirstYearInterest, 0.001)

	assert.InDelta(t, input.MonthlyOperatingExpenses()*12, estimate.DeductibleExpenses, 0.001)

	total := estimate.AnnualDepreciation + estimate.FirstYearInterest + estimate.DeductibleExpenses
	assert.InDelta(t, total, estimate.TotalDeductions, 0.001)
	assert.InDelta(t, total*0.24, estimate.EstimatedAnnualSaving, 0.001)
}

func TestEstimateTaxBenefits_CashPurchaseHasNoInterest(t *testing.T) {
	input := canonicalProperty()
	input.IsCashPurchase = true

	estimate := EstimateTaxBenefits(input, 32, 25)

	assert.Zero(t, estimate.FirstYearInterest)
	assert.InDelta(t, 250000*0.75/27.5, estimate.AnnualDepreciation, 0.01, "25% land share leaves 187.5k of building")
}

func TestEstimateTaxBenefits_ZeroMarginalRate(t *testing.T) {
	input := canonicalProperty()

	estimate := EstimateTaxBenefits(input, 0, 0)

	assert.Positive(t, estimate.TotalDeductions)
	assert.Zero(t, estimate.EstimatedAnnualSaving, "Deductions without a tax rate save nothing")
}
