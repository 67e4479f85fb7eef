package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func brrrrDeal() BRRRRInput {
	return BRRRRInput{
		PurchasePrice:        100000,
		RehabCost:            30000,
		PurchaseClosingCosts: 3000,
		AfterRepairValue:     180000,

		RefinanceLTVPercent: 75,
		RefinanceRate:       7,
		RefinanceTermYears:  30,

		MonthlyRent:              1600,
		VacancyRatePercent:       5,
		MonthlyOperatingExpenses: 500,
	}
}

func TestAnalyzeBRRRR_StandardDeal(t *testing.T) {
	result := AnalyzeBRRRR(brrrrDeal())

	assert.InDelta(t, 133000, result.TotalInvested, 0.01)
	assert.InDelta(t, 135000, result.RefinanceLoanAmount, 0.01, "75% of the 180k ARV")
	assert.Zero(t, result.CashLeftInDeal, "The refinance covers the full investment")
	assert.InDelta(t, 133000, result.CashRecovered, 0.01, "Recovery is capped at the amount invested")
	assert.InDelta(t, 45000, result.EquityAfterRefinance, 0.01)
	assert.True(t, result.CashOnCashReturn.IsInfinite(), "No cash left means the infinite-return sentinel")
}

func TestAnalyzeBRRRR_CashLeftInDeal(t *testing.T) {
	input := brrrrDeal()
	input.RefinanceLTVPercent = 70 // loan 126k against 133k invested

	result := AnalyzeBRRRR(input)

	assert.InDelta(t, 126000, result.RefinanceLoanAmount, 0.01)
	assert.InDelta(t, 7000, result.CashLeftInDeal, 0.01)
	assert.InDelta(t, 126000, result.CashRecovered, 0.01)
	assert.False(t, result.CashOnCashReturn.IsInfinite())

	expectedCoC := result.MonthlyCashFlow * 12 / 7000 * 100
	assert.InDelta(t, expectedCoC, float64(result.CashOnCashReturn), 0.001)
}

func TestAnalyzeBRRRR_CashFlowAfterRefinance(t *testing.T) {
	input := brrrrDeal()
	result := AnalyzeBRRRR(input)

	payment := MonthlyPayment(result.RefinanceLoanAmount, input.RefinanceRate, input.RefinanceTermYears)
	effective := input.MonthlyRent * (1 - input.VacancyRatePercent/100)

	assert.InDelta(t, payment, result.NewMonthlyPayment, 0.001)
	assert.InDelta(t, effective-input.MonthlyOperatingExpenses-payment, result.MonthlyCashFlow, 0.001)
}

func TestAnalyzeBRRRR_ZeroLTV(t *testing.T) {
	input := brrrrDeal()
	input.RefinanceLTVPercent = 0

	result := AnalyzeBRRRR(input)

	assert.Zero(t, result.RefinanceLoanAmount)
	assert.Zero(t, result.NewMonthlyPayment)
	assert.Zero(t, result.CashRecovered)
	assert.InDelta(t, 133000, result.CashLeftInDeal, 0.01, "With no refinance every dollar stays in")
}
