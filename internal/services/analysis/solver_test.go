package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solverAssumptions() OfferAssumptions {
	return OfferAssumptions{
		MonthlyRent:              2000,
		VacancyRatePercent:       5,
		MonthlyOperatingExpenses: 800,
		DownPaymentPercent:       25,
		InterestRate:             7,
		LoanTermYears:            30,
		ClosingCostPercent:       3,
	}
}

func TestMaxPriceByCapRate_ClosedForm(t *testing.T) {
	a := solverAssumptions()

	// NOI = (2000*0.95 - 800) * 12 = 13200; at a 10% cap that is 132,000.
	price := MaxPriceByCapRate(a, 10)

	assert.InDelta(t, 132000, price, 0.01)
}

func TestMaxPriceByCapRate_DegenerateTargets(t *testing.T) {
	a := solverAssumptions()

	assert.Zero(t, MaxPriceByCapRate(a, 0), "Zero cap target cannot be priced")

	a.MonthlyOperatingExpenses = 5000 // negative NOI
	assert.Zero(t, MaxPriceByCapRate(a, 8), "Negative NOI cannot support any price")
}

func TestMaxPriceByCashFlow_ForwardConsistency(t *testing.T) {
	a := solverAssumptions()
	const target = 100.0

	price := MaxPriceByCashFlow(a, target)
	require.Positive(t, price)

	// Buying at exactly the solved price must produce the target cash flow.
	loan := price * (1 - a.DownPaymentPercent/100)
	payment := MonthlyPayment(loan, a.InterestRate, a.LoanTermYears)
	cashFlow := a.annualNOI()/12 - payment

	assert.InDelta(t, target, cashFlow, 0.01, "The solved price should hit the cash flow target")
}

func TestMaxPriceByCashFlow_UnreachableTarget(t *testing.T) {
	a := solverAssumptions()

	// NOI is 13200/yr; a $1200/mo target consumes it all.
	assert.Zero(t, MaxPriceByCashFlow(a, 1200), "A target that leaves nothing for debt service returns 0")
	assert.Zero(t, MaxPriceByCashFlow(a, 2000))
}

func TestMaxPriceByCashFlow_NoFinancingReturnsZero(t *testing.T) {
	a := solverAssumptions()
	a.InterestRate = 0

	assert.Zero(t, MaxPriceByCashFlow(a, 100), "The annuity inversion needs a positive rate")

	a = solverAssumptions()
	a.DownPaymentPercent = 100
	assert.Zero(t, MaxPriceByCashFlow(a, 100))
}

func TestMaxPriceByCashOnCash_ConvergesNearTarget(t *testing.T) {
	a := solverAssumptions()
	const target = 4.0

	price := MaxPriceByCashOnCash(a, target)
	require.Positive(t, price)

	coc := cashOnCashAtPrice(a, a.annualNOI(), price)
	assert.InDelta(t, target, coc, cocTolerancePercent,
		"The iteration should stop within tolerance for a reachable target")
}

func TestMaxPriceByCashOnCash_AlwaysTerminates(t *testing.T) {
	a := solverAssumptions()

	// An absurd target can never converge; the loop must still return the
	// last trial price after the iteration cap.
	price := MaxPriceByCashOnCash(a, 500)

	assert.Positive(t, price, "The capped iteration returns its final trial price")
}

func TestMaxPriceByCashOnCash_DegenerateInputs(t *testing.T) {
	a := solverAssumptions()
	assert.Zero(t, MaxPriceByCashOnCash(a, 0), "A non-positive target is not solvable")

	a.MonthlyRent = 0
	a.OtherMonthlyIncome = 0
	assert.Zero(t, MaxPriceByCashOnCash(a, 8), "No income means no seed price")
}

func TestSuggestOffer_MinimumOfThreeRule(t *testing.T) {
	a := solverAssumptions()

	// A 10% cap target prices the deal well below the cash-flow and CoC
	// estimates; the suggestion must equal the cap-rate price exactly.
	target := OfferTarget{
		MonthlyCashFlow:   100,
		CashOnCashPercent: 4,
		CapRatePercent:    10,
	}

	result := SuggestOffer(a, target)

	require.Less(t, result.MaxPriceByCapRate, result.MaxPriceByCashFlow)
	require.Less(t, result.MaxPriceByCapRate, result.MaxPriceByCashOnCash)
	assert.Equal(t, result.MaxPriceByCapRate, result.SuggestedMaxPrice,
		"The suggested offer is the most conservative of the three estimates")
}

func TestSuggestOffer_UnreachableTargetSuggestsZero(t *testing.T) {
	a := solverAssumptions()

	target := OfferTarget{
		MonthlyCashFlow:   2000, // unreachable
		CashOnCashPercent: 4,
		CapRatePercent:    10,
	}

	result := SuggestOffer(a, target)

	assert.Zero(t, result.SuggestedMaxPrice,
		"An unreachable target makes zero the conservative answer")
}
