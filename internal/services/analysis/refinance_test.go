package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeRefinance_RateDrop(t *testing.T) {
	input := RefinanceInput{
		CurrentBalance:        200000,
		CurrentMonthlyPayment: 1650,
		CurrentRate:           8,
		RemainingTermYears:    28,
		NewRate:               6.5,
		NewTermYears:          30,
		ClosingCosts:          4000,
	}

	result := AnalyzeRefinance(input)

	expectedPayment := MonthlyPayment(200000, 6.5, 30)
	assert.InDelta(t, expectedPayment, result.NewMonthlyPayment, 0.001)
	assert.InDelta(t, 1650-expectedPayment, result.MonthlySavings, 0.001)

	expectedBreakEven := math.Ceil(4000 / (1650 - expectedPayment))
	assert.Equal(t, expectedBreakEven, result.BreakEvenMonths)
	assert.Positive(t, result.BreakEvenMonths)
}

func TestAnalyzeRefinance_NoSavingsNoBreakEven(t *testing.T) {
	input := RefinanceInput{
		CurrentBalance:        200000,
		CurrentMonthlyPayment: 1200,
		RemainingTermYears:    10,
		NewRate:               7.5,
		NewTermYears:          30,
		ClosingCosts:          4000,
	}

	result := AnalyzeRefinance(input)

	assert.Negative(t, result.MonthlySavings, "A higher payment is a negative saving")
	assert.Zero(t, result.BreakEvenMonths, "Closing costs never pay for themselves without savings")
}

func TestAnalyzeRefinance_InterestTotals(t *testing.T) {
	input := RefinanceInput{
		CurrentBalance:        150000,
		CurrentMonthlyPayment: 1300,
		RemainingTermYears:    15,
		NewRate:               6,
		NewTermYears:          30,
		ClosingCosts:          3500,
	}

	result := AnalyzeRefinance(input)

	assert.InDelta(t, 1300*15*12-150000, result.RemainingInterestOld, 0.01)

	newPayment := MonthlyPayment(150000, 6, 30)
	assert.InDelta(t, newPayment*360-150000, result.TotalInterestNew, 0.01)
	assert.InDelta(t, result.TotalInterestNew-result.RemainingInterestOld, result.LifetimeInterestDelta, 0.001)
}

func TestAnalyzeRefinance_InterestClampsAtZero(t *testing.T) {
	// Remaining payments smaller than the balance would imply negative
	// interest; the totals floor at zero instead.
	input := RefinanceInput{
		CurrentBalance:        200000,
		CurrentMonthlyPayment: 500,
		RemainingTermYears:    2,
		NewRate:               6,
		NewTermYears:          30,
		ClosingCosts:          3000,
	}

	result := AnalyzeRefinance(input)

	assert.Zero(t, result.RemainingInterestOld)
}
