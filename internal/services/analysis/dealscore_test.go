package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"rental-analysis-engine/internal/models"
)

func TestScoreDeal_FullMarks(t *testing.T) {
	input := canonicalProperty()
	result := models.CalculationResult{
		CashFlowPerDoor:          300,
		CashOnCashReturn:         12,
		CapRate:                  8,
		DebtServiceCoverageRatio: models.Ratio(1.5),
	}

	score := ScoreDeal(input, result)

	assert.Equal(t, 100.0, score.Score)
	assert.Equal(t, "A", score.Grade)
	assert.Equal(t, 30.0, score.CashFlowComponent)
	assert.Equal(t, 30.0, score.CoCComponent)
	assert.Equal(t, 20.0, score.CapRateComponent)
	assert.Equal(t, 20.0, score.DSCRComponent)
}

func TestScoreDeal_ComponentsClampAtWeight(t *testing.T) {
	input := canonicalProperty()
	result := models.CalculationResult{
		CashFlowPerDoor:          5000,
		CashOnCashReturn:         40,
		CapRate:                  25,
		DebtServiceCoverageRatio: models.Ratio(9),
	}

	score := ScoreDeal(input, result)

	assert.Equal(t, 100.0, score.Score, "Exceeding every threshold still caps at 100")
}

func TestScoreDeal_NegativeMetricsScoreZero(t *testing.T) {
	input := canonicalProperty()
	result := models.CalculationResult{
		CashFlowPerDoor:          -200,
		CashOnCashReturn:         -5,
		CapRate:                  -1,
		DebtServiceCoverageRatio: models.Ratio(0),
	}

	score := ScoreDeal(input, result)

	assert.Zero(t, score.Score)
	assert.Equal(t, "F", score.Grade)
}

func TestScoreDeal_InfiniteDSCRTakesFullDebtMarks(t *testing.T) {
	input := canonicalProperty()
	input.IsCashPurchase = true
	result := models.CalculationResult{
		DebtServiceCoverageRatio: models.Ratio(math.Inf(1)),
	}

	score := ScoreDeal(input, result)

	assert.Equal(t, 20.0, score.DSCRComponent, "No debt means no debt risk")
}

func TestScoreDeal_PartialCredit(t *testing.T) {
	input := canonicalProperty()
	result := models.CalculationResult{
		CashFlowPerDoor:          150, // half of the $300 threshold
		CashOnCashReturn:         6,   // half of 12%
		CapRate:                  4,   // half of 8%
		DebtServiceCoverageRatio: models.Ratio(0.75),
	}

	score := ScoreDeal(input, result)

	assert.InDelta(t, 50, score.Score, 0.001, "Half of every threshold is half the score")
	assert.Equal(t, "C", score.Grade)
}

func TestGradeBoundaries(t *testing.T) {
	cases := []struct {
		score float64
		grade string
	}{
		{85, "A"},
		{80, "A"},
		{79.9, "B"},
		{65, "B"},
		{64.9, "C"},
		{50, "C"},
		{49.9, "D"},
		{35, "D"},
		{34.9, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.grade, gradeFor(tc.score), "score %.1f", tc.score)
	}
}
