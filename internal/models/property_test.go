package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() PropertyCreate {
	return PropertyCreate{
		Name:               "Maple Duplex",
		Address:            "412 Maple St",
		PurchasePrice:      250000,
		DownPaymentPercent: 20,
		InterestRate:       7.5,
		LoanTermYears:      30,
		MonthlyRent:        1800,
		VacancyRatePercent: 8,
		AnnualPropertyTax:  2400,
		MonthlyInsurance:   150,
		DoorCount:          2,
	}
}

func TestLoanAmount(t *testing.T) {
	p := PropertyInput{PurchasePrice: 250000, DownPaymentPercent: 20}
	assert.InDelta(t, 200000, p.LoanAmount(), 0.001)

	p.IsCashPurchase = true
	assert.Zero(t, p.LoanAmount(), "A cash purchase carries no loan")
}

func TestDownPaymentAndTotalCashNeeded(t *testing.T) {
	p := PropertyInput{PurchasePrice: 250000, DownPaymentPercent: 20, ClosingCostPercent: 3}

	assert.InDelta(t, 50000, p.DownPaymentAmount(), 0.001)
	assert.InDelta(t, 7500, p.ClosingCosts(), 0.001)
	assert.InDelta(t, 57500, p.TotalCashNeeded(), 0.001)
}

func TestTotalCashNeeded_CashPurchaseIsClosingCostsOnly(t *testing.T) {
	p := PropertyInput{PurchasePrice: 250000, IsCashPurchase: true, ClosingCostPercent: 3}

	assert.Zero(t, p.DownPaymentAmount())
	assert.InDelta(t, 7500, p.TotalCashNeeded(), 0.001,
		"Closing costs apply even without financing")
}

func TestIncomeAccessors(t *testing.T) {
	p := PropertyInput{MonthlyRent: 1800, OtherMonthlyIncome: 100, VacancyRatePercent: 8}

	assert.InDelta(t, 1900, p.GrossMonthlyIncome(), 0.001)
	assert.InDelta(t, 1900*0.92, p.EffectiveMonthlyIncome(), 0.001)
}

func TestMonthlyOperatingExpenses_AllComponents(t *testing.T) {
	p := PropertyInput{
		PurchasePrice:             240000,
		MonthlyRent:               2000,
		AnnualPropertyTax:         3600,
		MonthlyInsurance:          120,
		MonthlyHOA:                50,
		PropertyManagementPercent: 10,
		MaintenancePercent:        1,
		CapExPercent:              0.5,
		MonthlyUtilities:          80,
		OtherMonthlyExpenses:      40,
	}

	// tax 300 + ins 120 + hoa 50 + mgmt 200 + maint 200 + capex 100 + util 80 + other 40
	assert.InDelta(t, 1090, p.MonthlyOperatingExpenses(), 0.001)
}

func TestToInput_CopiesFieldsAndDefaultsDoors(t *testing.T) {
	c := validCreate()
	c.DoorCount = 0

	input := c.ToInput("prop-42")

	assert.Equal(t, "prop-42", input.ID)
	assert.Equal(t, c.Name, input.Name)
	assert.Equal(t, c.PurchasePrice, input.PurchasePrice)
	assert.Equal(t, 1, input.DoorCount, "A missing door count defaults to a single door")
	assert.False(t, input.CreatedAt.IsZero())
	assert.Equal(t, input.CreatedAt, input.UpdatedAt)
}

func TestToSummary(t *testing.T) {
	c := validCreate()
	input := c.ToInput("prop-42")

	summary := input.ToSummary()

	assert.Equal(t, input.ID, summary.ID)
	assert.Equal(t, input.Name, summary.Name)
	assert.Equal(t, input.PurchasePrice, summary.PurchasePrice)
	assert.Equal(t, input.DoorCount, summary.DoorCount)
}

func TestValidatePropertyCreate_Valid(t *testing.T) {
	c := validCreate()
	require.NoError(t, ValidatePropertyCreate(&c))
}

func TestValidatePropertyCreate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PropertyCreate)
		wantErr error
	}{
		{"empty name", func(c *PropertyCreate) { c.Name = "  " }, ErrEmptyName},
		{"negative price", func(c *PropertyCreate) { c.PurchasePrice = -1 }, ErrNegativePrice},
		{"negative rent", func(c *PropertyCreate) { c.MonthlyRent = -100 }, ErrNegativeRent},
		{"negative other income", func(c *PropertyCreate) { c.OtherMonthlyIncome = -1 }, ErrNegativeRent},
		{"down payment over 100", func(c *PropertyCreate) { c.DownPaymentPercent = 101 }, ErrInvalidDownPayment},
		{"negative rate", func(c *PropertyCreate) { c.InterestRate = -0.5 }, ErrNegativeInterestRate},
		{"zero loan term financed", func(c *PropertyCreate) { c.LoanTermYears = 0 }, ErrInvalidLoanTerm},
		{"vacancy at 100", func(c *PropertyCreate) { c.VacancyRatePercent = 100 }, ErrInvalidVacancyRate},
		{"management over 100", func(c *PropertyCreate) { c.PropertyManagementPercent = 150 }, ErrInvalidPercentage},
		{"negative insurance", func(c *PropertyCreate) { c.MonthlyInsurance = -10 }, ErrNegativeExpense},
		{"zero doors", func(c *PropertyCreate) { c.DoorCount = 0 }, ErrInvalidDoorCount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := validCreate()
			tc.mutate(&c)
			assert.ErrorIs(t, ValidatePropertyCreate(&c), tc.wantErr)
		})
	}
}

func TestValidatePropertyCreate_CashPurchaseSkipsLoanTerm(t *testing.T) {
	c := validCreate()
	c.IsCashPurchase = true
	c.LoanTermYears = 0

	assert.NoError(t, ValidatePropertyCreate(&c), "A cash purchase does not need a loan term")
}
