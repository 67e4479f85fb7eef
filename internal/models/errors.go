// Package models defines the data structures for the rental analysis engine.
package models

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrEmptyName            = errors.New("property name cannot be empty")
	ErrNegativePrice        = errors.New("purchase price cannot be negative")
	ErrNegativeRent         = errors.New("monthly rent cannot be negative")
	ErrInvalidDownPayment   = errors.New("down payment percent must be between 0 and 100")
	ErrNegativeInterestRate = errors.New("interest rate cannot be negative")
	ErrInvalidLoanTerm      = errors.New("loan term must be a positive number of years")
	ErrInvalidVacancyRate   = errors.New("vacancy rate percent must be at least 0 and below 100")
	ErrInvalidPercentage    = errors.New("percentage input must be between 0 and 100")
	ErrInvalidDoorCount     = errors.New("door count must be at least 1")
	ErrNegativeExpense      = errors.New("expense amounts cannot be negative")
)

// ValidatePropertyCreate range-checks a creation payload. Validation belongs
// to the caller boundary; the calculation engine itself accepts any finite
// input and resolves degenerate values to sentinel outputs.
func ValidatePropertyCreate(c *PropertyCreate) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}

	if c.PurchasePrice < 0 {
		return ErrNegativePrice
	}

	if c.MonthlyRent < 0 || c.OtherMonthlyIncome < 0 {
		return ErrNegativeRent
	}

	if c.DownPaymentPercent < 0 || c.DownPaymentPercent > 100 {
		return ErrInvalidDownPayment
	}

	if c.InterestRate < 0 {
		return ErrNegativeInterestRate
	}

	if !c.IsCashPurchase && c.LoanTermYears <= 0 {
		return ErrInvalidLoanTerm
	}

	if c.VacancyRatePercent < 0 || c.VacancyRatePercent >= 100 {
		return ErrInvalidVacancyRate
	}

	for _, pct := range []float64{c.ClosingCostPercent, c.PropertyManagementPercent, c.MaintenancePercent, c.CapExPercent} {
		if pct < 0 || pct > 100 {
			return ErrInvalidPercentage
		}
	}

	for _, amount := range []float64{c.AnnualPropertyTax, c.MonthlyInsurance, c.MonthlyHOA, c.MonthlyUtilities, c.OtherMonthlyExpenses} {
		if amount < 0 {
			return ErrNegativeExpense
		}
	}

	if c.DoorCount < 1 {
		return ErrInvalidDoorCount
	}

	return nil
}
