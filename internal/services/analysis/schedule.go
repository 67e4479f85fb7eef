package analysis

import (
	"rental-analysis-engine/internal/models"
)

// GenerateSchedule produces a year-by-year amortization schedule for the life
// of the loan. Rate and payment are fixed for the whole term. A cash purchase
// or non-positive loan amount yields an empty schedule. This is O(term in
// months); callers invoke it on demand rather than on every input change.
func GenerateSchedule(input models.PropertyInput) []models.AmortizationEntry {
	loanAmount := input.LoanAmount()
	if input.IsCashPurchase || loanAmount <= 0 {
		return nil
	}

	payment := MonthlyPayment(loanAmount, input.InterestRate, input.LoanTermYears)
	if payment <= 0 {
		return nil
	}

	monthlyRate := input.InterestRate / 100 / 12
	totalMonths := input.LoanTermYears * 12

	entries := make([]models.AmortizationEntry, 0, input.LoanTermYears)

	balance := loanAmount
	var yearPrincipal, yearInterest float64
	var cumulativePrincipal, cumulativeInterest float64

	for month := 1; month <= totalMonths; month++ {
		interest := balance * monthlyRate
		principal := payment - interest
		balance -= principal

		yearPrincipal += principal
		yearInterest += interest
		cumulativePrincipal += principal
		cumulativeInterest += interest

		if month%12 == 0 {
			remaining := balance
			if remaining < 0 {
				remaining = 0
			}
			entries = append(entries, models.AmortizationEntry{
				Year:                    month / 12,
				MonthlyPayment:          payment,
				PrincipalPaidThisYear:   yearPrincipal,
				InterestPaidThisYear:    yearInterest,
				RemainingBalance:        remaining,
				CumulativePrincipalPaid: cumulativePrincipal,
				CumulativeInterestPaid:  cumulativeInterest,
			})
			yearPrincipal = 0
			yearInterest = 0
		}
	}

	return entries
}
