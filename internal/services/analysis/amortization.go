// Package analysis implements the rental property calculation engine: mortgage
// amortization math, investment metrics, forward projections, deal warnings,
// and the reverse offer-price solvers. Every function here is a pure,
// deterministic function of its inputs with no side effects, no I/O, and no
// shared state, so concurrent callers need no locking.
package analysis

import "math"

// MonthlyPayment computes the fixed monthly payment of a fully amortizing
// loan using the standard annuity formula:
//
//	P = L * c * (1+c)^n / ((1+c)^n - 1)
//
// where c is the monthly rate and n the number of monthly payments. A
// non-positive loan amount, rate, or term models an all-cash or malformed
// scenario and yields a zero payment rather than NaN. No rounding is applied;
// rounding happens only at presentation.
func MonthlyPayment(loanAmount, annualRatePercent float64, termYears int) float64 {
	if loanAmount <= 0 || annualRatePercent <= 0 || termYears <= 0 {
		return 0
	}

	c := annualRatePercent / 100 / 12
	n := float64(termYears * 12)
	factor := math.Pow(1+c, n)

	return loanAmount * c * factor / (factor - 1)
}

// RemainingBalance computes the loan balance after paymentsMade monthly
// payments using the closed form
//
//	B = L * ((1+c)^n - (1+c)^p) / ((1+c)^n - 1)
//
// which matches a month-by-month simulation to within a cent. The result is
// clamped at zero.
func RemainingBalance(loanAmount, annualRatePercent float64, termYears, paymentsMade int) float64 {
	if loanAmount <= 0 || annualRatePercent <= 0 || termYears <= 0 {
		return 0
	}

	c := annualRatePercent / 100 / 12
	n := float64(termYears * 12)
	p := float64(paymentsMade)

	factorN := math.Pow(1+c, n)
	factorP := math.Pow(1+c, p)

	balance := loanAmount * (factorN - factorP) / (factorN - 1)
	if balance < 0 {
		return 0
	}
	return balance
}
