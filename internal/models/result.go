// Package models defines the data structures for the rental analysis engine.
package models

import (
	"encoding/json"
	"math"
	"time"
)

// Ratio is a float64 that tolerates the infinite DSCR sentinel in JSON.
// Positive infinity marshals as null and null unmarshals back to positive
// infinity, so persisted results round-trip losslessly.
type Ratio float64

// IsInfinite reports whether the ratio carries the "no debt service" sentinel.
func (r Ratio) IsInfinite() bool {
	return math.IsInf(float64(r), 1)
}

// MarshalJSON implements json.Marshaler.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if r.IsInfinite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = Ratio(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Ratio(f)
	return nil
}

// CalculationResult holds every metric computed for a property. A fresh value
// is produced on every calculation; results are never cached or mutated.
type CalculationResult struct {
	MonthlyMortgagePayment   float64 `json:"monthly_mortgage_payment"`
	MonthlyCashFlow          float64 `json:"monthly_cash_flow"`
	AnnualCashFlow           float64 `json:"annual_cash_flow"`
	CashFlowPerDoor          float64 `json:"cash_flow_per_door"`
	NetOperatingIncome       float64 `json:"net_operating_income"`
	CashOnCashReturn         float64 `json:"cash_on_cash_return"`
	CapRate                  float64 `json:"cap_rate"`
	GrossRentMultiplier      float64 `json:"gross_rent_multiplier"`
	DebtServiceCoverageRatio Ratio   `json:"debt_service_coverage_ratio"`
	ExpenseRatio             float64 `json:"expense_ratio"`
	BreakEvenRent            float64 `json:"break_even_rent"`
	TotalCashNeeded          float64 `json:"total_cash_needed"`

	FiveYearProjection ProjectionResult `json:"five_year_projection"`
}

// ProjectionResult summarizes a fixed five-year forward projection.
type ProjectionResult struct {
	TotalCashFlow          float64 `json:"total_cash_flow"`
	TotalEquityBuildup     float64 `json:"total_equity_buildup"`
	TotalAppreciation      float64 `json:"total_appreciation"`
	ProjectedPropertyValue float64 `json:"projected_property_value"`
	RemainingLoanBalance   float64 `json:"remaining_loan_balance"`
	TotalReturn            float64 `json:"total_return"`
	ReturnOnInvestment     float64 `json:"return_on_investment"`
}

// AmortizationEntry is one year of an amortization schedule.
type AmortizationEntry struct {
	Year                    int     `json:"year"`
	MonthlyPayment          float64 `json:"monthly_payment"`
	PrincipalPaidThisYear   float64 `json:"principal_paid_this_year"`
	InterestPaidThisYear    float64 `json:"interest_paid_this_year"`
	RemainingBalance        float64 `json:"remaining_balance"`
	CumulativePrincipalPaid float64 `json:"cumulative_principal_paid"`
	CumulativeInterestPaid  float64 `json:"cumulative_interest_paid"`
}

// WarningSeverity classifies a deal warning.
type WarningSeverity string

const (
	SeverityInfo     WarningSeverity = "info"
	SeverityWarning  WarningSeverity = "warning"
	SeverityCritical WarningSeverity = "critical"
)

// DealWarning is a qualitative flag derived from a calculation result. It is
// generated fresh on every evaluation and never persisted as engine state.
type DealWarning struct {
	Severity WarningSeverity `json:"severity"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
}

// AnalysisSnapshot is a persisted record of a computed result for a property,
// written by the persistence collaborator. The engine itself never stores
// anything.
type AnalysisSnapshot struct {
	ID         int64             `json:"id" db:"id"`
	PropertyID string            `json:"property_id" db:"property_id"`
	BatchID    string            `json:"batch_id,omitempty" db:"batch_id"`
	Result     CalculationResult `json:"result" db:"result"`
	DealScore  float64           `json:"deal_score" db:"deal_score"`
	DealGrade  string            `json:"deal_grade" db:"deal_grade"`
	Warnings   []DealWarning     `json:"warnings" db:"warnings"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
}

// BatchAnalysisSummary holds aggregate statistics over the stored snapshots
// of one batch.
type BatchAnalysisSummary struct {
	BatchID            string  `json:"batch_id"`
	TotalAnalyses      int     `json:"total_analyses"`
	PropertiesAnalyzed int     `json:"properties_analyzed"`
	AvgDealScore       float64 `json:"avg_deal_score"`
	BestDealScore      float64 `json:"best_deal_score"`
	StrongDeals        int     `json:"strong_deals"`
}

// BatchAnalysisResult summarizes one run of the batch analysis pipeline.
type BatchAnalysisResult struct {
	BatchID        string        `json:"batch_id"`
	TotalRows      int           `json:"total_rows"`
	ValidRows      int           `json:"valid_rows"`
	Analyzed       int           `json:"analyzed"`
	Stored         int           `json:"stored"`
	Flagged        int           `json:"flagged"`
	ProcessingTime time.Duration `json:"processing_time"`
	Errors         []string      `json:"errors,omitempty"`
}
