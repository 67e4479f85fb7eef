// Package models defines the data structures for the rental analysis engine.
package models

import (
	"time"
)

// PropertyInput holds every parameter of a candidate rental deal. It is an
// immutable value: the calculation engine only ever reads it, and derived
// quantities are computed on demand rather than stored.
type PropertyInput struct {
	// Identity (not used in calculations)
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Address   string    `json:"address" db:"address"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Purchase
	PurchasePrice      float64 `json:"purchase_price" db:"purchase_price"`
	IsCashPurchase     bool    `json:"is_cash_purchase" db:"is_cash_purchase"`
	DownPaymentPercent float64 `json:"down_payment_percent" db:"down_payment_percent"`
	InterestRate       float64 `json:"interest_rate" db:"interest_rate"`
	LoanTermYears      int     `json:"loan_term_years" db:"loan_term_years"`
	ClosingCostPercent float64 `json:"closing_cost_percent" db:"closing_cost_percent"`

	// Income
	MonthlyRent        float64 `json:"monthly_rent" db:"monthly_rent"`
	OtherMonthlyIncome float64 `json:"other_monthly_income" db:"other_monthly_income"`
	VacancyRatePercent float64 `json:"vacancy_rate_percent" db:"vacancy_rate_percent"`

	// Expenses
	AnnualPropertyTax         float64 `json:"annual_property_tax" db:"annual_property_tax"`
	MonthlyInsurance          float64 `json:"monthly_insurance" db:"monthly_insurance"`
	MonthlyHOA                float64 `json:"monthly_hoa" db:"monthly_hoa"`
	PropertyManagementPercent float64 `json:"property_management_percent" db:"property_management_percent"`
	MaintenancePercent        float64 `json:"maintenance_percent" db:"maintenance_percent"`
	CapExPercent              float64 `json:"capex_percent" db:"capex_percent"`
	MonthlyUtilities          float64 `json:"monthly_utilities" db:"monthly_utilities"`
	OtherMonthlyExpenses      float64 `json:"other_monthly_expenses" db:"other_monthly_expenses"`

	// Growth assumptions
	AppreciationRatePercent float64 `json:"appreciation_rate_percent" db:"appreciation_rate_percent"`

	// Physical attributes (per-door and estimator calculations only)
	DoorCount int     `json:"door_count" db:"door_count"`
	Bedrooms  int     `json:"bedrooms" db:"bedrooms"`
	Bathrooms float64 `json:"bathrooms" db:"bathrooms"`
	Sqft      float64 `json:"sqft" db:"sqft"`
	YearBuilt int     `json:"year_built" db:"year_built"`
}

// LoanAmount returns the financed principal. A cash purchase carries no loan.
func (p *PropertyInput) LoanAmount() float64 {
	if p.IsCashPurchase {
		return 0
	}
	return p.PurchasePrice * (1 - p.DownPaymentPercent/100)
}

// DownPaymentAmount returns the cash put down at purchase. For a cash
// purchase the down-payment component is zero; the full price is not part of
// the financed cash-needed figure.
func (p *PropertyInput) DownPaymentAmount() float64 {
	if p.IsCashPurchase {
		return 0
	}
	return p.PurchasePrice * (p.DownPaymentPercent / 100)
}

// ClosingCosts returns the closing costs as a flat percentage of price.
func (p *PropertyInput) ClosingCosts() float64 {
	return p.PurchasePrice * (p.ClosingCostPercent / 100)
}

// TotalCashNeeded is the cash invested at purchase: down payment plus closing
// costs. Closing costs apply to cash purchases as well.
func (p *PropertyInput) TotalCashNeeded() float64 {
	return p.DownPaymentAmount() + p.ClosingCosts()
}

// GrossMonthlyIncome is rent plus any other income before vacancy.
func (p *PropertyInput) GrossMonthlyIncome() float64 {
	return p.MonthlyRent + p.OtherMonthlyIncome
}

// EffectiveMonthlyIncome is gross income discounted by the vacancy rate.
func (p *PropertyInput) EffectiveMonthlyIncome() float64 {
	return p.GrossMonthlyIncome() * (1 - p.VacancyRatePercent/100)
}

// MonthlyOperatingExpenses sums every monthly expense component: annualized
// property tax, insurance, HOA, management (percent of rent), maintenance and
// capex reserves (percent of price, annualized), utilities, and other.
// Debt service is not an operating expense.
func (p *PropertyInput) MonthlyOperatingExpenses() float64 {
	managementFee := p.MonthlyRent * (p.PropertyManagementPercent / 100)
	maintenanceReserve := p.PurchasePrice * (p.MaintenancePercent / 100) / 12
	capExReserve := p.PurchasePrice * (p.CapExPercent / 100) / 12

	return p.AnnualPropertyTax/12 +
		p.MonthlyInsurance +
		p.MonthlyHOA +
		managementFee +
		maintenanceReserve +
		capExReserve +
		p.MonthlyUtilities +
		p.OtherMonthlyExpenses
}

// PropertyCreate represents the data needed to register a new property.
type PropertyCreate struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address,omitempty"`

	PurchasePrice      float64 `json:"purchase_price" validate:"gte=0"`
	IsCashPurchase     bool    `json:"is_cash_purchase"`
	DownPaymentPercent float64 `json:"down_payment_percent" validate:"gte=0,lte=100"`
	InterestRate       float64 `json:"interest_rate" validate:"gte=0"`
	LoanTermYears      int     `json:"loan_term_years" validate:"gt=0"`
	ClosingCostPercent float64 `json:"closing_cost_percent" validate:"gte=0,lte=100"`

	MonthlyRent        float64 `json:"monthly_rent" validate:"gte=0"`
	OtherMonthlyIncome float64 `json:"other_monthly_income" validate:"gte=0"`
	VacancyRatePercent float64 `json:"vacancy_rate_percent" validate:"gte=0,lt=100"`

	AnnualPropertyTax         float64 `json:"annual_property_tax" validate:"gte=0"`
	MonthlyInsurance          float64 `json:"monthly_insurance" validate:"gte=0"`
	MonthlyHOA                float64 `json:"monthly_hoa" validate:"gte=0"`
	PropertyManagementPercent float64 `json:"property_management_percent" validate:"gte=0,lte=100"`
	MaintenancePercent        float64 `json:"maintenance_percent" validate:"gte=0,lte=100"`
	CapExPercent              float64 `json:"capex_percent" validate:"gte=0,lte=100"`
	MonthlyUtilities          float64 `json:"monthly_utilities" validate:"gte=0"`
	OtherMonthlyExpenses      float64 `json:"other_monthly_expenses" validate:"gte=0"`

	AppreciationRatePercent float64 `json:"appreciation_rate_percent"`

	DoorCount int     `json:"door_count" validate:"gte=1"`
	Bedrooms  int     `json:"bedrooms,omitempty"`
	Bathrooms float64 `json:"bathrooms,omitempty"`
	Sqft      float64 `json:"sqft,omitempty"`
	YearBuilt int     `json:"year_built,omitempty"`

	BatchID string `json:"batch_id,omitempty"`
}

// ToInput converts a creation payload into the immutable engine input.
func (c *PropertyCreate) ToInput(id string) PropertyInput {
	now := time.Now().UTC()
	doors := c.DoorCount
	if doors < 1 {
		doors = 1
	}
	return PropertyInput{
		ID:        id,
		Name:      c.Name,
		Address:   c.Address,
		CreatedAt: now,
		UpdatedAt: now,

		PurchasePrice:      c.PurchasePrice,
		IsCashPurchase:     c.IsCashPurchase,
		DownPaymentPercent: c.DownPaymentPercent,
		InterestRate:       c.InterestRate,
		LoanTermYears:      c.LoanTermYears,
		ClosingCostPercent: c.ClosingCostPercent,

		MonthlyRent:        c.MonthlyRent,
		OtherMonthlyIncome: c.OtherMonthlyIncome,
		VacancyRatePercent: c.VacancyRatePercent,

		AnnualPropertyTax:         c.AnnualPropertyTax,
		MonthlyInsurance:          c.MonthlyInsurance,
		MonthlyHOA:                c.MonthlyHOA,
		PropertyManagementPercent: c.PropertyManagementPercent,
		MaintenancePercent:        c.MaintenancePercent,
		CapExPercent:              c.CapExPercent,
		MonthlyUtilities:          c.MonthlyUtilities,
		OtherMonthlyExpenses:      c.OtherMonthlyExpenses,

		AppreciationRatePercent: c.AppreciationRatePercent,

		DoorCount: doors,
		Bedrooms:  c.Bedrooms,
		Bathrooms: c.Bathrooms,
		Sqft:      c.Sqft,
		YearBuilt: c.YearBuilt,
	}
}

// PropertySummary is a lightweight view of a property for listings.
type PropertySummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	PurchasePrice float64 `json:"purchase_price"`
	MonthlyRent   float64 `json:"monthly_rent"`
	DoorCount     int     `json:"door_count"`
}

// ToSummary converts a PropertyInput to PropertySummary.
func (p *PropertyInput) ToSummary() PropertySummary {
	return PropertySummary{
		ID:            p.ID,
		Name:          p.Name,
		Address:       p.Address,
		PurchasePrice: p.PurchasePrice,
		MonthlyRent:   p.MonthlyRent,
		DoorCount:     p.DoorCount,
	}
}

// BulkInsertResult contains the results of a bulk insert operation.
type BulkInsertResult struct {
	InsertedCount int      `json:"inserted_count"`
	FailedCount   int      `json:"failed_count"`
	Errors        []string `json:"errors,omitempty"`
}
