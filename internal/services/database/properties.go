// Package database provides database operations for the rental analysis engine.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rental-analysis-engine/internal/models"
)

// PropertyRepository handles property database operations.
type PropertyRepository struct {
	db *DB
}

// NewPropertyRepository creates a new property repository.
func NewPropertyRepository(db *DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// Create inserts a new property into the database and returns its ID.
func (r *PropertyRepository) Create(ctx context.Context, property *models.PropertyCreate) (string, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO properties (
			id, name, address, purchase_price, is_cash_purchase, down_payment_percent,
			interest_rate, loan_term_years, closing_cost_percent,
			monthly_rent, other_monthly_income, vacancy_rate_percent,
			annual_property_tax, monthly_insurance, monthly_hoa,
			property_management_percent, maintenance_percent, capex_percent,
			monthly_utilities, other_monthly_expenses, appreciation_rate_percent,
			door_count, bedrooms, bathrooms, sqft, year_built,
			batch_id, created_at, updated_at, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $28, true
		)
		RETURNING id`

	doors := property.DoorCount
	if doors < 1 {
		doors = 1
	}

	err := r.db.QueryRowContext(ctx, query,
		id,
		property.Name,
		property.Address,
		property.PurchasePrice,
		property.IsCashPurchase,
		property.DownPaymentPercent,
		property.InterestRate,
		property.LoanTermYears,
		property.ClosingCostPercent,
		property.MonthlyRent,
		property.OtherMonthlyIncome,
		property.VacancyRatePercent,
		property.AnnualPropertyTax,
		property.MonthlyInsurance,
		property.MonthlyHOA,
		property.PropertyManagementPercent,
		property.MaintenancePercent,
		property.CapExPercent,
		property.MonthlyUtilities,
		property.OtherMonthlyExpenses,
		property.AppreciationRatePercent,
		doors,
		property.Bedrooms,
		property.Bathrooms,
		property.Sqft,
		property.YearBuilt,
		property.BatchID,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create property: %w", err)
	}

	return id, nil
}

// BulkInsert inserts multiple properties within a single transaction. Row
// failures are collected rather than aborting the batch.
func (r *PropertyRepository) BulkInsert(ctx context.Context, properties []*models.PropertyCreate) (*models.BulkInsertResult, error) {
	result := &models.BulkInsertResult{
		InsertedCount: 0,
		FailedCount:   0,
		Errors:        []string{},
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		now := time.Now().UTC()

		for _, property := range properties {
			doors := property.DoorCount
			if doors < 1 {
				doors = 1
			}

			_, err := tx.Exec(ctx, `
				INSERT INTO properties (
					id, name, address, purchase_price, is_cash_purchase, down_payment_percent,
					interest_rate, loan_term_years, closing_cost_percent,
					monthly_rent, other_monthly_income, vacancy_rate_percent,
					annual_property_tax, monthly_insurance, monthly_hoa,
					property_management_percent, maintenance_percent, capex_percent,
					monthly_utilities, other_monthly_expenses, appreciation_rate_percent,
					door_count, bedrooms, bathrooms, sqft, year_built,
					batch_id, created_at, updated_at, is_active
				) VALUES (
					$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
					$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $28, true
				)`,
				uuid.New().String(),
				property.Name,
				property.Address,
				property.PurchasePrice,
				property.IsCashPurchase,
				property.DownPaymentPercent,
				property.InterestRate,
				property.LoanTermYears,
				property.ClosingCostPercent,
				property.MonthlyRent,
				property.OtherMonthlyIncome,
				property.VacancyRatePercent,
				property.AnnualPropertyTax,
				property.MonthlyInsurance,
				property.MonthlyHOA,
				property.PropertyManagementPercent,
				property.MaintenancePercent,
				property.CapExPercent,
				property.MonthlyUtilities,
				property.OtherMonthlyExpenses,
				property.AppreciationRatePercent,
				doors,
				property.Bedrooms,
				property.Bathrooms,
				property.Sqft,
				property.YearBuilt,
				property.BatchID,
				now,
			)

			if err != nil {
				result.FailedCount++
				result.Errors = append(result.Errors, fmt.Sprintf("property %s: %v", property.Name, err))
			} else {
				result.InsertedCount++
			}
		}
		return nil
	})

	if err != nil {
		return result, fmt.Errorf("bulk insert failed: %w", err)
	}

	return result, nil
}

const propertyColumns = `
	id, name, address, purchase_price, is_cash_purchase, down_payment_percent,
	interest_rate, loan_term_years, closing_cost_percent,
	monthly_rent, other_monthly_income, vacancy_rate_percent,
	annual_property_tax, monthly_insurance, monthly_hoa,
	property_management_percent, maintenance_percent, capex_percent,
	monthly_utilities, other_monthly_expenses, appreciation_rate_percent,
	door_count, bedrooms, bathrooms, sqft, year_built,
	created_at, updated_at`

// GetByID retrieves a property by ID. Returns nil when no row exists.
func (r *PropertyRepository) GetByID(ctx context.Context, id string) (*models.PropertyInput, error) {
	query := "SELECT " + propertyColumns + " FROM properties WHERE id = $1 AND is_active = true"

	property, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return property, nil
}

// GetByBatchID retrieves all properties from a specific batch.
func (r *PropertyRepository) GetByBatchID(ctx context.Context, batchID string) ([]*models.PropertyInput, error) {
	query := "SELECT " + propertyColumns + " FROM properties WHERE batch_id = $1 AND is_active = true ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// GetAllActive retrieves all active properties.
func (r *PropertyRepository) GetAllActive(ctx context.Context) ([]*models.PropertyInput, error) {
	query := "SELECT " + propertyColumns + " FROM properties WHERE is_active = true ORDER BY created_at"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	return scanProperties(rows)
}

// Deactivate soft-deletes a property.
func (r *PropertyRepository) Deactivate(ctx context.Context, id string) error {
	affected, err := r.db.ExecContext(ctx,
		"UPDATE properties SET is_active = false, updated_at = $1 WHERE id = $2",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate property: %w", err)
	}
	if affected == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CountByBatchID returns the number of properties in a batch.
func (r *PropertyRepository) CountByBatchID(ctx context.Context, batchID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties WHERE batch_id = $1", batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

func scanProperty(row pgx.Row) (*models.PropertyInput, error) {
	var p models.PropertyInput
	err := row.Scan(
		&p.ID, &p.Name, &p.Address, &p.PurchasePrice, &p.IsCashPurchase, &p.DownPaymentPercent,
		&p.InterestRate, &p.LoanTermYears, &p.ClosingCostPercent,
		&p.MonthlyRent, &p.OtherMonthlyIncome, &p.VacancyRatePercent,
		&p.AnnualPropertyTax, &p.MonthlyInsurance, &p.MonthlyHOA,
		&p.PropertyManagementPercent, &p.MaintenancePercent, &p.CapExPercent,
		&p.MonthlyUtilities, &p.OtherMonthlyExpenses, &p.AppreciationRatePercent,
		&p.DoorCount, &p.Bedrooms, &p.Bathrooms, &p.Sqft, &p.YearBuilt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.PropertyInput, error) {
	var properties []*models.PropertyInput
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, property)
	}
	return properties, nil
}
