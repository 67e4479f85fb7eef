package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVParser_ValidFile(t *testing.T) {
	csvContent := `name,address,purchase_price,monthly_rent,down_payment_percent,interest_rate,loan_term_years,annual_property_tax,monthly_insurance,vacancy_rate_percent,door_count
Maple Duplex,412 Maple St,250000,1800,20,7.5,30,2400,150,8,2
Oak Fourplex,9 Oak Ave,480000,4400,25,7,30,5200,280,5,4`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch-001")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, properties, 2, "Expected 2 properties")

	// Verify first property
	assert.Equal(t, "Maple Duplex", properties[0].Name)
	assert.Equal(t, "412 Maple St", properties[0].Address)
	assert.Equal(t, float64(250000), properties[0].PurchasePrice)
	assert.Equal(t, float64(1800), properties[0].MonthlyRent)
	assert.Equal(t, float64(20), properties[0].DownPaymentPercent)
	assert.Equal(t, 30, properties[0].LoanTermYears)
	assert.Equal(t, 2, properties[0].DoorCount)
	assert.Equal(t, "test-batch-001", properties[0].BatchID)
}

func TestCSVParser_ColumnAliases(t *testing.T) {
	// Test with alternative column names (aliases)
	csvContent := `property_name,price,rent,down_payment,apr,term,units
Maple Duplex,250000,1800,20,7.5,30,2`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "batch-123")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, properties, 1, "Expected 1 property")

	assert.Equal(t, "Maple Duplex", properties[0].Name)
	assert.Equal(t, float64(250000), properties[0].PurchasePrice)
	assert.Equal(t, float64(7.5), properties[0].InterestRate)
	assert.Equal(t, 2, properties[0].DoorCount)
}

func TestCSVParser_AnnualRentConversion(t *testing.T) {
	csvContent := `name,purchase_price,annual_rent
Maple Duplex,250000,21600`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, properties, 1)

	assert.Equal(t, float64(1800), properties[0].MonthlyRent, "Annual rent converts to monthly")
}

func TestCSVParser_DefaultFinancing(t *testing.T) {
	csvContent := `name,purchase_price,monthly_rent
Maple Duplex,250000,1800`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, properties, 1)

	assert.Equal(t, float64(20), properties[0].DownPaymentPercent)
	assert.Equal(t, float64(7), properties[0].InterestRate)
	assert.Equal(t, 30, properties[0].LoanTermYears)
	assert.Equal(t, 1, properties[0].DoorCount)
}

func TestCSVParser_MissingRequiredColumns(t *testing.T) {
	// Missing monthly_rent column
	csvContent := `name,purchase_price
Maple Duplex,250000`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	assert.Empty(t, properties, "Expected no valid properties")
	assert.NotEmpty(t, errors, "Expected errors for missing columns")
}

func TestCSVParser_EmptyFile(t *testing.T) {
	csvContent := ``

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	assert.Empty(t, properties, "Expected no properties")
	assert.NotEmpty(t, errors, "Expected error for empty file")
}

func TestCSVParser_HeaderOnly(t *testing.T) {
	csvContent := `name,purchase_price,monthly_rent`

	parser := NewCSVParser()
	properties, _ := parser.ParseProperties(csvContent, "test-batch")

	assert.Empty(t, properties, "Expected no properties")
}

func TestCSVParser_NegativePrice(t *testing.T) {
	csvContent := `name,purchase_price,monthly_rent
Maple Duplex,-250000,1800`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	assert.Empty(t, properties, "Expected no valid properties")
	assert.NotEmpty(t, errors, "Expected validation error for negative price")
}

func TestCSVParser_PartiallyValidFile(t *testing.T) {
	// Mix of valid and invalid rows
	csvContent := `name,purchase_price,monthly_rent
Maple Duplex,250000,1800
Bad Row,not-a-number,1600
Oak Fourplex,480000,4400`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	assert.Len(t, properties, 2, "Expected 2 valid properties")
	assert.Len(t, errors, 1, "Expected 1 error for the unparseable price")
}

func TestCSVParser_CurrencyAndCommaFormats(t *testing.T) {
	csvContent := `name,purchase_price,monthly_rent
Maple Duplex,"$250,000","$1,800"`

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, properties, 1)

	assert.Equal(t, float64(250000), properties[0].PurchasePrice)
	assert.Equal(t, float64(1800), properties[0].MonthlyRent)
}

func TestCSVParser_WhitespaceHandling(t *testing.T) {
	csvContent := `name,purchase_price,monthly_rent
  Maple Duplex  ,  250000  ,  1800  `

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	require.Empty(t, errors, "Expected no parse errors")
	require.Len(t, properties, 1)

	assert.Equal(t, "Maple Duplex", properties[0].Name)
}

func TestCSVParser_LargeFile(t *testing.T) {
	// Generate CSV with 100 rows
	csvContent := "name,purchase_price,monthly_rent\n"
	for i := 1; i <= 100; i++ {
		csvContent += fmt.Sprintf("Property %03d,250000,1800\n", i)
	}

	parser := NewCSVParser()
	properties, errors := parser.ParseProperties(csvContent, "test-batch")

	assert.Empty(t, errors, "Expected no parse errors")
	assert.Len(t, properties, 100, "Expected 100 properties")
}

func TestValidateCSVStructure(t *testing.T) {
	csvContent := `name,purchase_price,monthly_rent
Maple Duplex,250000,1800
Oak Fourplex,480000,4400`

	result, err := ValidateCSVStructure(csvContent)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.RowCount)
	assert.Empty(t, result.MissingColumns)
}

func TestValidateCSVStructure_MissingColumns(t *testing.T) {
	csvContent := `name,address
Maple Duplex,412 Maple St`

	result, err := ValidateCSVStructure(csvContent)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Contains(t, result.MissingColumns, "purchase_price")
	assert.Contains(t, result.MissingColumns, "monthly_rent")
}
