// Package utils provides utility functions for the rental analysis engine.
package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rental-analysis-engine/internal/models"
)

// CSVParser errors
var (
	ErrEmptyCSV       = errors.New("CSV content is empty")
	ErrMissingColumns = errors.New("missing required columns")
	ErrNoDataRows     = errors.New("CSV file contains no data rows")
	ErrInvalidRowData = errors.New("invalid row data")
)

// RequiredColumns defines the columns that must be present in the CSV.
var RequiredColumns = []string{
	"name",
	"purchase_price",
	"monthly_rent",
}

// ColumnAliases maps alternative column names to standard names.
var ColumnAliases = map[string]string{
	// name aliases
	"property":      "name",
	"property_name": "name",
	"propertyname":  "name",
	"title":         "name",

	// address aliases
	"street":           "address",
	"street_address":   "address",
	"full_address":     "address",
	"property_address": "address",

	// purchase_price aliases
	"price":          "purchase_price",
	"purchaseprice":  "purchase_price",
	"purchase price": "purchase_price",
	"list_price":     "purchase_price",
	"listprice":      "purchase_price",
	"asking_price":   "purchase_price",

	// monthly_rent aliases
	"rent":         "monthly_rent",
	"monthlyrent":  "monthly_rent",
	"monthly rent": "monthly_rent",
	"annual_rent":  "monthly_rent", // Will divide by 12
	"annualrent":   "monthly_rent",
	"yearly_rent":  "monthly_rent",

	// down_payment_percent aliases
	"down_payment":       "down_payment_percent",
	"downpayment":        "down_payment_percent",
	"down payment":       "down_payment_percent",
	"down_payment_pct":   "down_payment_percent",
	"downpaymentpercent": "down_payment_percent",

	// interest_rate aliases
	"rate":          "interest_rate",
	"interestrate":  "interest_rate",
	"interest rate": "interest_rate",
	"apr":           "interest_rate",

	// loan_term_years aliases
	"loan_term":  "loan_term_years",
	"loanterm":   "loan_term_years",
	"term":       "loan_term_years",
	"term_years": "loan_term_years",

	// annual_property_tax aliases
	"property_tax": "annual_property_tax",
	"propertytax":  "annual_property_tax",
	"tax":          "annual_property_tax",
	"taxes":        "annual_property_tax",

	// monthly_insurance aliases
	"insurance":         "monthly_insurance",
	"monthlyinsurance":  "monthly_insurance",
	"monthly insurance": "monthly_insurance",

	// vacancy_rate_percent aliases
	"vacancy":         "vacancy_rate_percent",
	"vacancy_rate":    "vacancy_rate_percent",
	"vacancyrate":     "vacancy_rate_percent",
	"vacancy_percent": "vacancy_rate_percent",

	// door_count aliases
	"doors":      "door_count",
	"units":      "door_count",
	"unit_count": "door_count",
	"doorcount":  "door_count",
}

// CSVParser handles parsing of property CSV files.
type CSVParser struct {
	columnMapping   map[string]int
	originalHeaders map[string]string // Maps normalized column name to original header
}

// NewCSVParser creates a new CSV parser instance.
func NewCSVParser() *CSVParser {
	return &CSVParser{
		columnMapping:   make(map[string]int),
		originalHeaders: make(map[string]string),
	}
}

// ParseProperties parses CSV content and returns a slice of PropertyCreate objects.
func (p *CSVParser) ParseProperties(content string, batchID string) ([]*models.PropertyCreate, []error) {
	if strings.TrimSpace(content) == "" {
		return nil, []error{ErrEmptyCSV}
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Read header
	header, err := reader.Read()
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read header: %w", err)}
	}

	// Build column mapping
	if err := p.buildColumnMapping(header); err != nil {
		return nil, []error{err}
	}

	// Parse data rows
	var properties []*models.PropertyCreate
	var parseErrors []error
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		property, err := p.parseRow(record, batchID)
		if err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		// Validate property
		if err := models.ValidatePropertyCreate(property); err != nil {
			parseErrors = append(parseErrors, fmt.Errorf("line %d: %w", lineNum, err))
			continue
		}

		properties = append(properties, property)
	}

	if len(properties) == 0 && len(parseErrors) > 0 {
		return nil, append([]error{ErrNoDataRows}, parseErrors...)
	}

	return properties, parseErrors
}

// buildColumnMapping creates a mapping of standard column names to their indices.
func (p *CSVParser) buildColumnMapping(header []string) error {
	p.columnMapping = make(map[string]int)
	p.originalHeaders = make(map[string]string)

	for i, col := range header {
		// Normalize column name
		normalized := strings.ToLower(strings.TrimSpace(col))
		original := normalized

		// Apply alias if exists
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}

		p.columnMapping[normalized] = i
		p.originalHeaders[normalized] = original // Store original header name
	}

	// Check for required columns
	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := p.columnMapping[required]; !ok {
			missing = append(missing, required)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return nil
}

// parseRow parses a single CSV row into a PropertyCreate object. Required
// columns must parse; optional columns fall back to sensible financing
// defaults when absent or blank.
func (p *CSVParser) parseRow(record []string, batchID string) (*models.PropertyCreate, error) {
	getValue := func(column string) (string, bool) {
		idx, ok := p.columnMapping[column]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	name, ok := getValue("name")
	if !ok || name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidRowData)
	}

	priceStr, _ := getValue("purchase_price")
	price, err := parseFloat(priceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid purchase_price: %w", err)
	}

	rentStr, _ := getValue("monthly_rent")
	rent, err := parseFloat(rentStr)
	if err != nil {
		return nil, fmt.Errorf("invalid monthly_rent: %w", err)
	}

	// Check if the original column was annual rent - if so, divide by 12
	if originalHeader, ok := p.originalHeaders["monthly_rent"]; ok {
		if strings.Contains(originalHeader, "annual") || strings.Contains(originalHeader, "yearly") {
			rent = rent / 12.0
		}
	}

	property := &models.PropertyCreate{
		Name:          name,
		PurchasePrice: price,
		MonthlyRent:   rent,

		// Financing defaults for rows that only carry price and rent
		DownPaymentPercent: 20,
		InterestRate:       7,
		LoanTermYears:      30,
		VacancyRatePercent: 5,
		DoorCount:          1,

		BatchID: batchID,
	}

	if v, ok := getValue("address"); ok && v != "" {
		property.Address = v
	}
	if v, ok := getValue("down_payment_percent"); ok && v != "" {
		if property.DownPaymentPercent, err = parseFloat(v); err != nil {
			return nil, fmt.Errorf("invalid down_payment_percent: %w", err)
		}
	}
	if v, ok := getValue("interest_rate"); ok && v != "" {
		if property.InterestRate, err = parseFloat(v); err != nil {
			return nil, fmt.Errorf("invalid interest_rate: %w", err)
		}
	}
	if v, ok := getValue("loan_term_years"); ok && v != "" {
		if property.LoanTermYears, err = parseInt(v); err != nil {
			return nil, fmt.Errorf("invalid loan_term_years: %w", err)
		}
	}
	if v, ok := getValue("annual_property_tax"); ok && v != "" {
		if property.AnnualPropertyTax, err = parseFloat(v); err != nil {
			return nil, fmt.Errorf("invalid annual_property_tax: %w", err)
		}
	}
	if v, ok := getValue("monthly_insurance"); ok && v != "" {
		if property.MonthlyInsurance, err = parseFloat(v); err != nil {
			return nil, fmt.Errorf("invalid monthly_insurance: %w", err)
		}
	}
	if v, ok := getValue("vacancy_rate_percent"); ok && v != "" {
		if property.VacancyRatePercent, err = parseFloat(v); err != nil {
			return nil, fmt.Errorf("invalid vacancy_rate_percent: %w", err)
		}
	}
	if v, ok := getValue("door_count"); ok && v != "" {
		if property.DoorCount, err = parseInt(v); err != nil {
			return nil, fmt.Errorf("invalid door_count: %w", err)
		}
	}

	return property, nil
}

// parseFloat parses a string to float64, handling common formats.
func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	// Remove commas and currency symbols
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)

	return strconv.ParseFloat(s, 64)
}

// parseInt parses a string to int, handling common formats.
func parseInt(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}

	// Remove commas
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Handle float strings (e.g., "30.0")
	if strings.Contains(s, ".") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		return int(f), nil
	}

	return strconv.Atoi(s)
}

// ValidateCSVStructure performs a quick validation of CSV structure without full parsing.
func ValidateCSVStructure(content string) (*CSVValidationResult, error) {
	result := &CSVValidationResult{
		Valid:          false,
		RowCount:       0,
		Columns:        []string{},
		MissingColumns: []string{},
		Errors:         []string{},
	}

	if strings.TrimSpace(content) == "" {
		result.Errors = append(result.Errors, "empty file")
		return result, nil
	}

	reader := csv.NewReader(strings.NewReader(content))

	// Read header
	header, err := reader.Read()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read header: %v", err))
		return result, nil
	}

	// Normalize and check columns
	normalizedColumns := make(map[string]bool)
	for _, col := range header {
		normalized := strings.ToLower(strings.TrimSpace(col))
		if alias, ok := ColumnAliases[normalized]; ok {
			normalized = alias
		}
		normalizedColumns[normalized] = true
		result.Columns = append(result.Columns, col)
	}

	// Check for required columns
	for _, required := range RequiredColumns {
		if !normalizedColumns[required] {
			result.MissingColumns = append(result.MissingColumns, required)
		}
	}

	// Count rows
	for {
		_, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row error: %v", err))
			continue
		}
		result.RowCount++
	}

	result.Valid = len(result.MissingColumns) == 0 && result.RowCount > 0

	return result, nil
}

// CSVValidationResult contains the results of CSV validation.
type CSVValidationResult struct {
	Valid          bool     `json:"valid"`
	RowCount       int      `json:"row_count"`
	Columns        []string `json:"columns"`
	MissingColumns []string `json:"missing_columns"`
	Errors         []string `json:"errors"`
}
