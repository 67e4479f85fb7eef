package analysis

import "rental-analysis-engine/internal/models"

// Itemized closing-cost assumptions. Fixed third-party fees are rough
// national figures; the rollup exists to sanity-check the flat percentage on
// the input, not to replace a lender estimate.
const (
	originationPercent     = 1.0
	titleInsurancePercent  = 0.5
	appraisalFee           = 550.0
	inspectionFee          = 400.0
	recordingFee           = 150.0
	prepaidTaxMonths       = 6
	prepaidInsuranceMonths = 12
)

// ClosingCostBreakdown itemizes estimated closing costs and reconciles the
// total against the property's flat closing-cost percentage.
type ClosingCostBreakdown struct {
	LoanOrigination float64 `json:"loan_origination"`
	TitleInsurance  float64 `json:"title_insurance"`
	ThirdPartyFees  float64 `json:"third_party_fees"`
	PrepaidEscrow   float64 `json:"prepaid_escrow"`
	EstimatedTotal  float64 `json:"estimated_total"`
	FlatEstimate    float64 `json:"flat_estimate"`
	Difference      float64 `json:"difference"`
}

// EstimateClosingCosts builds an itemized closing-cost estimate for a
// property. A cash purchase has no origination fee. The Difference field is
// itemized minus flat; a large gap suggests the flat percentage needs
// adjusting.
func EstimateClosingCosts(input models.PropertyInput) ClosingCostBreakdown {
	var origination float64
	if !input.IsCashPurchase {
		origination = input.LoanAmount() * (originationPercent / 100)
	}

	titleInsurance := input.PurchasePrice * (titleInsurancePercent / 100)
	thirdParty := appraisalFee + inspectionFee + recordingFee

	prepaidEscrow := input.AnnualPropertyTax/12*prepaidTaxMonths +
		input.MonthlyInsurance*prepaidInsuranceMonths

	estimated := origination + titleInsurance + thirdParty + prepaidEscrow
	flat := input.ClosingCosts()

	return ClosingCostBreakdown{
		LoanOrigination: origination,
		TitleInsurance:  titleInsurance,
		ThirdPartyFees:  thirdParty,
		PrepaidEscrow:   prepaidEscrow,
		EstimatedTotal:  estimated,
		FlatEstimate:    flat,
		Difference:      estimated - flat,
	}
}
