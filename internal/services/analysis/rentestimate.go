package analysis

import "rental-analysis-engine/internal/models"

// Rent heuristic tuning. These are coarse national defaults; the estimate is
// a starting point for comparing against actual comps, not market data.
const (
	baseRentPerSqft       = 1.10
	bedroomAdjustPercent  = 8  // per bedroom above/below 2
	bathroomAdjustPercent = 5  // per full bath above 1
	olderHomeDiscount     = 10 // percent, built before 1980
	rentRangeSpread       = 0.10
	onePercentRule        = 0.01
)

// RentEstimate is a heuristic market-rent range for a property.
type RentEstimate struct {
	Low               float64 `json:"low"`
	Estimate          float64 `json:"estimate"`
	High              float64 `json:"high"`
	OnePercentOfPrice float64 `json:"one_percent_of_price"`
	RentPerSqft       float64 `json:"rent_per_sqft"`
}

// EstimateRent derives a rent range from the property's physical attributes:
// a base dollars-per-square-foot rate adjusted for bedroom and bathroom count
// and building age. Properties without square footage fall back to the 1%
// rule alone.
func EstimateRent(input models.PropertyInput) RentEstimate {
	onePercent := input.PurchasePrice * onePercentRule

	if input.Sqft <= 0 {
		return RentEstimate{
			Low:               onePercent * (1 - rentRangeSpread),
			Estimate:          onePercent,
			High:              onePercent * (1 + rentRangeSpread),
			OnePercentOfPrice: onePercent,
		}
	}

	rate := baseRentPerSqft

	if input.Bedrooms > 0 {
		rate *= 1 + float64(input.Bedrooms-2)*bedroomAdjustPercent/100
	}
	if input.Bathrooms > 1 {
		rate *= 1 + (input.Bathrooms-1)*bathroomAdjustPercent/100
	}
	if input.YearBuilt > 0 && input.YearBuilt < 1980 {
		rate *= 1 - olderHomeDiscount/100.0
	}
	if rate < 0 {
		rate = 0
	}

	estimate := input.Sqft * rate

	return RentEstimate{
		Low:               estimate * (1 - rentRangeSpread),
		Estimate:          estimate,
		High:              estimate * (1 + rentRangeSpread),
		OnePercentOfPrice: onePercent,
		RentPerSqft:       rate,
	}
}
