// Package estimate computes an advisory trip budget from the route analysis
// and the reference price tables.
package estimate

// NoPriceTableNote marks a breakdown line whose country has no reference
// price data.
const NoPriceTableNote = "no standard price table"

// VignetteCost is one selected vignette product on the trip budget.
type VignetteCost struct {
	CountryCode string  `json:"countryCode"`
	ProductID   string  `json:"productId,omitempty"`
	Label       string  `json:"label,omitempty"`
	PriceEUR    float64 `json:"priceEur"`
	Note        string  `json:"note,omitempty"`
}

// SectionTollCost is the flat per-trip toll estimate for one country.
type SectionTollCost struct {
	CountryCode string  `json:"countryCode"`
	EstimateEUR float64 `json:"estimateEur"`
	Note        string  `json:"note,omitempty"`
}

// FuelEstimate is the combustion-energy sub-estimate. Exactly one of
// FuelEstimate or ElectricEstimate appears on a TripEstimate, matching the
// request powertrain.
type FuelEstimate struct {
	LitresNeeded       float64  `json:"litresNeeded"`
	AvgPricePerLitre   float64  `json:"avgPricePerLitreEur"`
	CostEUR            float64  `json:"costEur"`
	BestTopUpCountry   string   `json:"bestTopUpCountry,omitempty"`
	SuggestedStops     []string `json:"suggestedStops,omitempty"`
}

// ElectricEstimate is the charging sub-estimate for electric powertrains.
type ElectricEstimate struct {
	KWhNeeded         float64  `json:"kwhNeeded"`
	AvgPricePerKWh    float64  `json:"avgPricePerKwhEur"`
	CostEUR           float64  `json:"costEur"`
	BestChargeCountry string   `json:"bestChargeCountry,omitempty"`
	SuggestedStops    []string `json:"suggestedStops,omitempty"`
}

// TripEstimate is the combined advisory budget for the trip.
type TripEstimate struct {
	TotalDistanceKm     float64           `json:"totalDistanceKm"`
	VignetteTotalEUR    float64           `json:"vignetteTotalEur"`
	Vignettes           []VignetteCost    `json:"vignettes,omitempty"`
	SectionTollTotalEUR float64           `json:"sectionTollTotalEur"`
	SectionTolls        []SectionTollCost `json:"sectionTolls,omitempty"`
	CombinedTotalEUR    float64           `json:"combinedTotalEur"`

	Fuel     *FuelEstimate     `json:"fuel,omitempty"`
	Electric *ElectricEstimate `json:"electric,omitempty"`

	// MissingPriceData lists country codes that lacked reference data;
	// the readiness synthesizer lowers confidence for each.
	MissingPriceData []string `json:"-"`
}
