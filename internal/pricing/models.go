// Package pricing provides the read-mostly reference data the estimator
// consumes: vignette product catalogs, flat section-toll estimates, fuel and
// electricity prices, and currency conversion rates.
package pricing

import (
	"errors"

	"github.com/tollroute/tollroute/internal/analysis"
)

// ErrNoData indicates the repository has no reference data for the query.
// Callers degrade to "no standard price table" output instead of failing.
var ErrNoData = errors.New("no reference data")

// VignetteProduct is one purchasable vignette option in a country's catalog.
type VignetteProduct struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	DurationDays int     `json:"durationDays"`

	// VehicleClasses and Powertrains tag products restricted to specific
	// vehicles. Untagged products are generic and match any vehicle at a
	// lower score.
	VehicleClasses []analysis.VehicleClass `json:"vehicleClasses,omitempty"`
	Powertrains    []analysis.Powertrain   `json:"powertrains,omitempty"`

	OfficialURL string `json:"officialUrl,omitempty"`
}

// FuelPrices holds per-country average pump and charging prices.
type FuelPrices struct {
	PetrolPerLitre    float64 `json:"petrolPerLitre"`
	DieselPerLitre    float64 `json:"dieselPerLitre"`
	ElectricityPerKWh float64 `json:"electricityPerKwh"`
	Currency          string  `json:"currency"`
}

// PricePerUnit returns the relevant price for the given powertrain.
// Hybrids are priced as petrol.
func (f FuelPrices) PricePerUnit(p analysis.Powertrain) float64 {
	switch p {
	case analysis.PowertrainDiesel:
		return f.DieselPerLitre
	case analysis.PowertrainElectric:
		return f.ElectricityPerKWh
	default:
		return f.PetrolPerLitre
	}
}
