package models

import "github.com/tollroute/tollroute/internal/pricing"

// CountryMetadata describes the toll system of one modeled country.
type CountryMetadata struct {
	CountryCode string `json:"countryCode"`

	// VignetteRequired is true when the country sells time-based vignettes
	// for its highway network.
	VignetteRequired bool `json:"vignetteRequired"`

	// SectionTolls is true when the country levies distance-based tolls.
	SectionTolls bool `json:"sectionTolls"`

	// VignetteProducts lists the purchasable vignette options, when
	// reference pricing data is loaded.
	VignetteProducts []pricing.VignetteProduct `json:"vignetteProducts,omitempty"`
}

// Countries is the response for GET /v1/metadata/countries.
type Countries struct {
	Items []CountryMetadata `json:"items"`
}

// Enums represents the enum values used by the API.
type Enums struct {
	VehicleClasses     []VehicleClass      `json:"vehicleClasses"`
	Powertrains        []Powertrain        `json:"powertrains"`
	ChannelPreferences []ChannelPreference `json:"channelPreferences"`
	ConfidenceLevels   []ConfidenceLevel   `json:"confidenceLevels"`
}
