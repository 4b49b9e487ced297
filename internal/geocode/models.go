// Package geocode resolves free-text place names to coordinates using the
// OpenRouteService geocoding API, with a pluggable cache in front.
package geocode

import "errors"

// Sentinel errors for geocoding operations.
var (
	// ErrNotFound indicates no place matched the query.
	ErrNotFound = errors.New("no geocoding results for query")
	// ErrProviderUnavailable indicates the geocoding provider is down.
	ErrProviderUnavailable = errors.New("geocoding provider unavailable")
)

// Place is a resolved location.
type Place struct {
	// Label is the provider's display name for the place.
	Label string `json:"label"`

	// CountryCode is the ISO 3166-1 alpha-2 country code, upper case.
	CountryCode string `json:"country_code"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// Confidence is the provider's match confidence in [0, 1].
	Confidence float64 `json:"confidence"`
}
