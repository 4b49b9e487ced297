// Package analysis turns a raw driving-directions response into the
// country-by-country toll and vignette decision set that the rest of the
// service enriches: which countries on the route require a vignette, which
// levy distance-based section tolls, and which advisories apply.
package analysis

import (
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// Sentinel errors for route analysis. These indicate unrecoverable
// upstream-data problems, not validation failures, and surface as 4xx/5xx
// at the API boundary.
var (
	// ErrNoRouteFeature indicates the directions response carried no route.
	ErrNoRouteFeature = errors.New("directions response contains no route feature")
	// ErrNoGeometry indicates the route feature carried no coordinates.
	ErrNoGeometry = errors.New("route feature contains no geometry")
	// ErrNoCountryInfo indicates the countryinfo extra was missing or empty.
	ErrNoCountryInfo = errors.New("route feature contains no country info ranges")
)

// VehicleClass categorizes the vehicle for toll and vignette purposes.
type VehicleClass string

const (
	VehicleCar        VehicleClass = "CAR"
	VehicleMotorcycle VehicleClass = "MOTORCYCLE"
	VehicleVan        VehicleClass = "VAN"
	VehicleCommercial VehicleClass = "COMMERCIAL"
	VehicleUnknown    VehicleClass = "UNKNOWN"
)

// Powertrain identifies the vehicle's energy source.
type Powertrain string

const (
	PowertrainPetrol   Powertrain = "PETROL"
	PowertrainDiesel   Powertrain = "DIESEL"
	PowertrainElectric Powertrain = "ELECTRIC"
	PowertrainHybrid   Powertrain = "HYBRID"
)

// EmissionClassZero is forced for electric vehicles during request
// normalization regardless of user input.
const EmissionClassZero = "ZERO_EMISSION"

// ChannelPreference selects how a Great Britain crossing should be made.
type ChannelPreference string

const (
	ChannelAuto   ChannelPreference = "AUTO"
	ChannelFerry  ChannelPreference = "FERRY"
	ChannelTunnel ChannelPreference = "TUNNEL"
)

// Request carries the normalized trip parameters. It is read-only input to
// every rule evaluation; the analyzer never mutates it.
type Request struct {
	Start string
	End   string

	TripDate *time.Time

	VehicleClass  VehicleClass
	Powertrain    Powertrain
	GrossWeightKg int
	AxleCount     int
	EmissionClass string

	AvoidTolls        bool
	ChannelPreference ChannelPreference
}

// HeavyVehicleThresholdKg is the gross weight above which most national
// vignette systems reclassify a vehicle out of the passenger category.
const HeavyVehicleThresholdKg = 3500

// CountrySummary is the per-country analysis output. Produced once per
// country per analysis and immutable after creation.
type CountrySummary struct {
	CountryCode           string           `json:"countryCode"`
	HighwayDistanceMeters int              `json:"highwayDistanceMeters"`
	RequiresVignette      bool             `json:"requiresVignette"`
	RequiresSectionToll   bool             `json:"requiresSectionToll"`
	Notices               []string         `json:"notices"`
	RouteSegments         []orb.LineString `json:"routeSegments"`
}

// SectionTollNotice is a structured advisory for a country that levies
// distance-based tolls. Zero, one, or many may attach to a country.
type SectionTollNotice struct {
	CountryCode string `json:"countryCode"`
	Label       string `json:"label"`
	Description string `json:"description"`
	OfficialURL string `json:"officialUrl,omitempty"`
}

// Geometry is the route LineString in GeoJSON coordinate order ([lon, lat]),
// kept identical to the provider geometry so consumers can render segments
// without transformation.
type Geometry struct {
	Type        string         `json:"type"`
	Coordinates orb.LineString `json:"coordinates"`
}

// BorderCrossing is one border transition along the route, in travel order.
type BorderCrossing struct {
	FromCountryCode string `json:"fromCountryCode"`
	ToCountryCode   string `json:"toCountryCode"`
}

// Result is the aggregate route analysis handed downstream to the estimator,
// the trip shield, and the API layer.
type Result struct {
	RouteGeoJSON        Geometry            `json:"routeGeoJson"`
	TotalDistanceMeters float64             `json:"totalDistanceMeters"`
	Countries           []CountrySummary    `json:"countries"`
	SectionTollNotices  []SectionTollNotice `json:"sectionTollNotices"`
	BorderCrossings     []BorderCrossing    `json:"borderCrossings,omitempty"`

	// InformationalOnly marks the analysis as advisory. Obligations and
	// prices come from reference tables, not from toll authorities, so the
	// result is never a compliance statement.
	InformationalOnly bool `json:"informationalOnly"`

	// DistanceFromSummary is true when the provider-reported summary
	// distance was used, false when the great-circle fallback applied.
	DistanceFromSummary bool `json:"-"`
}

// CountryCodes returns the route's country codes in order of first
// appearance along the route.
func (r *Result) CountryCodes() []string {
	codes := make([]string, 0, len(r.Countries))
	for _, c := range r.Countries {
		codes = append(codes, c.CountryCode)
	}
	return codes
}

// Country returns the summary for the given code, or nil.
func (r *Result) Country(code string) *CountrySummary {
	for i := range r.Countries {
		if r.Countries[i].CountryCode == code {
			return &r.Countries[i]
		}
	}
	return nil
}
