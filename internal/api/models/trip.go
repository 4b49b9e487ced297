package models

import (
	"time"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/estimate"
	"github.com/tollroute/tollroute/internal/shield"
)

// VehicleSpec describes the vehicle the trip will be driven with.
type VehicleSpec struct {
	Class         VehicleClass `json:"class,omitempty"`
	Powertrain    Powertrain   `json:"powertrain,omitempty"`
	GrossWeightKg int          `json:"grossWeightKg,omitempty"`
	AxleCount     int          `json:"axleCount,omitempty"`
	EmissionClass string       `json:"emissionClass,omitempty"`
}

// TripPreferences carries the user's routing preferences.
type TripPreferences struct {
	AvoidTolls        bool              `json:"avoidTolls,omitempty"`
	ChannelPreference ChannelPreference `json:"channelPreference,omitempty"`
}

// TripAnalyzeRequest is the request body for POST /v1/trips:analyze.
// Origin and destination accept either coordinates or a free-text place
// query, which is geocoded server-side.
type TripAnalyzeRequest struct {
	Origin      *Point `json:"origin,omitempty"`
	OriginQuery string `json:"originQuery,omitempty"`

	Destination      *Point `json:"destination,omitempty"`
	DestinationQuery string `json:"destinationQuery,omitempty"`

	// TripDate is the planned departure date in YYYY-MM-DD format.
	TripDate string `json:"tripDate,omitempty"`

	Vehicle     VehicleSpec     `json:"vehicle"`
	Preferences TripPreferences `json:"preferences"`
}

// Validate checks the request and returns field errors for anything a
// client can fix.
func (r *TripAnalyzeRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Origin == nil && r.OriginQuery == "" {
		errs = append(errs, FieldError{Field: "origin", Message: "either origin or originQuery is required"})
	}
	if r.Destination == nil && r.DestinationQuery == "" {
		errs = append(errs, FieldError{Field: "destination", Message: "either destination or destinationQuery is required"})
	}
	if r.Origin != nil {
		if r.Origin.Lat < -90 || r.Origin.Lat > 90 || r.Origin.Lon < -180 || r.Origin.Lon > 180 {
			errs = append(errs, FieldError{Field: "origin", Message: "coordinates out of range"})
		}
	}
	if r.Destination != nil {
		if r.Destination.Lat < -90 || r.Destination.Lat > 90 || r.Destination.Lon < -180 || r.Destination.Lon > 180 {
			errs = append(errs, FieldError{Field: "destination", Message: "coordinates out of range"})
		}
	}
	if r.TripDate != "" {
		if _, err := time.Parse("2006-01-02", r.TripDate); err != nil {
			errs = append(errs, FieldError{Field: "tripDate", Message: "must be a date in YYYY-MM-DD format"})
		}
	}
	if r.Vehicle.GrossWeightKg < 0 {
		errs = append(errs, FieldError{Field: "vehicle.grossWeightKg", Message: "must not be negative"})
	}
	if r.Vehicle.AxleCount < 0 {
		errs = append(errs, FieldError{Field: "vehicle.axleCount", Message: "must not be negative"})
	}

	switch r.Vehicle.Class {
	case "", VehicleClassCar, VehicleClassMotorcycle, VehicleClassVan, VehicleClassCommercial, VehicleClassUnknown:
	default:
		errs = append(errs, FieldError{Field: "vehicle.class", Message: "must be one of CAR, MOTORCYCLE, VAN, COMMERCIAL, UNKNOWN"})
	}
	switch r.Vehicle.Powertrain {
	case "", PowertrainPetrol, PowertrainDiesel, PowertrainElectric, PowertrainHybrid:
	default:
		errs = append(errs, FieldError{Field: "vehicle.powertrain", Message: "must be one of PETROL, DIESEL, ELECTRIC, HYBRID"})
	}
	switch r.Preferences.ChannelPreference {
	case "", ChannelPreferenceAuto, ChannelPreferenceFerry, ChannelPreferenceTunnel:
	default:
		errs = append(errs, FieldError{Field: "preferences.channelPreference", Message: "must be one of AUTO, FERRY, TUNNEL"})
	}

	return errs
}

// Normalize converts the validated request into the analysis domain request,
// applying defaults. Electric vehicles always analyze as zero-emission
// regardless of the submitted emission class.
func (r *TripAnalyzeRequest) Normalize() analysis.Request {
	req := analysis.Request{
		VehicleClass:      analysis.VehicleClass(r.Vehicle.Class),
		Powertrain:        analysis.Powertrain(r.Vehicle.Powertrain),
		GrossWeightKg:     r.Vehicle.GrossWeightKg,
		AxleCount:         r.Vehicle.AxleCount,
		EmissionClass:     r.Vehicle.EmissionClass,
		AvoidTolls:        r.Preferences.AvoidTolls,
		ChannelPreference: analysis.ChannelPreference(r.Preferences.ChannelPreference),
	}

	if req.VehicleClass == "" {
		req.VehicleClass = analysis.VehicleUnknown
	}
	if req.Powertrain == "" {
		req.Powertrain = analysis.PowertrainPetrol
	}
	if req.ChannelPreference == "" {
		req.ChannelPreference = analysis.ChannelAuto
	}
	if req.Powertrain == analysis.PowertrainElectric {
		req.EmissionClass = analysis.EmissionClassZero
	}

	if r.TripDate != "" {
		if date, err := time.Parse("2006-01-02", r.TripDate); err == nil {
			req.TripDate = &date
		}
	}

	return req
}

// ResolvedPlace echoes where a trip endpoint resolved to.
type ResolvedPlace struct {
	Label       string `json:"label,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	Point       Point  `json:"point"`
}

// RouteOverview summarizes the driving route used in the analysis.
type RouteOverview struct {
	GeoJSON             analysis.Geometry `json:"geoJson"`
	OverviewPolyline    string            `json:"overviewPolyline,omitempty"`
	TotalDistanceMeters float64           `json:"totalDistanceMeters"`
	DurationSeconds     float64           `json:"durationSeconds,omitempty"`
	Provider            string            `json:"provider"`
}

// TripAnalysisResponse is the response body for POST /v1/trips:analyze.
type TripAnalysisResponse struct {
	GeneratedAt Timestamp `json:"generatedAt"`

	Origin      ResolvedPlace `json:"origin"`
	Destination ResolvedPlace `json:"destination"`

	Vehicle     VehicleSpec     `json:"vehicle"`
	Preferences TripPreferences `json:"preferences"`
	TripDate    string          `json:"tripDate,omitempty"`

	Route              RouteOverview                `json:"route"`
	Countries          []analysis.CountrySummary    `json:"countries"`
	SectionTollNotices []analysis.SectionTollNotice `json:"sectionTollNotices"`
	BorderCrossings    []analysis.BorderCrossing    `json:"borderCrossings,omitempty"`

	// InformationalOnly flags the whole analysis as advisory, never a
	// compliance statement.
	InformationalOnly bool `json:"informationalOnly"`

	Estimate  *estimate.TripEstimate `json:"estimate,omitempty"`
	Insights  *shield.Insights       `json:"insights,omitempty"`
	Readiness *shield.Readiness      `json:"readiness,omitempty"`
}
