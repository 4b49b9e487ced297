// Package models provides request and response models for the TollRoute API.
package models

import "time"

// Point represents a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// VehicleClass is the coarse vehicle category used for obligations and
// pricing.
type VehicleClass string

const (
	VehicleClassCar        VehicleClass = "CAR"
	VehicleClassMotorcycle VehicleClass = "MOTORCYCLE"
	VehicleClassVan        VehicleClass = "VAN"
	VehicleClassCommercial VehicleClass = "COMMERCIAL"
	VehicleClassUnknown    VehicleClass = "UNKNOWN"
)

// Powertrain is the vehicle's energy source.
type Powertrain string

const (
	PowertrainPetrol   Powertrain = "PETROL"
	PowertrainDiesel   Powertrain = "DIESEL"
	PowertrainElectric Powertrain = "ELECTRIC"
	PowertrainHybrid   Powertrain = "HYBRID"
)

// ChannelPreference is the preferred way of crossing the English Channel.
type ChannelPreference string

const (
	ChannelPreferenceAuto   ChannelPreference = "AUTO"
	ChannelPreferenceFerry  ChannelPreference = "FERRY"
	ChannelPreferenceTunnel ChannelPreference = "TUNNEL"
)

// ConfidenceLevel is the trip readiness confidence band.
type ConfidenceLevel string

const (
	ConfidenceLevelHigh   ConfidenceLevel = "high"
	ConfidenceLevelMedium ConfidenceLevel = "medium"
	ConfidenceLevelLow    ConfidenceLevel = "low"
)

// HealthStatus represents the health status of a service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with custom JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	// Remove quotes
	s := string(data[1 : len(data)-1])
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
