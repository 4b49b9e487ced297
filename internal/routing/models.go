// Package routing provides driving-directions retrieval for trip analysis.
package routing

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the directions provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("directions provider unavailable")
	// ErrNoRouteFound indicates no drivable route exists between the given points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidCoordinates indicates the provided coordinates are invalid or out of range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider defines the interface for directions providers.
type Provider interface {
	// GetDirections retrieves a driving route between two points, including
	// the per-coordinate country and road-category extras the analysis
	// pipeline depends on.
	GetDirections(ctx context.Context, req DirectionsRequest) (*Directions, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Coordinate represents a geographic point.
type Coordinate struct {
	Lat float64
	Lon float64
}

// DirectionsRequest is the request for computing a driving route.
type DirectionsRequest struct {
	Origin      Coordinate
	Destination Coordinate

	// AvoidTolls asks the provider to prefer toll-free roads where possible.
	AvoidTolls bool
}

// ExtraRange tags the half-open coordinate index range [Start, End) with a
// provider-specific value (a country id or a road-category code).
type ExtraRange struct {
	Start int
	End   int
	Value int
}

// Contains reports whether the coordinate index i falls inside the range.
func (r ExtraRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Directions is a single driving route with the extras needed for toll
// analysis. Geometry is in GeoJSON [lon, lat] order and immutable once
// returned by the provider.
type Directions struct {
	Geometry orb.LineString

	// DistanceMeters is the provider-reported summary distance, 0 when the
	// provider omitted a summary.
	DistanceMeters float64
	// DurationSeconds is the provider-reported driving time.
	DurationSeconds float64

	// CountryInfo tags coordinate index ranges with provider country ids.
	CountryInfo []ExtraRange
	// WayCategory tags coordinate index ranges with road-category codes.
	WayCategory []ExtraRange

	Provider  string
	FetchedAt time.Time
}

// Error provides detailed error information from the directions provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}
