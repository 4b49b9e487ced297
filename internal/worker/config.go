// Package worker provides background job processing for TollRoute.
package worker

import (
	"time"
)

// Corridor represents a popular trip corridor to prewarm.
type Corridor struct {
	// Name is the human-readable name of the corridor.
	Name string

	// Origin and Destination are the corridor endpoints.
	Origin      Point
	Destination Point

	// Priority determines prewarm order (lower = higher priority).
	Priority int
}

// Point represents a geographic coordinate.
type Point struct {
	Lat float64
	Lon float64
}

// RefreshConfig holds configuration for the refresh job.
type RefreshConfig struct {
	// Corridors are the trip corridors to prewarm.
	// If empty, uses DefaultCorridors.
	Corridors []Corridor

	// Countries are the country codes whose reference prices are warmed.
	// If empty, every modeled country is warmed.
	Countries []string

	// Concurrency is the number of concurrent prewarm operations.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each prewarm operation.
	// Default: 30 seconds
	Timeout time.Duration

	// PrewarmDirections enables prewarming the directions cache.
	// Default: true
	PrewarmDirections bool

	// RefreshPricing enables reloading reference prices from the repository.
	// Default: true
	RefreshPricing bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Corridors:         DefaultCorridors(),
		Concurrency:       3,
		Timeout:           30 * time.Second,
		PrewarmDirections: true,
		RefreshPricing:    true,
	}
}

// DefaultCorridors returns the default prewarm corridors. Focuses on the
// holiday routes where vignette and toll questions come up most.
func DefaultCorridors() []Corridor {
	return []Corridor{
		{
			Name:        "Munich - Salzburg",
			Priority:    1,
			Origin:      Point{Lat: 48.1351, Lon: 11.5820},
			Destination: Point{Lat: 47.8095, Lon: 13.0550},
		},
		{
			Name:        "Vienna - Graz",
			Priority:    1,
			Origin:      Point{Lat: 48.2082, Lon: 16.3721},
			Destination: Point{Lat: 47.0708, Lon: 15.4495},
		},
		{
			Name:        "Munich - Verona",
			Priority:    1,
			Origin:      Point{Lat: 48.1351, Lon: 11.5820},
			Destination: Point{Lat: 45.4384, Lon: 10.9916},
		},
		{
			Name:        "Zagreb - Split",
			Priority:    1,
			Origin:      Point{Lat: 45.8150, Lon: 15.9819},
			Destination: Point{Lat: 43.5081, Lon: 16.4402},
		},
		{
			Name:        "Prague - Vienna",
			Priority:    2,
			Origin:      Point{Lat: 50.0755, Lon: 14.4378},
			Destination: Point{Lat: 48.2082, Lon: 16.3721},
		},
		{
			Name:        "Paris - Lyon",
			Priority:    2,
			Origin:      Point{Lat: 48.8566, Lon: 2.3522},
			Destination: Point{Lat: 45.7640, Lon: 4.8357},
		},
		{
			Name:        "Budapest - Lake Balaton",
			Priority:    2,
			Origin:      Point{Lat: 47.4979, Lon: 19.0402},
			Destination: Point{Lat: 46.9100, Lon: 17.8900},
		},
		{
			Name:        "Ljubljana - Trieste",
			Priority:    3,
			Origin:      Point{Lat: 46.0569, Lon: 14.5058},
			Destination: Point{Lat: 45.6495, Lon: 13.7768},
		},
		{
			Name:        "Zurich - Milan",
			Priority:    3,
			Origin:      Point{Lat: 47.3769, Lon: 8.5417},
			Destination: Point{Lat: 45.4642, Lon: 9.1900},
		},
		{
			Name:        "Warsaw - Krakow",
			Priority:    3,
			Origin:      Point{Lat: 52.2297, Lon: 21.0122},
			Destination: Point{Lat: 50.0647, Lon: 19.9450},
		},
	}
}

// TotalCorridors returns the number of corridors to prewarm.
func (c RefreshConfig) TotalCorridors() int {
	return len(c.Corridors)
}
