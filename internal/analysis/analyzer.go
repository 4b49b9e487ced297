package analysis

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/tollroute/tollroute/internal/routing"
)

// Analyzer runs the route annotation pipeline: coverage scan, per-country
// rule evaluation, and section-toll notice resolution. It is stateless and
// safe for concurrent use; each call works on its own inputs.
type Analyzer struct {
	logger zerolog.Logger
}

// NewAnalyzer creates a route analyzer.
func NewAnalyzer(logger zerolog.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze produces the country-by-country toll decision set for a route.
// It fails only on unrecoverable upstream-data errors (missing route,
// geometry, or country info); everything downstream of the coverage scan is
// best-effort and never errors.
func (a *Analyzer) Analyze(req Request, dir *routing.Directions) (*Result, error) {
	d, err := scanCoverage(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RouteGeoJSON: Geometry{
			Type:        "LineString",
			Coordinates: d.geometry,
		},
		TotalDistanceMeters: d.totalDistanceMeters,
		DistanceFromSummary: d.distanceFromSummary,
		InformationalOnly:   true,
	}

	routeCountries := make([]string, 0, len(d.countries))
	for _, cov := range d.countries {
		routeCountries = append(routeCountries, cov.code)
	}

	for i := 1; i < len(routeCountries); i++ {
		result.BorderCrossings = append(result.BorderCrossings, BorderCrossing{
			FromCountryCode: routeCountries[i-1],
			ToCountryCode:   routeCountries[i],
		})
	}

	for _, cov := range d.countries {
		decision := EvaluateCountry(cov.code, cov.hasHighway, cov.hasTollway, req)

		summary := CountrySummary{
			CountryCode:           cov.code,
			HighwayDistanceMeters: int(math.Round(cov.highwayDist)),
			RequiresVignette:      decision.RequiresVignette,
			RequiresSectionToll:   decision.RequiresSectionToll,
			Notices:               decision.Notices,
			RouteSegments:         segmentsFor(d.geometry, cov),
		}
		result.Countries = append(result.Countries, summary)

		if decision.RequiresSectionToll {
			result.SectionTollNotices = append(result.SectionTollNotices,
				SectionTollNotices(cov.code, req, routeCountries)...)
		}
	}

	a.logger.Debug().
		Int("country_count", len(result.Countries)).
		Int("notice_count", len(result.SectionTollNotices)).
		Float64("total_distance_m", result.TotalDistanceMeters).
		Bool("distance_from_summary", result.DistanceFromSummary).
		Msg("route analysis complete")

	return result, nil
}
