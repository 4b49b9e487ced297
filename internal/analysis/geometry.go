package analysis

import (
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/tollroute/tollroute/internal/routing"
)

// Road-category codes from the provider's waycategory extra. Category 3
// marks a segment that is both highway and tollway.
var (
	highwayCategories = map[int]bool{1: true, 3: true}
	tollwayCategories = map[int]bool{2: true, 3: true}
)

// degreesToMeters is the planar approximation factor used to accumulate
// per-country highway distance: Euclidean delta in degrees x 111,000.
// Adequate for short highway segments at European latitudes; the error grows
// toward the poles. Downstream cost estimates are tuned against this
// approximation, so it must not be swapped for a geodesic formula.
const degreesToMeters = 111000.0

// coverage is the per-country accumulator built while scanning the route.
// It is function-scoped mutable state, discarded once mapped to summaries.
type coverage struct {
	code        string
	ranges      []routing.ExtraRange
	hasHighway  bool
	hasTollway  bool
	highwayDist float64
	firstIndex  int
}

// draft is the output of the coverage scan, consumed by the analyzer.
type draft struct {
	geometry            orb.LineString
	countries           []*coverage
	totalDistanceMeters float64
	distanceFromSummary bool
}

// scanCoverage decodes the directions response into per-country coverage.
// It fails on missing geometry or country info; unrecognized provider
// country ids are silently skipped.
func scanCoverage(dir *routing.Directions) (*draft, error) {
	if dir == nil {
		return nil, ErrNoRouteFeature
	}
	if len(dir.Geometry) == 0 {
		return nil, ErrNoGeometry
	}
	if len(dir.CountryInfo) == 0 {
		return nil, ErrNoCountryInfo
	}

	byCode := make(map[string]*coverage)

	for _, cr := range dir.CountryInfo {
		code, ok := CountryCodeForProviderID(cr.Value)
		if !ok {
			// The provider's country catalog is broader than the countries
			// this system models.
			continue
		}

		cov := byCode[code]
		if cov == nil {
			cov = &coverage{code: code, firstIndex: cr.Start}
			byCode[code] = cov
		}
		if cr.Start < cov.firstIndex {
			cov.firstIndex = cr.Start
		}
		cov.ranges = append(cov.ranges, cr)

		end := cr.End
		if end > len(dir.Geometry) {
			end = len(dir.Geometry)
		}
		for i := cr.Start; i < end-1; i++ {
			category, ok := categoryAt(dir.WayCategory, i)
			if !ok {
				continue
			}
			if highwayCategories[category] {
				cov.hasHighway = true
				cov.highwayDist += planarDistanceMeters(dir.Geometry[i], dir.Geometry[i+1])
			}
			if tollwayCategories[category] {
				cov.hasTollway = true
			}
		}
	}

	countries := make([]*coverage, 0, len(byCode))
	for _, cov := range byCode {
		countries = append(countries, cov)
	}
	// Order countries by first appearance along the route so downstream
	// consumers see them in travel order.
	sort.Slice(countries, func(i, j int) bool {
		return countries[i].firstIndex < countries[j].firstIndex
	})

	total := dir.DistanceMeters
	fromSummary := total > 0
	if !fromSummary {
		total = greatCircleLengthMeters(dir.Geometry)
	}

	return &draft{
		geometry:            dir.Geometry,
		countries:           countries,
		totalDistanceMeters: total,
		distanceFromSummary: fromSummary,
	}, nil
}

// categoryAt resolves the road category for a coordinate index by scanning
// the waycategory ranges. First match wins; ranges are assumed
// non-overlapping.
func categoryAt(ranges []routing.ExtraRange, index int) (int, bool) {
	for _, r := range ranges {
		if r.Contains(index) {
			return r.Value, true
		}
	}
	return 0, false
}

// planarDistanceMeters approximates the distance between two consecutive
// route coordinates as the Euclidean degree delta scaled to meters.
func planarDistanceMeters(a, b orb.Point) float64 {
	dLon := b[0] - a[0]
	dLat := b[1] - a[1]
	return math.Sqrt(dLon*dLon+dLat*dLat) * degreesToMeters
}

// greatCircleLengthMeters sums haversine distances between consecutive
// coordinates. Used as a fallback when the provider omits a summary
// distance.
func greatCircleLengthMeters(line orb.LineString) float64 {
	const earthRadiusMeters = 6371000.0

	total := 0.0
	for i := 0; i < len(line)-1; i++ {
		lon1 := line[i][0] * math.Pi / 180
		lat1 := line[i][1] * math.Pi / 180
		lon2 := line[i+1][0] * math.Pi / 180
		lat2 := line[i+1][1] * math.Pi / 180

		dLat := lat2 - lat1
		dLon := lon2 - lon1

		h := math.Sin(dLat/2)*math.Sin(dLat/2) +
			math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
		total += 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
	}
	return total
}

// segmentsFor extracts one LineString per coverage range with at least two
// coordinates. Segments are contiguous sub-slices of the parent geometry in
// original [lon, lat] order.
func segmentsFor(geometry orb.LineString, cov *coverage) []orb.LineString {
	var segments []orb.LineString
	for _, r := range cov.ranges {
		start := r.Start
		end := r.End
		if end > len(geometry) {
			end = len(geometry)
		}
		if end-start < 2 {
			continue
		}
		segments = append(segments, orb.LineString(geometry[start:end]))
	}
	return segments
}
