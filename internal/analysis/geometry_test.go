package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/tollroute/tollroute/internal/routing"
)

// testDirections builds a minimal directions response: a straight line of n
// coordinates stepping 0.01 degrees east per index.
func testDirections(n int, countryInfo, wayCategory []routing.ExtraRange) *routing.Directions {
	line := make(orb.LineString, n)
	for i := 0; i < n; i++ {
		line[i] = orb.Point{16.0 + float64(i)*0.01, 48.0}
	}
	return &routing.Directions{
		Geometry:    line,
		CountryInfo: countryInfo,
		WayCategory: wayCategory,
		Provider:    "test",
		FetchedAt:   time.Now(),
	}
}

func TestScanCoverage_MissingData(t *testing.T) {
	tests := []struct {
		name    string
		dir     *routing.Directions
		wantErr error
	}{
		{"nil response", nil, ErrNoRouteFeature},
		{"empty geometry", &routing.Directions{}, ErrNoGeometry},
		{
			"missing country info",
			testDirections(4, nil, nil),
			ErrNoCountryInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanCoverage(tt.dir)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestScanCoverage_HighwayDistanceAndFlags(t *testing.T) {
	// Ten coordinates, all Austria (id 11), all category 3 (highway+tollway).
	dir := testDirections(10,
		[]routing.ExtraRange{{Start: 0, End: 10, Value: 11}},
		[]routing.ExtraRange{{Start: 0, End: 10, Value: 3}},
	)

	d, err := scanCoverage(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.countries) != 1 {
		t.Fatalf("expected 1 country, got %d", len(d.countries))
	}

	cov := d.countries[0]
	if cov.code != "AT" {
		t.Errorf("expected AT, got %s", cov.code)
	}
	if !cov.hasHighway || !cov.hasTollway {
		t.Errorf("category 3 should set both flags, got hw=%v tw=%v", cov.hasHighway, cov.hasTollway)
	}

	// Nine steps of 0.01 degrees: 9 * 0.01 * 111000 = 9990 meters.
	want := 9 * 0.01 * degreesToMeters
	if diff := cov.highwayDist - want; diff > 1 || diff < -1 {
		t.Errorf("expected highway distance ~%.0f, got %.0f", want, cov.highwayDist)
	}
}

func TestScanCoverage_UnrecognizedCountrySkipped(t *testing.T) {
	dir := testDirections(6,
		[]routing.ExtraRange{
			{Start: 0, End: 3, Value: 9999}, // not in the provider table
			{Start: 3, End: 6, Value: 49},   // Croatia
		},
		[]routing.ExtraRange{{Start: 0, End: 6, Value: 1}},
	)

	d, err := scanCoverage(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.countries) != 1 || d.countries[0].code != "HR" {
		t.Fatalf("expected only HR, got %+v", d.countries)
	}
}

func TestScanCoverage_CountriesInTravelOrder(t *testing.T) {
	dir := testDirections(9,
		[]routing.ExtraRange{
			{Start: 6, End: 9, Value: 49}, // Croatia last
			{Start: 0, End: 3, Value: 11}, // Austria first
			{Start: 3, End: 6, Value: 190}, // Slovenia middle
		},
		[]routing.ExtraRange{{Start: 0, End: 9, Value: 1}},
	)

	d, err := scanCoverage(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"AT", "SI", "HR"}
	if len(d.countries) != len(want) {
		t.Fatalf("expected %d countries, got %d", len(want), len(d.countries))
	}
	for i, cov := range d.countries {
		if cov.code != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], cov.code)
		}
	}
}

func TestScanCoverage_SummaryDistancePreferred(t *testing.T) {
	dir := testDirections(4,
		[]routing.ExtraRange{{Start: 0, End: 4, Value: 11}},
		nil,
	)
	dir.DistanceMeters = 123456

	d, err := scanCoverage(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.distanceFromSummary {
		t.Error("expected provider summary distance to be preferred")
	}
	if d.totalDistanceMeters != 123456 {
		t.Errorf("expected 123456, got %f", d.totalDistanceMeters)
	}
}

func TestScanCoverage_GreatCircleFallback(t *testing.T) {
	dir := testDirections(4,
		[]routing.ExtraRange{{Start: 0, End: 4, Value: 11}},
		nil,
	)

	d, err := scanCoverage(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.distanceFromSummary {
		t.Error("expected great-circle fallback")
	}
	// Three steps of 0.01 degrees longitude at 48N: roughly 745m each.
	if d.totalDistanceMeters < 2000 || d.totalDistanceMeters > 2600 {
		t.Errorf("great-circle length out of expected band: %f", d.totalDistanceMeters)
	}
}

func TestSegmentsFor_SubSliceOfParent(t *testing.T) {
	dir := testDirections(10,
		[]routing.ExtraRange{
			{Start: 0, End: 5, Value: 11},
			{Start: 8, End: 9, Value: 11}, // single coordinate, dropped
		},
		nil,
	)

	d, err := scanCoverage(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	segments := segmentsFor(d.geometry, d.countries[0])
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment (ranges under 2 coords dropped), got %d", len(segments))
	}
	if len(segments[0]) != 5 {
		t.Fatalf("expected 5 coordinates, got %d", len(segments[0]))
	}
	for i, p := range segments[0] {
		if p != d.geometry[i] {
			t.Errorf("segment coordinate %d diverges from parent geometry", i)
		}
	}
}

func TestCategoryAt_FirstMatchWins(t *testing.T) {
	ranges := []routing.ExtraRange{
		{Start: 0, End: 5, Value: 1},
		{Start: 5, End: 10, Value: 2},
	}

	if cat, ok := categoryAt(ranges, 3); !ok || cat != 1 {
		t.Errorf("index 3: expected category 1, got %d (ok=%v)", cat, ok)
	}
	if cat, ok := categoryAt(ranges, 5); !ok || cat != 2 {
		t.Errorf("index 5: expected category 2, got %d (ok=%v)", cat, ok)
	}
	if _, ok := categoryAt(ranges, 10); ok {
		t.Error("index 10: expected no category")
	}
}
