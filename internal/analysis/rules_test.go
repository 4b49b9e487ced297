package analysis

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEvaluateCountry_VignetteCountries(t *testing.T) {
	tests := []struct {
		country      string
		hasHighway   bool
		hasTollway   bool
		wantVignette bool
		wantToll     bool
	}{
		{"AT", true, true, true, true},
		{"AT", false, false, false, false},
		{"CZ", true, false, true, false},
		{"SK", true, false, true, false},
		{"HU", true, false, true, false},
		{"SI", true, false, true, false},
		{"CH", false, true, true, false},
		{"CH", true, false, true, false},
		{"RO", true, false, true, false},
		{"RO", true, true, true, true},
		{"BG", true, false, true, false},
	}

	for _, tt := range tests {
		d := EvaluateCountry(tt.country, tt.hasHighway, tt.hasTollway, Request{})
		if d.RequiresVignette != tt.wantVignette {
			t.Errorf("%s(hw=%v,tw=%v): RequiresVignette = %v, want %v",
				tt.country, tt.hasHighway, tt.hasTollway, d.RequiresVignette, tt.wantVignette)
		}
		if d.RequiresSectionToll != tt.wantToll {
			t.Errorf("%s(hw=%v,tw=%v): RequiresSectionToll = %v, want %v",
				tt.country, tt.hasHighway, tt.hasTollway, d.RequiresSectionToll, tt.wantToll)
		}
	}
}

func TestEvaluateCountry_DistanceTolledCountries(t *testing.T) {
	for _, country := range []string{"HR", "RS", "FR", "IT", "BA", "ME", "MK", "AL", "PL", "ES", "PT"} {
		d := EvaluateCountry(country, true, false, Request{})
		if d.RequiresVignette {
			t.Errorf("%s: expected no vignette requirement", country)
		}
		if !d.RequiresSectionToll {
			t.Errorf("%s: expected section toll requirement", country)
		}
	}
}

func TestEvaluateCountry_AvoidTollsLaw(t *testing.T) {
	// avoidTolls=true, highway without tollway segments: the section-toll
	// requirement is suppressed and the exact marker notice appended.
	for _, country := range []string{"HR", "FR", "IT", "ES", "PT", "PL"} {
		d := EvaluateCountry(country, true, false, Request{AvoidTolls: true})
		if d.RequiresSectionToll {
			t.Errorf("%s: expected suppressed section toll with avoidTolls", country)
		}
		if !containsString(d.Notices, NoticeTollsAvoided) {
			t.Errorf("%s: expected %q notice, got %v", country, NoticeTollsAvoided, d.Notices)
		}
	}

	// A tollway-tagged segment means tolls could not be avoided.
	d := EvaluateCountry("FR", true, true, Request{AvoidTolls: true})
	if !d.RequiresSectionToll {
		t.Error("FR with tollway segment: expected section toll despite avoidTolls")
	}
	if containsString(d.Notices, NoticeTollsAvoided) {
		t.Error("FR with tollway segment: unexpected tolls-avoided notice")
	}
}

func TestEvaluateCountry_AlwaysTolledIgnoreAvoidance(t *testing.T) {
	for _, country := range []string{"GB", "IE", "TR", "GR"} {
		d := EvaluateCountry(country, true, false, Request{AvoidTolls: true})
		if !d.RequiresSectionToll {
			t.Errorf("%s: expected section toll regardless of avoidTolls", country)
		}
	}
}

func TestEvaluateCountry_NoTollCountries(t *testing.T) {
	for _, country := range []string{"DE", "NL", "BE", "XK"} {
		d := EvaluateCountry(country, true, true, Request{})
		if d.RequiresVignette || d.RequiresSectionToll {
			t.Errorf("%s: expected neither vignette nor section toll", country)
		}
	}
}

func TestEvaluateCountry_UnmodeledFallback(t *testing.T) {
	d := EvaluateCountry("NO", true, true, Request{})
	if !d.RequiresVignette || !d.RequiresSectionToll {
		t.Error("unmodeled country: expected generic highway/tollway fallback")
	}
	if len(d.Notices) != 0 {
		t.Errorf("unmodeled country: expected no notices, got %v", d.Notices)
	}
}

func TestEvaluateCountry_HeavyVehicleWarning(t *testing.T) {
	d := EvaluateCountry("AT", true, false, Request{GrossWeightKg: 4200, AxleCount: 2})
	found := false
	for _, n := range d.Notices {
		if containsSubstring(n, "3.5t") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected heavy-vehicle warning, got %v", d.Notices)
	}
}

func TestEvaluateCountry_BulgariaWeekendNotice(t *testing.T) {
	saturday := time.Date(2025, time.June, 7, 10, 0, 0, 0, time.UTC)
	d := EvaluateCountry("BG", true, false, Request{TripDate: &saturday})
	if len(d.Notices) == 0 {
		t.Fatal("expected a weekend notice for Bulgaria")
	}

	tuesday := time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC)
	d = EvaluateCountry("BG", true, false, Request{TripDate: &tuesday})
	if len(d.Notices) != 0 {
		t.Errorf("expected no weekday notice, got %v", d.Notices)
	}
}

func TestEvaluateCountry_LondonAndChannelNotices(t *testing.T) {
	req := Request{Start: "Paris", End: "London", ChannelPreference: ChannelTunnel}
	d := EvaluateCountry("GB", true, false, req)

	if !d.RequiresSectionToll {
		t.Error("GB: expected section toll requirement")
	}
	hasLondon, hasTunnel := false, false
	for _, n := range d.Notices {
		if containsSubstring(n, "ULEZ") {
			hasLondon = true
		}
		if containsSubstring(n, "Eurotunnel") {
			hasTunnel = true
		}
	}
	if !hasLondon {
		t.Errorf("expected London ULEZ notice, got %v", d.Notices)
	}
	if !hasTunnel {
		t.Errorf("expected tunnel preference notice, got %v", d.Notices)
	}
}

func TestEvaluateCountry_Idempotent(t *testing.T) {
	date := time.Date(2025, time.June, 7, 10, 0, 0, 0, time.UTC)
	req := Request{
		Start:        "Vienna",
		End:          "Zagreb",
		TripDate:     &date,
		VehicleClass: VehicleVan,
		AvoidTolls:   true,
	}

	first := EvaluateCountry("HR", true, false, req)
	second := EvaluateCountry("HR", true, false, req)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("rule table is not idempotent: %+v vs %+v", first, second)
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func containsSubstring(s, sub string) bool {
	return strings.Contains(s, sub)
}
