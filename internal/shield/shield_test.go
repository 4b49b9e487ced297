package shield

import (
	"testing"
	"time"

	"github.com/tollroute/tollroute/internal/analysis"
)

func TestDerive_BorderCrossing(t *testing.T) {
	single := &analysis.Result{
		Countries: []analysis.CountrySummary{{CountryCode: "FR"}},
	}
	if Derive(analysis.Request{}, single).HasBorderCrossing {
		t.Error("one country: expected no border crossing")
	}

	multi := &analysis.Result{
		Countries: []analysis.CountrySummary{{CountryCode: "FR"}, {CountryCode: "GB"}},
	}
	ins := Derive(analysis.Request{}, multi)
	if !ins.HasBorderCrossing {
		t.Error("two countries: expected border crossing")
	}
	if len(ins.Warnings) == 0 {
		t.Error("expected a border-crossing warning")
	}
}

func TestDerive_FreeFlowToll(t *testing.T) {
	result := &analysis.Result{
		Countries: []analysis.CountrySummary{{CountryCode: "FR"}},
		SectionTollNotices: []analysis.SectionTollNotice{{
			CountryCode: "FR",
			Label:       "French Autoroute Tolls (Peage)",
			Description: "The A79 operates barrier-free Flux Libre free-flow tolling.",
		}},
	}

	ins := Derive(analysis.Request{}, result)
	if !ins.HasFreeFlowToll {
		t.Error("expected free-flow toll detection from Flux Libre text")
	}
}

func TestDerive_UrbanZoneRisk(t *testing.T) {
	// From a section-toll notice.
	fromNotice := &analysis.Result{
		Countries: []analysis.CountrySummary{{CountryCode: "GB"}},
		SectionTollNotices: []analysis.SectionTollNotice{{
			CountryCode: "GB",
			Label:       "London ULEZ/Congestion",
			Description: "ULEZ charge applies in central London.",
		}},
	}
	if !Derive(analysis.Request{}, fromNotice).HasMajorUrbanZoneRisk {
		t.Error("expected urban zone risk from ULEZ notice")
	}

	// From a country-level notice.
	fromCountry := &analysis.Result{
		Countries: []analysis.CountrySummary{{
			CountryCode: "DE",
			Notices:     []string{"German cities require an Umweltplakette emission sticker inside their low-emission zones."},
		}},
	}
	if !Derive(analysis.Request{}, fromCountry).HasMajorUrbanZoneRisk {
		t.Error("expected urban zone risk from Umweltplakette notice")
	}
}

func TestDerive_TollWindow(t *testing.T) {
	frResult := &analysis.Result{
		Countries: []analysis.CountrySummary{{CountryCode: "FR"}},
	}

	saturday := time.Date(2025, time.July, 12, 9, 0, 0, 0, time.UTC)
	ins := Derive(analysis.Request{TripDate: &saturday}, frResult)
	if ins.TollWindowImpact == nil || ins.TollWindowImpact.Level != WindowSurcharge {
		t.Errorf("Saturday in France: expected surcharge_risk, got %+v", ins.TollWindowImpact)
	}
	if ins.DepartureTimeHint == "" {
		t.Error("surcharge window: expected a departure hint")
	}

	tuesday := time.Date(2025, time.July, 8, 9, 0, 0, 0, time.UTC)
	ins = Derive(analysis.Request{TripDate: &tuesday}, frResult)
	if ins.TollWindowImpact == nil || ins.TollWindowImpact.Level != WindowSavings {
		t.Errorf("Tuesday in France: expected savings_opportunity, got %+v", ins.TollWindowImpact)
	}

	monday := time.Date(2025, time.July, 7, 9, 0, 0, 0, time.UTC)
	ins = Derive(analysis.Request{TripDate: &monday}, frResult)
	if ins.TollWindowImpact == nil || ins.TollWindowImpact.Level != WindowNeutral {
		t.Errorf("Monday in France: expected neutral, got %+v", ins.TollWindowImpact)
	}

	// No France on the route: no window.
	atResult := &analysis.Result{Countries: []analysis.CountrySummary{{CountryCode: "AT"}}}
	ins = Derive(analysis.Request{TripDate: &saturday}, atResult)
	if ins.TollWindowImpact != nil {
		t.Error("no France on route: expected no toll window impact")
	}
}
