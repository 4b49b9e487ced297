package shield

import (
	"strings"
	"testing"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/estimate"
)

func TestBuildReadiness_FullConfidence(t *testing.T) {
	result := &analysis.Result{
		Countries: []analysis.CountrySummary{
			{CountryCode: "AT", RequiresVignette: true},
			{CountryCode: "HR", RequiresSectionToll: true},
		},
		DistanceFromSummary: true,
	}
	price := 12.40
	te := &estimate.TripEstimate{
		Vignettes: []estimate.VignetteCost{{CountryCode: "AT", ProductID: "at-10d", PriceEUR: price}},
	}

	r := BuildReadiness(analysis.Request{VehicleClass: analysis.VehicleCar}, result, te, &Insights{HasBorderCrossing: true})

	if r.ConfidenceScore != 100 || r.ConfidenceLevel != ConfidenceHigh {
		t.Errorf("expected score 100/high, got %d/%s", r.ConfidenceScore, r.ConfidenceLevel)
	}
	if len(r.Timeline) != 2 {
		t.Fatalf("expected a timeline entry per country, got %d", len(r.Timeline))
	}
	if r.Timeline[0].CountryCode != "AT" || r.Timeline[0].EstimatedCostEUR == nil {
		t.Errorf("expected AT vignette entry with cost, got %+v", r.Timeline[0])
	}
	if *r.Timeline[0].EstimatedCostEUR != price {
		t.Errorf("expected cost %.2f, got %.2f", price, *r.Timeline[0].EstimatedCostEUR)
	}

	var hasBorderTask bool
	for _, item := range r.Checklist {
		if strings.Contains(item, "border") {
			hasBorderTask = true
		}
	}
	if !hasBorderTask {
		t.Errorf("expected a border-documents checklist item, got %v", r.Checklist)
	}
}

func TestBuildReadiness_ScoreReductions(t *testing.T) {
	result := &analysis.Result{
		Countries: []analysis.CountrySummary{
			{CountryCode: "AT", RequiresVignette: true},
		},
		DistanceFromSummary: false,
	}
	te := &estimate.TripEstimate{
		Vignettes:        []estimate.VignetteCost{{CountryCode: "AT", Note: estimate.NoPriceTableNote}},
		MissingPriceData: []string{"AT"},
	}

	r := BuildReadiness(analysis.Request{VehicleClass: analysis.VehicleUnknown}, result, te, nil)

	// 100 - 10 (unknown class) - 10 (distance fallback) - 15 (missing data).
	if r.ConfidenceScore != 65 {
		t.Errorf("expected score 65, got %d", r.ConfidenceScore)
	}
	if r.ConfidenceLevel != ConfidenceMedium {
		t.Errorf("expected medium confidence, got %s", r.ConfidenceLevel)
	}
	if len(r.ConfidenceReasons) != 3 {
		t.Errorf("expected three reasons, got %v", r.ConfidenceReasons)
	}
}

func TestBuildReadiness_ScoreFloor(t *testing.T) {
	result := &analysis.Result{DistanceFromSummary: true}
	te := &estimate.TripEstimate{
		MissingPriceData: []string{"A", "B", "C", "D", "E", "F", "G"},
	}

	r := BuildReadiness(analysis.Request{VehicleClass: analysis.VehicleCar}, result, te, nil)
	if r.ConfidenceScore != 0 {
		t.Errorf("expected score clamped to 0, got %d", r.ConfidenceScore)
	}
	if r.ConfidenceLevel != ConfidenceLow {
		t.Errorf("expected low confidence, got %s", r.ConfidenceLevel)
	}
}
