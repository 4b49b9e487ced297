package shield

import (
	"fmt"

	"github.com/tollroute/tollroute/internal/analysis"
	"github.com/tollroute/tollroute/internal/estimate"
)

// ConfidenceLevel buckets the readiness score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// TimelineEntry is one per-country action on the pre-trip timeline,
// ordered by travel order.
type TimelineEntry struct {
	CountryCode      string   `json:"countryCode"`
	Action           string   `json:"action"`
	EstimatedCostEUR *float64 `json:"estimatedCostEur,omitempty"`
}

// Readiness is the confidence-scored pre-trip summary.
type Readiness struct {
	ConfidenceScore   int             `json:"confidenceScore"`
	ConfidenceLevel   ConfidenceLevel `json:"confidenceLevel"`
	ConfidenceReasons []string        `json:"confidenceReasons,omitempty"`
	Timeline          []TimelineEntry `json:"timeline"`
	Checklist         []string        `json:"checklist"`
}

// BuildReadiness combines the analysis, estimate and shield insights into a
// 0-100 confidence score, a per-country timeline, and a checklist.
func BuildReadiness(req analysis.Request, result *analysis.Result, te *estimate.TripEstimate, ins *Insights) *Readiness {
	score := 100
	var reasons []string

	if req.VehicleClass == analysis.VehicleUnknown {
		score -= 10
		reasons = append(reasons, "vehicle category unknown; toll class assumptions may not hold")
	}
	if !result.DistanceFromSummary {
		score -= 10
		reasons = append(reasons, "route distance estimated from geometry, not provider summary")
	}
	if te != nil {
		missing := uniqueStrings(te.MissingPriceData)
		score -= 15 * len(missing)
		for _, code := range missing {
			reasons = append(reasons, fmt.Sprintf("no reference price data for %s", code))
		}
	}
	if score < 0 {
		score = 0
	}

	r := &Readiness{
		ConfidenceScore:   score,
		ConfidenceLevel:   levelFor(score),
		ConfidenceReasons: reasons,
	}

	costs := vignetteCostIndex(te)
	for _, c := range result.Countries {
		switch {
		case c.RequiresVignette:
			entry := TimelineEntry{
				CountryCode: c.CountryCode,
				Action:      fmt.Sprintf("Buy the %s vignette before entering the network.", c.CountryCode),
			}
			if cost, ok := costs[c.CountryCode]; ok {
				entry.EstimatedCostEUR = &cost
			}
			r.Timeline = append(r.Timeline, entry)
			r.Checklist = append(r.Checklist, fmt.Sprintf("Buy %s vignette", c.CountryCode))
		case c.RequiresSectionToll:
			r.Timeline = append(r.Timeline, TimelineEntry{
				CountryCode: c.CountryCode,
				Action:      fmt.Sprintf("Budget for distance tolls in %s; keep a card or cash ready at the gates.", c.CountryCode),
			})
			r.Checklist = append(r.Checklist, fmt.Sprintf("Plan toll payment in %s", c.CountryCode))
		default:
			r.Timeline = append(r.Timeline, TimelineEntry{
				CountryCode: c.CountryCode,
				Action:      fmt.Sprintf("No vignette or toll obligations in %s on this route.", c.CountryCode),
			})
		}
	}

	if ins != nil {
		if ins.HasFreeFlowToll {
			r.Checklist = append(r.Checklist, "Register or pay online for free-flow toll sections within the deadline")
		}
		if ins.HasMajorUrbanZoneRisk {
			r.Checklist = append(r.Checklist, "Verify low-emission zone compliance and order any required sticker")
		}
		if ins.HasBorderCrossing {
			r.Checklist = append(r.Checklist, "Carry vehicle registration, insurance green card and ID for border checks")
		}
	}

	return r
}

func levelFor(score int) ConfidenceLevel {
	switch {
	case score >= 80:
		return ConfidenceHigh
	case score >= 55:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

func vignetteCostIndex(te *estimate.TripEstimate) map[string]float64 {
	costs := make(map[string]float64)
	if te == nil {
		return costs
	}
	for _, v := range te.Vignettes {
		if v.Note == "" {
			costs[v.CountryCode] = v.PriceEUR
		}
	}
	return costs
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
