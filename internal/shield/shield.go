// Package shield derives cross-cutting trip-risk signals and a
// confidence-scored readiness summary from the route analysis.
package shield

import (
	"fmt"
	"strings"
	"time"

	"github.com/tollroute/tollroute/internal/analysis"
)

// TollWindowLevel classifies how the trip date interacts with
// weekday-sensitive toll pricing.
type TollWindowLevel string

const (
	WindowSavings   TollWindowLevel = "savings_opportunity"
	WindowSurcharge TollWindowLevel = "surcharge_risk"
	WindowNeutral   TollWindowLevel = "neutral"
)

// TollWindowImpact describes the trip date's toll-pricing consequence.
type TollWindowImpact struct {
	Level           TollWindowLevel `json:"level"`
	Title           string          `json:"title"`
	Details         string          `json:"details"`
	EstimatedMinEUR float64         `json:"estimatedMinEur"`
	EstimatedMaxEUR float64         `json:"estimatedMaxEur"`
}

// Insights are the cross-cutting risk signals for a trip.
type Insights struct {
	HasBorderCrossing     bool              `json:"hasBorderCrossing"`
	HasFreeFlowToll       bool              `json:"hasFreeFlowToll"`
	HasMajorUrbanZoneRisk bool              `json:"hasMajorUrbanZoneRisk"`
	Warnings              []string          `json:"warnings,omitempty"`
	DepartureTimeHint     string            `json:"departureTimeHint,omitempty"`
	TollWindowImpact      *TollWindowImpact `json:"tollWindowImpact,omitempty"`
}

var freeFlowKeywords = []string{"flux libre", "free-flow", "barrier-free", "electronic-only"}

var urbanZoneKeywords = []string{"ulez", "congestion", "crit'air", "umweltplakette", "low-emission"}

// Derive computes the trip shield signals from the analysis result and the
// trip date. Pure function; no external calls.
func Derive(req analysis.Request, result *analysis.Result) *Insights {
	ins := &Insights{
		HasBorderCrossing: len(result.Countries) >= 2,
	}

	for _, n := range result.SectionTollNotices {
		text := strings.ToLower(n.Label + " " + n.Description)
		if matchesAny(text, freeFlowKeywords) {
			ins.HasFreeFlowToll = true
		}
		if matchesAny(text, urbanZoneKeywords) {
			ins.HasMajorUrbanZoneRisk = true
		}
	}
	for _, c := range result.Countries {
		for _, notice := range c.Notices {
			if matchesAny(strings.ToLower(notice), urbanZoneKeywords) {
				ins.HasMajorUrbanZoneRisk = true
			}
		}
	}

	if ins.HasBorderCrossing {
		ins.Warnings = append(ins.Warnings,
			fmt.Sprintf("Route crosses %d borders; carry vehicle documents and check each country's rules.", len(result.Countries)-1))
	}
	if ins.HasFreeFlowToll {
		ins.Warnings = append(ins.Warnings,
			"Free-flow toll sections on this route have no barriers; unpaid passages are fined automatically.")
	}
	if ins.HasMajorUrbanZoneRisk {
		ins.Warnings = append(ins.Warnings,
			"An urban low-emission zone is on or near this route; verify your vehicle's compliance before departure.")
	}

	ins.TollWindowImpact = tollWindow(req, result)
	ins.DepartureTimeHint = departureHint(ins.TollWindowImpact)

	return ins
}

// tollWindow classifies the trip date against France's weekend and Friday
// surcharge windows, the one weekday-sensitive regime currently modeled.
func tollWindow(req analysis.Request, result *analysis.Result) *TollWindowImpact {
	if req.TripDate == nil || result.Country("FR") == nil {
		return nil
	}

	switch req.TripDate.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return &TollWindowImpact{
			Level:           WindowSurcharge,
			Title:           "Weekend autoroute surcharge window",
			Details:         "French autoroute traffic peaks Friday afternoon through Sunday; some concessions apply seasonal weekend surcharges and queues lengthen at barriers.",
			EstimatedMinEUR: 3,
			EstimatedMaxEUR: 12,
		}
	case time.Tuesday, time.Wednesday:
		return &TollWindowImpact{
			Level:           WindowSavings,
			Title:           "Off-peak autoroute window",
			Details:         "Mid-week departures avoid the weekend surcharge windows and barrier queues on French autoroutes.",
			EstimatedMinEUR: 2,
			EstimatedMaxEUR: 8,
		}
	default:
		return &TollWindowImpact{
			Level:   WindowNeutral,
			Title:   "No toll window impact",
			Details: "The trip date falls outside known surcharge and discount windows.",
		}
	}
}

func departureHint(impact *TollWindowImpact) string {
	if impact == nil {
		return ""
	}
	switch impact.Level {
	case WindowSurcharge:
		return "Depart before Friday noon or after Sunday evening to avoid the weekend toll surcharge window."
	case WindowSavings:
		return "Mid-week departure keeps tolls and barrier queues at their lowest."
	default:
		return ""
	}
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
