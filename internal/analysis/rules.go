package analysis

import (
	"regexp"
	"time"
)

// NoticeTollsAvoided is appended when the avoid-tolls preference suppressed
// a section-toll requirement. Consumers match on the exact string.
const NoticeTollsAvoided = "Tolls avoided where possible on this route."

var londonPattern = regexp.MustCompile(`(?i)\blondon\b`)

// Decision is the rule table output for one country.
type Decision struct {
	RequiresVignette    bool
	RequiresSectionToll bool
	Notices             []string
}

// EvaluateCountry applies the national toll regime for the given country to
// the route's coverage flags and the trip context. It is a pure function:
// identical inputs always yield identical output.
//
// Every country modeled here has its own regulatory regime (flat vignette,
// distance-based section tolls, both, or neither); the per-country branches
// encode that knowledge directly and must not be collapsed into a single
// formula.
func EvaluateCountry(countryCode string, hasHighway, hasTollway bool, req Request) Decision {
	var notices []string
	notices = append(notices, vehicleClassNotices(countryCode, req)...)

	switch countryCode {
	// Flat national vignette countries.
	case "AT":
		return Decision{
			RequiresVignette:    hasHighway,
			RequiresSectionToll: hasHighway || hasTollway, // Brenner, Tauern and other special sections
			Notices:             notices,
		}
	case "CZ", "SK", "HU", "SI":
		return Decision{
			RequiresVignette: hasHighway,
			Notices:          notices,
		}
	case "CH":
		return Decision{
			RequiresVignette: hasHighway || hasTollway,
			Notices:          notices,
		}
	case "RO":
		if hasHighway {
			notices = append(notices, "Romania charges separate bridge tolls on some Danube crossings in addition to the rovinieta.")
		}
		return Decision{
			RequiresVignette:    hasHighway,
			RequiresSectionToll: hasTollway,
			Notices:             notices,
		}
	case "BG":
		if isWeekend(req.TripDate) {
			notices = append(notices, "Bulgarian weekend vignettes sell out quickly at border points; buy the e-vignette online before departure.")
		}
		return Decision{
			RequiresVignette: hasHighway,
			Notices:          notices,
		}

	// Distance-based section toll countries.
	case "HR", "RS", "FR", "IT", "BA", "ME", "MK", "AL", "PL", "ES", "PT":
		requiresToll := resolveTollCountryRequirement(hasHighway, hasTollway, req, &notices)
		return Decision{
			RequiresSectionToll: requiresToll,
			Notices:             notices,
		}

	// Distance or crossing tolled, but tolls cannot be meaningfully avoided.
	case "TR", "GR", "IE":
		return Decision{
			RequiresSectionToll: hasHighway || hasTollway,
			Notices:             notices,
		}
	case "GB":
		if londonPattern.MatchString(req.Start) || londonPattern.MatchString(req.End) {
			notices = append(notices, "Route touches London: ULEZ and Congestion Charge apply inside the zone boundaries.")
		}
		switch req.ChannelPreference {
		case ChannelFerry:
			notices = append(notices, "Channel crossing preference: ferry. Dover-Calais ferries require a vehicle booking.")
		case ChannelTunnel:
			notices = append(notices, "Channel crossing preference: tunnel. Eurotunnel Le Shuttle requires a vehicle booking.")
		}
		return Decision{
			RequiresSectionToll: hasHighway || hasTollway,
			Notices:             notices,
		}

	// No vignette, no distance tolls for passenger vehicles.
	case "DE", "NL", "BE", "XK":
		if countryCode == "DE" && hasHighway {
			notices = append(notices, "German cities require an Umweltplakette emission sticker inside their low-emission zones.")
		}
		return Decision{Notices: notices}
	}

	// Unmodeled country: generic highway/tollway-driven fallback.
	return Decision{
		RequiresVignette:    hasHighway,
		RequiresSectionToll: hasTollway,
		Notices:             notices,
	}
}

// resolveTollCountryRequirement decides the section-toll requirement for
// distance-tolled countries. When the caller asked to avoid tolls and the
// route stayed on highway without touching a tollway-tagged segment, the
// requirement is suppressed and the exact avoidance marker is appended.
func resolveTollCountryRequirement(hasHighway, hasTollway bool, req Request, notices *[]string) bool {
	if req.AvoidTolls && hasHighway && !hasTollway {
		*notices = append(*notices, NoticeTollsAvoided)
		return false
	}
	return hasHighway || hasTollway
}

// vehicleClassNotices appends cross-cutting categorization warnings that
// apply independent of the country's base rule.
func vehicleClassNotices(countryCode string, req Request) []string {
	var notices []string

	if req.GrossWeightKg > HeavyVehicleThresholdKg {
		notices = append(notices, "Vehicles over 3.5t fall outside the standard vignette class; distance-based heavy-vehicle tolling applies instead.")
	}

	switch req.VehicleClass {
	case VehicleMotorcycle:
		notices = append(notices, "Motorcycles are often a cheaper vignette category; check the motorcycle tariff before buying a car vignette.")
	case VehicleVan:
		notices = append(notices, "Vans, campers and MPVs may be tolled by axle height or weight rather than as passenger cars; verify the category at the first toll plaza.")
		if countryCode == "AT" && req.AxleCount > 2 {
			notices = append(notices, "In Austria, vehicles with more than two axles over 3.5t need a GO-Box instead of a vignette.")
		}
	}

	return notices
}

func isWeekend(d *time.Time) bool {
	if d == nil {
		return false
	}
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
