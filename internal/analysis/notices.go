package analysis

import "regexp"

// French cities with an active low-emission (ZFE) zone.
var critAirPattern = regexp.MustCompile(`(?i)\b(paris|lyon|grenoble|marseille|toulouse|strasbourg|rouen)\b`)

// sectionTollEntry is the static advisory for a country that levies
// distance-based tolls. These encode regulatory facts that change
// infrequently; treat them as configuration data, not logic.
type sectionTollEntry struct {
	label       string
	description string
	officialURL string
}

var sectionTollEntries = map[string]sectionTollEntry{
	"AT": {
		label:       "Austrian Special Toll Sections",
		description: "The Brenner, Tauern, Pyhrn and Karawanken corridors charge a per-passage toll on top of the vignette.",
		officialURL: "https://www.asfinag.at/toll/toll-for-cars/special-toll/",
	},
	"RO": {
		label:       "Romanian Bridge Tolls",
		description: "Danube bridge crossings (Fetesti-Cernavoda, Giurgiu-Ruse) charge a separate passage fee.",
		officialURL: "https://www.roviniete.ro/en/",
	},
	"HR": {
		label:       "Croatian Motorway Tolls",
		description: "Croatian motorways charge by distance between entry and exit gates; pay by card or ENC transponder.",
		officialURL: "https://www.hac.hr/en",
	},
	"RS": {
		label:       "Serbian Motorway Tolls",
		description: "Serbian motorways charge closed-system distance tolls; foreign plates pay at staffed lanes or with a TAG device.",
		officialURL: "https://www.putevi-srbije.rs/index.php/en/",
	},
	"FR": {
		label:       "French Autoroute Tolls (Peage)",
		description: "French autoroutes charge distance tolls; the A13/A14 and A79 operate barrier-free Flux Libre free-flow tolling with online payment within 72 hours.",
		officialURL: "https://www.autoroutes.fr/en/",
	},
	"IT": {
		label:       "Italian Autostrada Tolls",
		description: "Italian autostrade charge by distance between gates; Telepass lanes are transponder-only.",
		officialURL: "https://www.autostrade.it/en/",
	},
	"BA": {
		label:       "Bosnian Motorway Tolls",
		description: "The A1 corridor charges distance tolls at staffed gates; cash and cards accepted.",
		officialURL: "https://www.jpautoceste.ba/en/",
	},
	"ME": {
		label:       "Montenegrin Tolls",
		description: "The Bar-Boljare motorway and the Sozina tunnel charge per-passage fees.",
		officialURL: "https://mteu.gov.me/en",
	},
	"MK": {
		label:       "North Macedonian Tolls",
		description: "The A1/A2 corridors charge station tolls; keep small euro or denar cash for unstaffed lanes.",
		officialURL: "https://roads.org.mk/en",
	},
	"AL": {
		label:       "Albanian Tolls",
		description: "The A1 Rruga e Kombit to Kosovo charges a single barrier toll near Kalimash.",
		officialURL: "https://ark.gov.al/",
	},
	"PL": {
		label:       "Polish Motorway Tolls",
		description: "Private A1/A2/A4 sections charge barrier tolls; state sections use the e-TOLL app for cars on selected stretches.",
		officialURL: "https://etoll.gov.pl/en/",
	},
	"ES": {
		label:       "Spanish Autopista Tolls",
		description: "Remaining AP autopistas charge distance tolls; many former toll roads are now free.",
		officialURL: "https://www.autopistas.com/en/",
	},
	"PT": {
		label:       "Portuguese Electronic Tolls",
		description: "Portuguese ex-SCUT motorways are electronic-only free-flow tolls; foreign vehicles need EASYToll or a TollCard.",
		officialURL: "https://www.portugaltolls.com/en",
	},
	"TR": {
		label:       "Turkish HGS Tolls",
		description: "Turkish motorways and Bosphorus crossings are electronic-only; buy an HGS sticker at PTT offices before entering a toll road.",
		officialURL: "https://www.ptt.gov.tr/",
	},
	"GR": {
		label:       "Greek Motorway Tolls",
		description: "Greek motorways charge station tolls roughly every 40-60 km; cash and cards accepted.",
		officialURL: "https://www.aodos.gr/en/",
	},
	"IE": {
		label:       "Irish Tolls (eFlow M50)",
		description: "The M50 Dublin ring is barrier-free; pay online by 8pm the next day. Other motorways use barrier plazas.",
		officialURL: "https://www.eflow.ie/",
	},
	"GB": {
		label:       "UK River Crossings",
		description: "The Dartford Crossing and Mersey Gateway are free-flow tolls paid online by midnight the day after crossing.",
		officialURL: "https://www.gov.uk/pay-dartford-crossing-charge",
	},
}

// Countries whose presence on the route implies a continental approach to
// Great Britain and therefore a channel crossing.
var channelApproachCountries = map[string]bool{"FR": true, "BE": true, "NL": true}

// SectionTollNotices returns the advisories for a country known to require a
// section toll. routeCountries is the full ordered list of route country
// codes, used for cross-border context. Countries without a modeled entry
// produce no notices.
func SectionTollNotices(countryCode string, req Request, routeCountries []string) []SectionTollNotice {
	entry, ok := sectionTollEntries[countryCode]
	if !ok {
		return nil
	}

	notices := []SectionTollNotice{{
		CountryCode: countryCode,
		Label:       entry.label,
		Description: entry.description,
		OfficialURL: entry.officialURL,
	}}

	switch countryCode {
	case "GB":
		if londonPattern.MatchString(req.Start) || londonPattern.MatchString(req.End) {
			notices = append(notices, SectionTollNotice{
				CountryCode: "GB",
				Label:       "London ULEZ/Congestion",
				Description: "Driving into central London incurs the ULEZ charge for non-compliant vehicles plus the Congestion Charge on weekdays.",
				OfficialURL: "https://tfl.gov.uk/modes/driving/ultra-low-emission-zone",
			})
		}
		for _, code := range routeCountries {
			if channelApproachCountries[code] {
				notices = append(notices, SectionTollNotice{
					CountryCode: "GB",
					Label:       "Channel Crossing Booking",
					Description: "Reaching Great Britain from the continent requires a booked ferry or Eurotunnel crossing; walk-up availability is limited in peak season.",
					OfficialURL: "https://www.eurotunnel.com/uk/",
				})
				break
			}
		}
	case "FR":
		if critAirPattern.MatchString(req.Start) || critAirPattern.MatchString(req.End) {
			notices = append(notices, SectionTollNotice{
				CountryCode: "FR",
				Label:       "Crit'Air Sticker",
				Description: "Paris, Lyon, Grenoble and other French low-emission zones require a Crit'Air windscreen sticker ordered in advance.",
				OfficialURL: "https://www.certificat-air.gouv.fr/",
			})
		}
	}

	return notices
}
