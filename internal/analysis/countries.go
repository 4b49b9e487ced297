package analysis

import "sort"

// Provider country identifiers as emitted in the openrouteservice
// countryinfo extra. These ids are internal to the provider and can change
// between releases; treat this table as versioned configuration and keep the
// stability tests in countries_test.go green when bumping it.
var providerCountryCodes = map[int]string{
	2:   "AL", // Albania
	11:  "AT", // Austria
	19:  "BE", // Belgium
	27:  "BA", // Bosnia and Herzegovina
	33:  "BG", // Bulgaria
	49:  "HR", // Croatia
	57:  "CZ", // Czechia
	70:  "FR", // France
	74:  "DE", // Germany
	84:  "GR", // Greece
	97:  "HU", // Hungary
	101: "IE", // Ireland
	105: "IT", // Italy
	134: "ME", // Montenegro
	138: "NL", // Netherlands
	148: "MK", // North Macedonia
	161: "PL", // Poland
	163: "PT", // Portugal
	170: "RO", // Romania
	177: "RS", // Serbia
	189: "SK", // Slovakia
	190: "SI", // Slovenia
	197: "ES", // Spain
	202: "CH", // Switzerland
	210: "TR", // Turkey
	213: "GB", // United Kingdom
	228: "XK", // Kosovo
}

// CountryCodeForProviderID maps a provider-specific country id to an ISO
// 3166-1 alpha-2 code. The second return value is false for ids this system
// does not model; callers skip those ranges rather than failing.
func CountryCodeForProviderID(id int) (string, bool) {
	code, ok := providerCountryCodes[id]
	return code, ok
}

// ModeledCountryCodes returns every country code the rule table models,
// sorted so repeated calls produce a stable payload.
func ModeledCountryCodes() []string {
	codes := make([]string, 0, len(providerCountryCodes))
	for _, code := range providerCountryCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
