package analysis

import (
	"sort"
	"testing"
)

// The provider's country ids are versioned configuration; these mappings
// must stay stable across table updates.
func TestCountryCodeForProviderID_StableMappings(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{11, "AT"},
		{49, "HR"},
		{57, "CZ"},
		{70, "FR"},
		{74, "DE"},
		{170, "RO"},
		{202, "CH"},
		{213, "GB"},
		{228, "XK"},
	}

	for _, tt := range tests {
		got, ok := CountryCodeForProviderID(tt.id)
		if !ok {
			t.Errorf("id %d: expected mapping, got none", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("id %d: expected %q, got %q", tt.id, tt.want, got)
		}
	}
}

func TestCountryCodeForProviderID_UnknownID(t *testing.T) {
	if code, ok := CountryCodeForProviderID(9999); ok {
		t.Errorf("expected no mapping for unknown id, got %q", code)
	}
}

func TestModeledCountryCodes_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, code := range ModeledCountryCodes() {
		if seen[code] {
			t.Errorf("country code %q mapped twice", code)
		}
		seen[code] = true
	}
	if len(seen) != len(providerCountryCodes) {
		t.Errorf("expected %d codes, got %d", len(providerCountryCodes), len(seen))
	}
}

func TestModeledCountryCodes_Sorted(t *testing.T) {
	codes := ModeledCountryCodes()
	if !sort.StringsAreSorted(codes) {
		t.Errorf("expected sorted country codes, got %v", codes)
	}
}
