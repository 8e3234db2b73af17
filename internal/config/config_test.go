package config

import (
	"testing"
)

// TestActiveProviderExplicit PLACES_PROVIDER wins over key inference
func TestActiveProviderExplicit(t *testing.T) {
	cfg := &Config{
		PlacesProvider:     ProviderOpenTripMap,
		GooglePlacesAPIKey: "some-key",
	}

	if got := cfg.ActiveProvider(); got != ProviderOpenTripMap {
		t.Errorf("Expected provider %q, got %q", ProviderOpenTripMap, got)
	}
}

// TestActiveProviderInferred google preferred when its key is present
func TestActiveProviderInferred(t *testing.T) {
	cases := []struct {
		name      string
		googleKey string
		otmKey    string
		expected  string
	}{
		{"google key set", "gkey", "", ProviderGoogle},
		{"both keys set", "gkey", "okey", ProviderGoogle},
		{"otm key only", "", "okey", ProviderOpenTripMap},
		{"no keys", "", "", ProviderOpenTripMap},
	}

	for _, tc := range cases {
		cfg := &Config{GooglePlacesAPIKey: tc.googleKey, OpenTripMapAPIKey: tc.otmKey}
		if got := cfg.ActiveProvider(); got != tc.expected {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.expected, got)
		}
	}
}

// TestSQLitePath flat-file path lives under DataDir
func TestSQLitePath(t *testing.T) {
	cfg := &Config{DataDir: "/var/lib/findora"}
	if got := cfg.SQLitePath(); got != "/var/lib/findora/findora.db" {
		t.Errorf("Unexpected sqlite path: %s", got)
	}
}
