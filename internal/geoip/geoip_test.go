package geoip

import "testing"

func TestLookupCountry_Disabled(t *testing.T) {
	g := NewLookup()
	if err := g.Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if g.IsEnabled() {
		t.Error("lookup should be disabled with empty path")
	}

	// Private and loopback IPs resolve even without a database
	if got := g.LookupCountry("192.168.1.10"); got != "LOCAL" {
		t.Errorf("LookupCountry(192.168.1.10) = %q, want LOCAL", got)
	}
	if got := g.LookupCountry("127.0.0.1"); got != "LOCAL" {
		t.Errorf("LookupCountry(127.0.0.1) = %q, want LOCAL", got)
	}

	// Public IPs cannot be resolved without a database
	if got := g.LookupCountry("8.8.8.8"); got != "" {
		t.Errorf("LookupCountry(8.8.8.8) = %q, want empty", got)
	}

	// Garbage input
	if got := g.LookupCountry("not-an-ip"); got != "" {
		t.Errorf("LookupCountry(not-an-ip) = %q, want empty", got)
	}
}

func TestLookupCountry_Uninitialized(t *testing.T) {
	g := NewLookup()
	if got := g.LookupCountry("192.168.1.10"); got != "" {
		t.Errorf("uninitialized lookup should return empty, got %q", got)
	}
}

func TestInit_MissingDatabase(t *testing.T) {
	g := NewLookup()
	if err := g.Init("/nonexistent/GeoLite2-Country.mmdb"); err == nil {
		t.Error("Init with missing database should return an error")
	}
	if g.IsEnabled() {
		t.Error("lookup should be disabled after failed Init")
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"IN", "India"},
		{"LOCAL", "Local Network"},
		{"", "Unknown"},
		{"XX", "XX"},
	}

	for _, tt := range tests {
		if got := CountryName(tt.code); got != tt.want {
			t.Errorf("CountryName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
