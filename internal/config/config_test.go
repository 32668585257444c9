package config

import (
	"testing"
)

func TestLoad_RequiresSessionSecret(t *testing.T) {
	t.Setenv("WORKADMIN_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when WORKADMIN_SESSION_SECRET is missing")
	}
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	t.Setenv("WORKADMIN_SESSION_SECRET", "too-short")

	if _, err := Load(); err == nil {
		t.Error("expected error for short session secret")
	}
}

func TestLoad_RejectsWeakSecret(t *testing.T) {
	t.Setenv("WORKADMIN_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Error("expected error for known weak secret")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("WORKADMIN_SESSION_SECRET", "Abcdef123456!@#$abcdef123456!@#$")
	t.Setenv("WORKADMIN_DB_DRIVER", "oracle")

	if _, err := Load(); err == nil {
		t.Error("expected error for unsupported database driver")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WORKADMIN_SESSION_SECRET", "Abcdef123456!@#$abcdef123456!@#$")
	t.Setenv("WORKADMIN_DB_DRIVER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q; want %q", cfg.DBDriver, DriverSQLite)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d; want 8080", cfg.ServerPort)
	}
	if cfg.ServerAddr() != "localhost:8080" {
		t.Errorf("ServerAddr() = %q; want localhost:8080", cfg.ServerAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() should be true by default")
	}
	if cfg.AuthLogRetentionDays != 90 {
		t.Errorf("AuthLogRetentionDays = %d; want 90", cfg.AuthLogRetentionDays)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"abcdefghijklmnop", false},
		{"Abcdefghijklmnop", false},
		{"Abcdef1234567890", true},
		{"abcdef123456!@#$", true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v; want %v", tt.secret, got, tt.want)
		}
	}
}
