// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBDriver      string `env:"WORKADMIN_DB_DRIVER" envDefault:"sqlite"`
	DBDSN         string `env:"WORKADMIN_DB_DSN" envDefault:"./data/workadmin.db"`
	SessionSecret string `env:"WORKADMIN_SESSION_SECRET,required"`
	ServerHost    string `env:"WORKADMIN_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"WORKADMIN_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"WORKADMIN_ENV" envDefault:"development"`
	LogLevel      string `env:"WORKADMIN_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"WORKADMIN_UPLOADS_DIR" envDefault:"./uploads"`

	// Cache configuration
	RedisURL     string `env:"WORKADMIN_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"WORKADMIN_CACHE_PREFIX" envDefault:"workadmin:"` // Redis key prefix
	CacheTTL     int    `env:"WORKADMIN_CACHE_TTL" envDefault:"60"`         // Statistics cache TTL in seconds
	CacheMaxSize int    `env:"WORKADMIN_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// GeoIP configuration
	GeoIPDBPath string `env:"WORKADMIN_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Auth log retention in days; logs older than this are pruned nightly.
	AuthLogRetentionDays int `env:"WORKADMIN_AUTH_LOG_RETENTION_DAYS" envDefault:"90"`

	// Seeding configuration
	DoSeed bool `env:"WORKADMIN_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return nil, fmt.Errorf("WORKADMIN_DB_DRIVER must be one of sqlite, postgres, mysql; got %q", cfg.DBDriver)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("WORKADMIN_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("WORKADMIN_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("WORKADMIN_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
