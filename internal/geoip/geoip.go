// Package geoip provides IP-to-country lookup using the MaxMind
// GeoLite2-Country database. Lookups degrade gracefully when no database
// is configured; auth logs then record an empty country.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/oschwald/maxminddb-golang"
)

// privateCIDRs contains parsed CIDR blocks for private IP ranges.
var privateCIDRs []*net.IPNet

func init() {
	privateBlocks := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	}

	for _, block := range privateBlocks {
		_, cidr, err := net.ParseCIDR(block)
		if err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup handles IP to country lookup. The database file can be swapped
// on disk and picked up by Reload without restarting.
type Lookup struct {
	db          *maxminddb.Reader
	dbPath      string
	dbModTime   time.Time
	initialized bool
	enabled     bool
	mu          sync.RWMutex
}

// geoRecord matches the GeoLite2-Country database structure.
type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// NewLookup creates a new GeoIP lookup instance.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Init initializes the GeoIP database from the given path. An empty path
// disables lookups.
func (g *Lookup) Init(dbPath string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.initialized = true
	g.dbPath = dbPath

	if dbPath == "" {
		g.enabled = false
		return nil
	}

	return g.loadDatabase()
}

// loadDatabase loads or reloads the MaxMind database.
// Caller must hold g.mu write lock.
func (g *Lookup) loadDatabase() error {
	info, err := os.Stat(g.dbPath)
	if err != nil {
		g.enabled = false
		if os.IsNotExist(err) {
			return fmt.Errorf("GeoIP database not found: %s", g.dbPath)
		}
		return fmt.Errorf("GeoIP database stat error: %w", err)
	}

	// Skip reload if not modified
	if g.db != nil && info.ModTime().Equal(g.dbModTime) {
		return nil
	}

	if g.db != nil {
		_ = g.db.Close()
		g.db = nil
	}

	db, err := maxminddb.Open(g.dbPath)
	if err != nil {
		g.enabled = false
		return fmt.Errorf("failed to open GeoIP database: %w", err)
	}

	g.db = db
	g.dbModTime = info.ModTime()
	g.enabled = true

	return nil
}

// Reload reloads the GeoIP database if the file on disk has been updated.
// Safe to call periodically from a cron job.
func (g *Lookup) Reload() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.dbPath == "" {
		return nil
	}

	return g.loadDatabase()
}

// LookupCountry returns the 2-letter ISO country code for an IP address.
// Returns "LOCAL" for private or loopback IPs and empty string when the
// lookup is disabled or the IP cannot be resolved.
func (g *Lookup) LookupCountry(ip string) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if !g.initialized {
		return ""
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}

	if isPrivateIP(parsedIP) || parsedIP.IsLoopback() {
		return "LOCAL"
	}

	if !g.enabled || g.db == nil {
		return ""
	}

	var record geoRecord
	if err := g.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}

	return record.Country.ISOCode
}

// Country returns a human-readable country name for an IP address, for
// display in the auth log pages.
func (g *Lookup) Country(ip string) string {
	return CountryName(g.LookupCountry(ip))
}

// IsEnabled returns whether GeoIP lookups are available.
func (g *Lookup) IsEnabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Close closes the GeoIP database.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		err := g.db.Close()
		g.db = nil
		g.enabled = false
		return err
	}
	return nil
}

// isPrivateIP checks if an IP address is in a private range.
func isPrivateIP(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// countryNames maps 2-letter country codes to display names for the
// markets the dashboard actually sees traffic from.
var countryNames = map[string]string{
	"LOCAL": "Local Network",
	"IN":    "India",
	"US":    "United States",
	"GB":    "United Kingdom",
	"AE":    "United Arab Emirates",
	"SA":    "Saudi Arabia",
	"QA":    "Qatar",
	"KW":    "Kuwait",
	"OM":    "Oman",
	"BH":    "Bahrain",
	"SG":    "Singapore",
	"MY":    "Malaysia",
	"NP":    "Nepal",
	"BD":    "Bangladesh",
	"LK":    "Sri Lanka",
	"PK":    "Pakistan",
	"CA":    "Canada",
	"AU":    "Australia",
	"NZ":    "New Zealand",
	"DE":    "Germany",
	"FR":    "France",
	"NL":    "Netherlands",
	"IT":    "Italy",
	"ES":    "Spain",
	"JP":    "Japan",
	"KR":    "South Korea",
	"CN":    "China",
	"HK":    "Hong Kong",
	"TH":    "Thailand",
	"ID":    "Indonesia",
	"PH":    "Philippines",
	"VN":    "Vietnam",
	"ZA":    "South Africa",
	"KE":    "Kenya",
	"NG":    "Nigeria",
	"EG":    "Egypt",
	"IL":    "Israel",
	"TR":    "Turkey",
	"BR":    "Brazil",
	"MX":    "Mexico",
	"RU":    "Russia",
	"UA":    "Ukraine",
}

// CountryName returns the full country name for a 2-letter country code.
// Unknown codes are returned as-is; an empty code maps to "Unknown".
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	if code == "" {
		return "Unknown"
	}
	return code
}
