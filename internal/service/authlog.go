package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mileusna/useragent"

	"github.com/workadmin/workadmin-go/internal/geoip"
	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/store"
	"github.com/workadmin/workadmin-go/internal/util"
)

// DefaultLogLimit is how many auth log rows the dashboard shows.
const DefaultLogLimit = 50

// AuthLogService records and lists sign-in and registration activity.
// Records are enriched with a parsed user agent and a GeoIP country.
type AuthLogService struct {
	db  *store.DB
	geo *geoip.Lookup
}

// NewAuthLogService creates an auth log service. The GeoIP lookup may be
// running in disabled mode; records then carry an empty country.
func NewAuthLogService(db *store.DB, geo *geoip.Lookup) *AuthLogService {
	return &AuthLogService{db: db, geo: geo}
}

// RecordSignup appends a registration attempt. userID, name and userType
// snapshot the new profile; the row stays meaningful even if the profile
// is renamed or retyped later.
func (s *AuthLogService) RecordSignup(ctx context.Context, userID, email, name, userType, ip, rawUA string) error {
	_, err := store.New(s.db).InsertSignupLog(ctx, store.InsertSignupLogParams{
		UserID:    util.NullStringFromValue(userID),
		Email:     email,
		Name:      util.NullStringFromValue(name),
		UserType:  util.NullStringFromValue(userType),
		IP:        ip,
		UserAgent: FormatUserAgent(rawUA),
		Country:   s.country(ip),
	})
	if err != nil {
		return fmt.Errorf("recording signup: %w", err)
	}
	return nil
}

// RecordLogin appends a sign-in attempt. adminID is empty for failed
// attempts where no account matched.
func (s *AuthLogService) RecordLogin(ctx context.Context, email, ip, rawUA string, success bool, adminID string) error {
	_, err := store.New(s.db).InsertLoginLog(ctx, store.InsertLoginLogParams{
		Email:     email,
		IP:        ip,
		UserAgent: FormatUserAgent(rawUA),
		Country:   s.country(ip),
		Success:   success,
		AdminID:   util.NullStringFromValue(adminID),
	})
	if err != nil {
		return fmt.Errorf("recording login: %w", err)
	}
	return nil
}

// RecentSignups returns the latest registration records.
func (s *AuthLogService) RecentSignups(ctx context.Context) ([]model.SignupLog, error) {
	return store.New(s.db).ListSignupLogs(ctx, DefaultLogLimit)
}

// RecentLogins returns the latest sign-in records.
func (s *AuthLogService) RecentLogins(ctx context.Context) ([]model.LoginLog, error) {
	return store.New(s.db).ListLoginLogs(ctx, DefaultLogLimit)
}

func (s *AuthLogService) country(ip string) string {
	if s.geo == nil {
		return ""
	}
	return s.geo.Country(ip)
}

// FormatUserAgent condenses a raw User-Agent header into a short
// "Browser version / OS" label for display. Unparseable strings are
// truncated rather than dropped.
func FormatUserAgent(raw string) string {
	if raw == "" {
		return ""
	}

	ua := useragent.Parse(raw)
	if ua.Name == "" {
		if len(raw) > 120 {
			return raw[:120]
		}
		return raw
	}

	var b strings.Builder
	b.WriteString(ua.Name)
	if ua.Version != "" {
		b.WriteString(" ")
		b.WriteString(ua.Version)
	}
	if ua.OS != "" {
		b.WriteString(" / ")
		b.WriteString(ua.OS)
	}
	if ua.Mobile {
		b.WriteString(" (mobile)")
	}
	return b.String()
}
