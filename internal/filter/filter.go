// Package filter implements the in-memory search and filter layer used by
// the dashboard listing pages. All functions are pure: they take the
// fetched slices plus the filter parameters and return new slices, so the
// same logic is shared by handlers and tests.
package filter

import (
	"database/sql"
	"strings"
	"time"

	"github.com/workadmin/workadmin-go/internal/model"
)

// Document filter values.
const (
	DocsAll    = ""
	DocsBoth   = "both"
	DocsAadhar = "aadhar"
	DocsPan    = "pan"
	DocsNone   = "none"
)

// Date range filter values.
const (
	RangeAll    = "all"
	RangeToday  = "today"
	RangeWeek   = "7d"
	RangeMonth  = "30d"
)

// SeekerFilters holds the filter parameters for the job seeker listing.
// Zero values mean "no filter".
type SeekerFilters struct {
	JobType    string
	MinCharges sql.NullInt64
	MaxCharges sql.NullInt64
	Documents  string
	DateRange  string
}

// matches reports whether any of the fields contains the query,
// case-insensitively. An empty query matches everything.
func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// SearchProfiles returns the profiles whose name or email contains the
// query, case-insensitively.
func SearchProfiles(profiles []model.Profile, query string) []model.Profile {
	if query == "" {
		return profiles
	}
	var out []model.Profile
	for _, p := range profiles {
		if matches(query, p.Name, p.Email) {
			out = append(out, p)
		}
	}
	return out
}

// SearchSeekers returns the seekers whose name, email, job type or mobile
// contains the query, case-insensitively.
func SearchSeekers(seekers []model.JobSeekerWithProfile, query string) []model.JobSeekerWithProfile {
	if query == "" {
		return seekers
	}
	var out []model.JobSeekerWithProfile
	for _, s := range seekers {
		if matches(query, s.Name, s.Email, s.JobType, s.Mobile.String) {
			out = append(out, s)
		}
	}
	return out
}

// SearchPosts returns the posts whose title, author name, location or job
// type contains the query, case-insensitively.
func SearchPosts(posts []model.EnrichedPost, query string) []model.EnrichedPost {
	if query == "" {
		return posts
	}
	var out []model.EnrichedPost
	for _, p := range posts {
		if matches(query, p.JobTitle, p.UserName, p.Location, p.JobType) {
			out = append(out, p)
		}
	}
	return out
}

// ApplySeekerFilters applies the seeker listing filters conjunctively.
// A seeker must satisfy every active filter to be included. Seekers with
// no monthly charges are treated as charging 0 for the range comparison.
func ApplySeekerFilters(seekers []model.JobSeekerWithProfile, f SeekerFilters, now time.Time) []model.JobSeekerWithProfile {
	var out []model.JobSeekerWithProfile
	for _, s := range seekers {
		if !seekerMatchesFilters(s, f, now) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func seekerMatchesFilters(s model.JobSeekerWithProfile, f SeekerFilters, now time.Time) bool {
	if f.JobType != "" && !strings.EqualFold(s.JobType, f.JobType) {
		return false
	}

	charges := int64(0)
	if s.MonthlyCharges.Valid {
		charges = s.MonthlyCharges.Int64
	}
	if f.MinCharges.Valid && charges < f.MinCharges.Int64 {
		return false
	}
	if f.MaxCharges.Valid && charges > f.MaxCharges.Int64 {
		return false
	}

	hasAadhar := s.AadharURL.Valid && s.AadharURL.String != ""
	hasPan := s.PanURL.Valid && s.PanURL.String != ""
	switch f.Documents {
	case DocsBoth:
		if !hasAadhar || !hasPan {
			return false
		}
	case DocsAadhar:
		if !hasAadhar || hasPan {
			return false
		}
	case DocsPan:
		if !hasPan || hasAadhar {
			return false
		}
	case DocsNone:
		if hasAadhar || hasPan {
			return false
		}
	}

	if cutoff, ok := rangeCutoff(f.DateRange, now); ok && s.CreatedAt.Before(cutoff) {
		return false
	}

	return true
}

// rangeCutoff translates a date range value into a cutoff time. The
// second return value is false when the range places no restriction.
func rangeCutoff(dateRange string, now time.Time) (time.Time, bool) {
	switch dateRange {
	case RangeToday:
		return StartOfDay(now), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

// StartOfDay returns midnight of the given time in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
