package filter

import (
	"database/sql"
	"testing"
	"time"

	"github.com/workadmin/workadmin-go/internal/model"
)

func ns(s string) sql.NullString {
	return sql.NullString{String: s, Valid: true}
}

func ni(v int64) sql.NullInt64 {
	return sql.NullInt64{Int64: v, Valid: true}
}

func seeker(name, email, jobType, mobile string, charges sql.NullInt64, aadhar, pan string, createdAt time.Time) model.JobSeekerWithProfile {
	s := model.JobSeekerWithProfile{
		Name:   name,
		Email:  email,
		Mobile: ns(mobile),
	}
	s.JobType = jobType
	s.MonthlyCharges = charges
	if aadhar != "" {
		s.AadharURL = ns(aadhar)
	}
	if pan != "" {
		s.PanURL = ns(pan)
	}
	s.CreatedAt = createdAt
	return s
}

func TestSearchProfiles(t *testing.T) {
	profiles := []model.Profile{
		{Name: "Ravi Kumar", Email: "ravi@example.com"},
		{Name: "Priya Sharma", Email: "priya@example.com"},
	}

	got := SearchProfiles(profiles, "RAVI")
	if len(got) != 1 || got[0].Name != "Ravi Kumar" {
		t.Errorf("case-insensitive name search failed: %+v", got)
	}

	got = SearchProfiles(profiles, "priya@")
	if len(got) != 1 || got[0].Email != "priya@example.com" {
		t.Errorf("email search failed: %+v", got)
	}

	// Empty query returns everything (reset behavior)
	got = SearchProfiles(profiles, "")
	if len(got) != 2 {
		t.Errorf("empty query should return all, got %d", len(got))
	}

	got = SearchProfiles(profiles, "nomatch")
	if len(got) != 0 {
		t.Errorf("non-matching query should return none, got %d", len(got))
	}
}

func TestSearchSeekers(t *testing.T) {
	now := time.Now()
	seekers := []model.JobSeekerWithProfile{
		seeker("Sunita Devi", "sunita@example.com", "cook", "9900112233", ni(12000), "a.pdf", "p.pdf", now),
		seeker("Mohan Lal", "mohan@example.com", "driver", "9812345670", sql.NullInt64{}, "", "", now),
	}

	if got := SearchSeekers(seekers, "COOK"); len(got) != 1 || got[0].Name != "Sunita Devi" {
		t.Errorf("job type search failed: %+v", got)
	}
	if got := SearchSeekers(seekers, "981234"); len(got) != 1 || got[0].Name != "Mohan Lal" {
		t.Errorf("mobile search failed: %+v", got)
	}
	if got := SearchSeekers(seekers, ""); len(got) != 2 {
		t.Errorf("empty query should return all, got %d", len(got))
	}
}

func TestSearchPosts(t *testing.T) {
	posts := []model.EnrichedPost{
		{JobPost: model.JobPost{JobTitle: "Closed-door kitchen chef", JobType: "cook", Location: "Mumbai"}, UserName: "Ravi Kumar"},
		{JobPost: model.JobPost{JobTitle: "Driver wanted", JobType: "driver", Location: "Delhi"}, UserName: "Unknown User"},
	}

	// Substring match against the title, case-insensitively
	got := SearchPosts(posts, "closed")
	if len(got) != 1 || got[0].JobTitle != "Closed-door kitchen chef" {
		t.Errorf("title search failed: %+v", got)
	}

	// Author name is searchable
	got = SearchPosts(posts, "ravi")
	if len(got) != 1 {
		t.Errorf("author search failed: %+v", got)
	}

	// Location is searchable
	got = SearchPosts(posts, "delhi")
	if len(got) != 1 || got[0].Location != "Delhi" {
		t.Errorf("location search failed: %+v", got)
	}
}

func TestApplySeekerFilters_JobType(t *testing.T) {
	now := time.Now()
	seekers := []model.JobSeekerWithProfile{
		seeker("A", "a@x.com", "cook", "", ni(10000), "", "", now),
		seeker("B", "b@x.com", "driver", "", ni(8000), "", "", now),
	}

	got := ApplySeekerFilters(seekers, SeekerFilters{JobType: "cook"}, now)
	if len(got) != 1 || got[0].Name != "A" {
		t.Errorf("job type filter failed: %+v", got)
	}
}

func TestApplySeekerFilters_ChargesInclusive(t *testing.T) {
	now := time.Now()
	seekers := []model.JobSeekerWithProfile{
		seeker("Low", "l@x.com", "cook", "", ni(5000), "", "", now),
		seeker("Mid", "m@x.com", "cook", "", ni(10000), "", "", now),
		seeker("High", "h@x.com", "cook", "", ni(20000), "", "", now),
		seeker("Unset", "u@x.com", "cook", "", sql.NullInt64{}, "", "", now),
	}

	// Bounds are inclusive
	got := ApplySeekerFilters(seekers, SeekerFilters{MinCharges: ni(5000), MaxCharges: ni(10000)}, now)
	if len(got) != 2 {
		t.Fatalf("inclusive bounds: got %d seekers, want 2", len(got))
	}

	// Missing charges compare as 0, so a min of 1 excludes them
	got = ApplySeekerFilters(seekers, SeekerFilters{MinCharges: ni(1)}, now)
	for _, s := range got {
		if s.Name == "Unset" {
			t.Error("seeker with no charges should compare as 0 and be excluded by min=1")
		}
	}

	// A max filter keeps them, since 0 <= max
	got = ApplySeekerFilters(seekers, SeekerFilters{MaxCharges: ni(4000)}, now)
	if len(got) != 1 || got[0].Name != "Unset" {
		t.Errorf("max filter with null charges: %+v", got)
	}
}

func TestApplySeekerFilters_Documents(t *testing.T) {
	now := time.Now()
	both := seeker("Both", "b@x.com", "cook", "", ni(1), "a.pdf", "p.pdf", now)
	aadharOnly := seeker("Aadhar", "a@x.com", "cook", "", ni(1), "a.pdf", "", now)
	panOnly := seeker("Pan", "p@x.com", "cook", "", ni(1), "", "p.pdf", now)
	none := seeker("None", "n@x.com", "cook", "", ni(1), "", "", now)
	seekers := []model.JobSeekerWithProfile{both, aadharOnly, panOnly, none}

	cases := []struct {
		docs string
		want string
	}{
		{DocsBoth, "Both"},
		{DocsAadhar, "Aadhar"},
		{DocsPan, "Pan"},
		{DocsNone, "None"},
	}
	for _, tc := range cases {
		got := ApplySeekerFilters(seekers, SeekerFilters{Documents: tc.docs}, now)
		if len(got) != 1 || got[0].Name != tc.want {
			t.Errorf("documents=%q: got %+v, want only %s", tc.docs, got, tc.want)
		}
	}

	// No documents filter keeps everyone
	if got := ApplySeekerFilters(seekers, SeekerFilters{}, now); len(got) != 4 {
		t.Errorf("no filter: got %d, want 4", len(got))
	}
}

func TestApplySeekerFilters_DateRange(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 0, 0, 0, time.UTC)
	today := seeker("Today", "t@x.com", "cook", "", ni(1), "", "", now.Add(-2*time.Hour))
	thisWeek := seeker("Week", "w@x.com", "cook", "", ni(1), "", "", now.AddDate(0, 0, -3))
	thisMonth := seeker("Month", "m@x.com", "cook", "", ni(1), "", "", now.AddDate(0, 0, -20))
	old := seeker("Old", "o@x.com", "cook", "", ni(1), "", "", now.AddDate(0, 0, -60))
	seekers := []model.JobSeekerWithProfile{today, thisWeek, thisMonth, old}

	cases := []struct {
		dateRange string
		want      int
	}{
		{RangeToday, 1},
		{RangeWeek, 2},
		{RangeMonth, 3},
		{RangeAll, 4},
		{"", 4},
	}
	for _, tc := range cases {
		got := ApplySeekerFilters(seekers, SeekerFilters{DateRange: tc.dateRange}, now)
		if len(got) != tc.want {
			t.Errorf("dateRange=%q: got %d, want %d", tc.dateRange, len(got), tc.want)
		}
	}
}

func TestApplySeekerFilters_Conjunctive(t *testing.T) {
	now := time.Now()
	seekers := []model.JobSeekerWithProfile{
		seeker("Match", "m@x.com", "cook", "", ni(10000), "a.pdf", "p.pdf", now),
		seeker("WrongType", "w@x.com", "driver", "", ni(10000), "a.pdf", "p.pdf", now),
		seeker("TooCheap", "c@x.com", "cook", "", ni(100), "a.pdf", "p.pdf", now),
		seeker("NoDocs", "n@x.com", "cook", "", ni(10000), "", "", now),
	}

	got := ApplySeekerFilters(seekers, SeekerFilters{
		JobType:    "cook",
		MinCharges: ni(5000),
		Documents:  DocsBoth,
	}, now)

	if len(got) != 1 || got[0].Name != "Match" {
		t.Errorf("conjunctive filters: got %+v, want only Match", got)
	}
}

func TestSummarize(t *testing.T) {
	users := []model.Profile{
		{UserType: model.UserTypeUser, Status: ns(model.StatusApproved)},
		{UserType: model.UserTypeUser, Status: ns(model.StatusPending)},
		{UserType: model.UserTypeUser}, // NULL status counts as pending
	}
	now := time.Now()
	seekers := []model.JobSeekerWithProfile{
		seeker("V", "v@x.com", "cook", "", ni(1), "a.pdf", "p.pdf", now),
		seeker("U", "u@x.com", "cook", "", ni(1), "a.pdf", "", now),
	}
	seekers[0].Status = ns(model.StatusApproved)
	seekers[1].Status = ns(model.StatusRejected)

	s := Summarize(users, seekers)

	if s.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", s.TotalUsers)
	}
	if s.TotalSeekers != 2 {
		t.Errorf("TotalSeekers = %d, want 2", s.TotalSeekers)
	}
	if s.VerifiedDocs != 1 {
		t.Errorf("VerifiedDocs = %d, want 1", s.VerifiedDocs)
	}
	if s.Pending != 2 {
		t.Errorf("Pending = %d, want 2", s.Pending)
	}
	if s.Approved != 2 {
		t.Errorf("Approved = %d, want 2", s.Approved)
	}
	if s.Rejected != 1 {
		t.Errorf("Rejected = %d, want 1", s.Rejected)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2026, 3, 15, 23, 45, 0, 0, loc)
	got := StartOfDay(ts)
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}
