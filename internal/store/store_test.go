package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/util"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) *DB {
	t.Helper()

	f, err := os.CreateTemp("", "workadmin-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := Open(DriverSQLite, dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("Open: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
		os.Remove(dbPath)
	})

	return db
}

func TestCreateProfile(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	p, err := q.CreateProfile(ctx, CreateProfileParams{
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		UserType: model.UserTypeUser,
		Status:   util.NullStringFromValue(model.StatusPending),
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if p.ID == "" {
		t.Error("profile ID should not be empty")
	}

	found, err := q.GetProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if found.Email != "ravi@example.com" {
		t.Errorf("Email = %q, want ravi@example.com", found.Email)
	}
	if !found.IsPending() {
		t.Error("new profile should be pending")
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	db := testDB(t)
	q := New(db)

	_, err := q.GetProfile(context.Background(), "missing-id")
	if err != ErrNotFound {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListPendingProfiles_IncludesNullStatus(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	mustCreateProfile(t, q, "pending@example.com", util.NullStringFromValue(model.StatusPending))
	mustCreateProfile(t, q, "null@example.com", sql.NullString{})
	mustCreateProfile(t, q, "approved@example.com", util.NullStringFromValue(model.StatusApproved))

	pending, err := q.ListPendingProfiles(ctx)
	if err != nil {
		t.Fatalf("ListPendingProfiles: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("len(pending) = %d, want 2", len(pending))
	}
	for _, p := range pending {
		if p.Email == "approved@example.com" {
			t.Error("approved profile should not be listed as pending")
		}
	}
}

func TestUpdateProfileStatus_OnlyFromPending(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	p := mustCreateProfile(t, q, "review@example.com", util.NullStringFromValue(model.StatusPending))

	n, err := q.UpdateProfileStatus(ctx, p.ID, model.StatusApproved)
	if err != nil {
		t.Fatalf("UpdateProfileStatus: %v", err)
	}
	if n != 1 {
		t.Errorf("rows affected = %d, want 1", n)
	}

	// Second review attempt must be a no-op
	n, err = q.UpdateProfileStatus(ctx, p.ID, model.StatusRejected)
	if err != nil {
		t.Fatalf("UpdateProfileStatus: %v", err)
	}
	if n != 0 {
		t.Errorf("rows affected = %d, want 0 for already reviewed profile", n)
	}

	got, err := q.GetProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Status.String != model.StatusApproved {
		t.Errorf("Status = %q, want approved", got.Status.String)
	}
}

func TestGetProfilesByIDs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	a := mustCreateProfile(t, q, "a@example.com", sql.NullString{})
	b := mustCreateProfile(t, q, "b@example.com", sql.NullString{})

	got, err := q.GetProfilesByIDs(ctx, []string{a.ID, b.ID, "missing"})
	if err != nil {
		t.Fatalf("GetProfilesByIDs: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}

	got, err = q.GetProfilesByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("GetProfilesByIDs(nil): %v", err)
	}
	if got != nil {
		t.Errorf("empty input should return nil, got %v", got)
	}
}

func TestBannerActivation(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	first, err := q.CreateBanner(ctx, CreateBannerParams{
		ImageURL:    "/uploads/banners/first.webp",
		StoragePath: "banners/first.webp",
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	second, err := q.CreateBanner(ctx, CreateBannerParams{
		ImageURL:    "/uploads/banners/second.webp",
		StoragePath: "banners/second.webp",
	})
	if err != nil {
		t.Fatalf("CreateBanner: %v", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	qtx := q.WithTx(tx)
	if err := qtx.DeactivateAllBanners(ctx); err != nil {
		t.Fatalf("DeactivateAllBanners: %v", err)
	}
	if _, err := qtx.ActivateBanner(ctx, second.ID); err != nil {
		t.Fatalf("ActivateBanner: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	active, err := q.GetActiveBanner(ctx)
	if err != nil {
		t.Fatalf("GetActiveBanner: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("active = %s, want %s", active.ID, second.ID)
	}

	old, err := q.GetBanner(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetBanner: %v", err)
	}
	if old.IsActive {
		t.Error("first banner should have been deactivated")
	}
}

func TestCreateJobPost_FullListing(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	p, err := q.CreateJobPost(ctx, CreateJobPostParams{
		UserID:           "user-1",
		JobTitle:         "Cook needed",
		JobCategory:      "household",
		JobType:          "cook",
		Location:         "Mumbai",
		Description:      "Full-time cook for a family of four.",
		RequiredSkills:   util.NullStringFromValue("north indian, south indian, tiffin"),
		Experience:       util.NullStringFromValue("3+ years"),
		NumberOfOpenings: sql.NullInt64{Int64: 2, Valid: true},
		Salary:           sql.NullInt64{Int64: 15000, Valid: true},
		Status:           model.PostStatusClosed,
	})
	if err != nil {
		t.Fatalf("CreateJobPost: %v", err)
	}

	got, err := q.GetJobPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetJobPost: %v", err)
	}
	if got.JobCategory != "household" {
		t.Errorf("JobCategory = %q, want household", got.JobCategory)
	}
	if !got.RequiredSkills.Valid || got.RequiredSkills.String != "north indian, south indian, tiffin" {
		t.Errorf("RequiredSkills = %+v", got.RequiredSkills)
	}
	if !got.Experience.Valid || got.Experience.String != "3+ years" {
		t.Errorf("Experience = %+v", got.Experience)
	}
	if !got.NumberOfOpenings.Valid || got.NumberOfOpenings.Int64 != 2 {
		t.Errorf("NumberOfOpenings = %+v, want 2", got.NumberOfOpenings)
	}
	if got.Status != model.PostStatusClosed {
		t.Errorf("Status = %q, want %q", got.Status, model.PostStatusClosed)
	}

	skills := got.Skills()
	if len(skills) != 3 || skills[0] != "north indian" || skills[2] != "tiffin" {
		t.Errorf("Skills() = %v", skills)
	}
}

func TestCreateJobPost_DefaultsToActive(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	p, err := q.CreateJobPost(ctx, CreateJobPostParams{
		UserID:   "user-1",
		JobTitle: "Driver wanted",
		JobType:  "driver",
		Location: "Pune",
	})
	if err != nil {
		t.Fatalf("CreateJobPost: %v", err)
	}

	got, err := q.GetJobPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetJobPost: %v", err)
	}
	if got.Status != model.PostStatusActive {
		t.Errorf("Status = %q, want %q", got.Status, model.PostStatusActive)
	}
	if got.Skills() != nil {
		t.Errorf("Skills() = %v, want nil when none recorded", got.Skills())
	}
}

func TestDeleteJobPost(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	p, err := q.CreateJobPost(ctx, CreateJobPostParams{
		UserID:      "user-1",
		JobTitle:    "Cook needed",
		JobType:     "cook",
		Location:    "Mumbai",
		Description: "Full-time cook.",
	})
	if err != nil {
		t.Fatalf("CreateJobPost: %v", err)
	}

	n, err := q.DeleteJobPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("DeleteJobPost: %v", err)
	}
	if n != 1 {
		t.Errorf("rows affected = %d, want 1", n)
	}

	n, err = q.DeleteJobPost(ctx, p.ID)
	if err != nil {
		t.Fatalf("DeleteJobPost: %v", err)
	}
	if n != 0 {
		t.Errorf("rows affected = %d, want 0 for missing post", n)
	}
}

func TestAuthLogs(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	_, err := q.InsertLoginLog(ctx, InsertLoginLogParams{
		Email:     "admin@example.com",
		IP:        "203.0.113.9",
		UserAgent: "test-agent",
		Country:   "India",
		Success:   true,
	})
	if err != nil {
		t.Fatalf("InsertLoginLog: %v", err)
	}
	_, err = q.InsertLoginLog(ctx, InsertLoginLogParams{
		Email:     "admin@example.com",
		IP:        "203.0.113.9",
		UserAgent: "test-agent",
		Country:   "India",
		Success:   false,
	})
	if err != nil {
		t.Fatalf("InsertLoginLog: %v", err)
	}

	n, err := q.CountLoginsSince(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("CountLoginsSince: %v", err)
	}
	if n != 1 {
		t.Errorf("CountLoginsSince = %d, want 1 (failed attempts excluded)", n)
	}

	logs, err := q.ListLoginLogs(ctx, 50)
	if err != nil {
		t.Fatalf("ListLoginLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("len(logs) = %d, want 2", len(logs))
	}

	pruned, err := q.PruneAuthLogsBefore(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("PruneAuthLogsBefore: %v", err)
	}
	if pruned != 2 {
		t.Errorf("pruned = %d, want 2", pruned)
	}
}

func TestSeed(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	// Second run must be a no-op
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed (second run): %v", err)
	}

	q := New(db)
	admin, err := q.GetAdminByEmail(ctx, DefaultAdminEmail)
	if err != nil {
		t.Fatalf("GetAdminByEmail: %v", err)
	}
	if admin.Name != DefaultAdminName {
		t.Errorf("Name = %q, want %q", admin.Name, DefaultAdminName)
	}

	n, err := q.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins: %v", err)
	}
	if n != 1 {
		t.Errorf("CountAdmins = %d, want 1", n)
	}
}

func TestSeedDemo_RecordsSignupTrail(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	q := New(db)

	if err := SeedDemo(ctx, db); err != nil {
		t.Fatalf("SeedDemo: %v", err)
	}

	logs, err := q.ListSignupLogs(ctx, 50)
	if err != nil {
		t.Fatalf("ListSignupLogs: %v", err)
	}
	if len(logs) != 5 {
		t.Fatalf("len(logs) = %d, want one per seeded profile", len(logs))
	}

	for _, l := range logs {
		if !l.UserID.Valid || l.UserID.String == "" {
			t.Errorf("signup log %s: missing UserID", l.Email)
			continue
		}
		p, err := q.GetProfile(ctx, l.UserID.String)
		if err != nil {
			t.Errorf("signup log %s: profile lookup: %v", l.Email, err)
			continue
		}
		if !l.UserType.Valid || l.UserType.String != p.UserType {
			t.Errorf("signup log %s: UserType = %+v, want %q", l.Email, l.UserType, p.UserType)
		}
		if l.Email != p.Email {
			t.Errorf("signup log UserID %s: Email = %q, want %q", l.UserID.String, l.Email, p.Email)
		}
	}
}

func mustCreateProfile(t *testing.T, q *Queries, email string, status sql.NullString) model.Profile {
	t.Helper()
	p, err := q.CreateProfile(ctx(), CreateProfileParams{
		Name:     "Test Person",
		Email:    email,
		UserType: model.UserTypeUser,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("CreateProfile(%s): %v", email, err)
	}
	return p
}

func ctx() context.Context { return context.Background() }
