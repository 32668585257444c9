package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/workadmin/workadmin-go/internal/auth"
	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/util"
)

// Default admin credentials
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates the default admin account if no admins exist.
func Seed(ctx context.Context, db *DB) error {
	queries := New(db)

	_, err := queries.GetAdminByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin account already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for admin account: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
	})
	if err != nil {
		return fmt.Errorf("creating admin account: %w", err)
	}

	slog.Info("created default admin account",
		"id", admin.ID,
		"email", admin.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// SeedDemo populates the database with sample marketplace data for
// development. Safe to call repeatedly; it skips when profiles exist.
func SeedDemo(ctx context.Context, db *DB) error {
	queries := New(db)

	existing, err := queries.ListPendingProfiles(ctx)
	if err != nil {
		return fmt.Errorf("checking for existing profiles: %w", err)
	}
	if len(existing) > 0 {
		slog.Info("profiles already exist, skipping demo seed")
		return nil
	}

	users := []CreateProfileParams{
		{Name: "Ravi Kumar", Email: "ravi@example.com", Mobile: util.NullStringFromValue("9876543210"), UserType: model.UserTypeUser, Status: util.NullStringFromValue(model.StatusApproved)},
		{Name: "Priya Sharma", Email: "priya@example.com", Mobile: util.NullStringFromValue("9812345670"), UserType: model.UserTypeUser, Status: util.NullStringFromValue(model.StatusPending)},
		{Name: "Amit Patel", Email: "amit@example.com", UserType: model.UserTypeUser, Status: sql.NullString{}},
	}

	var userIDs []string
	var created []model.Profile
	for _, u := range users {
		p, err := queries.CreateProfile(ctx, u)
		if err != nil {
			return fmt.Errorf("seeding profile %s: %w", u.Email, err)
		}
		userIDs = append(userIDs, p.ID)
		created = append(created, p)
	}

	seekers := []struct {
		profile CreateProfileParams
		seeker  CreateJobSeekerParams
	}{
		{
			profile: CreateProfileParams{Name: "Sunita Devi", Email: "sunita@example.com", Mobile: util.NullStringFromValue("9900112233"), UserType: model.UserTypeJobSeeker, Status: util.NullStringFromValue(model.StatusApproved)},
			seeker: CreateJobSeekerParams{
				JobType:        "cook",
				MonthlyCharges: util.NullInt64FromValue(12000),
				Location:       "Mumbai",
				Experience:     "5 years",
				AadharURL:      util.NullStringFromValue("/uploads/docs/sunita-aadhar.pdf"),
				PanURL:         util.NullStringFromValue("/uploads/docs/sunita-pan.pdf"),
			},
		},
		{
			profile: CreateProfileParams{Name: "Mohan Lal", Email: "mohan@example.com", UserType: model.UserTypeJobSeeker, Status: util.NullStringFromValue(model.StatusPending)},
			seeker: CreateJobSeekerParams{
				JobType:    "driver",
				Location:   "Delhi",
				Experience: "2 years",
				AadharURL:  util.NullStringFromValue("/uploads/docs/mohan-aadhar.pdf"),
			},
		},
	}

	for _, s := range seekers {
		p, err := queries.CreateProfile(ctx, s.profile)
		if err != nil {
			return fmt.Errorf("seeding profile %s: %w", s.profile.Email, err)
		}
		created = append(created, p)
		s.seeker.ProfileID = p.ID
		if _, err := queries.CreateJobSeeker(ctx, s.seeker); err != nil {
			return fmt.Errorf("seeding job seeker %s: %w", s.profile.Email, err)
		}
	}

	posts := []CreateJobPostParams{
		{
			UserID:           userIDs[0],
			JobTitle:         "Cook needed",
			JobCategory:      "household",
			JobType:          "cook",
			Location:         "Mumbai",
			Description:      "Full-time cook for a family of four.",
			RequiredSkills:   util.NullStringFromValue("north indian, south indian, tiffin"),
			Experience:       util.NullStringFromValue("3+ years"),
			NumberOfOpenings: util.NullInt64FromValue(1),
			Salary:           util.NullInt64FromValue(15000),
		},
		{
			UserID:           userIDs[1],
			JobTitle:         "Driver wanted",
			JobCategory:      "transport",
			JobType:          "driver",
			Location:         "Pune",
			Description:      "Part-time driver, weekday mornings.",
			NumberOfOpenings: util.NullInt64FromValue(2),
			Status:           model.PostStatusClosed,
		},
	}
	for _, p := range posts {
		if _, err := queries.CreateJobPost(ctx, p); err != nil {
			return fmt.Errorf("seeding job post %q: %w", p.JobTitle, err)
		}
	}

	// Simulated registration trail so the logs view has data before any
	// real traffic arrives.
	signupAgents := []string{
		"Chrome 120.0 / Android (mobile)",
		"Safari 17.2 / iOS (mobile)",
		"Firefox 121.0 / Windows",
		"Chrome 120.0 / Windows",
		"Edge 120.0 / Windows",
	}
	for i, p := range created {
		if _, err := queries.InsertSignupLog(ctx, InsertSignupLogParams{
			UserID:    util.NullStringFromValue(p.ID),
			Email:     p.Email,
			Name:      util.NullStringFromValue(p.Name),
			UserType:  util.NullStringFromValue(p.UserType),
			IP:        fmt.Sprintf("203.0.113.%d", i+10),
			UserAgent: signupAgents[i%len(signupAgents)],
			Country:   "India",
		}); err != nil {
			return fmt.Errorf("seeding signup log %s: %w", p.Email, err)
		}
	}

	slog.Info("seeded demo marketplace data",
		"profiles", len(created),
		"posts", len(posts),
		"signup_logs", len(created),
	)

	return nil
}
