package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

const seekerColumns = "id, profile_id, job_type, monthly_charges, location, experience, photo_url, aadhar_url, pan_url, created_at"

// CreateJobSeekerParams holds the fields for creating a job seeker profile.
type CreateJobSeekerParams struct {
	ProfileID      string
	JobType        string
	MonthlyCharges sql.NullInt64
	Location       string
	Experience     string
	PhotoURL       sql.NullString
	AadharURL      sql.NullString
	PanURL         sql.NullString
}

// CreateJobSeeker inserts a new job seeker row and returns it.
func (q *Queries) CreateJobSeeker(ctx context.Context, arg CreateJobSeekerParams) (model.JobSeeker, error) {
	s := model.JobSeeker{
		ID:             uuid.NewString(),
		ProfileID:      arg.ProfileID,
		JobType:        arg.JobType,
		MonthlyCharges: arg.MonthlyCharges,
		Location:       arg.Location,
		Experience:     arg.Experience,
		PhotoURL:       arg.PhotoURL,
		AadharURL:      arg.AadharURL,
		PanURL:         arg.PanURL,
		CreatedAt:      time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO job_seekers (id, profile_id, job_type, monthly_charges, location, experience, photo_url, aadhar_url, pan_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		s.ID, s.ProfileID, s.JobType, s.MonthlyCharges, s.Location, s.Experience,
		s.PhotoURL, s.AadharURL, s.PanURL, s.CreatedAt)
	if err != nil {
		return model.JobSeeker{}, err
	}
	return s, nil
}

// GetJobSeeker fetches a job seeker by primary key.
func (q *Queries) GetJobSeeker(ctx context.Context, id string) (model.JobSeeker, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+seekerColumns+" FROM job_seekers WHERE id = ?"), id)

	var s model.JobSeeker
	err := row.Scan(&s.ID, &s.ProfileID, &s.JobType, &s.MonthlyCharges, &s.Location,
		&s.Experience, &s.PhotoURL, &s.AadharURL, &s.PanURL, &s.CreatedAt)
	if err != nil {
		return model.JobSeeker{}, notFound(err)
	}
	return s, nil
}

// ListJobSeekers returns all job seekers joined with their account
// profiles, newest first.
func (q *Queries) ListJobSeekers(ctx context.Context) ([]model.JobSeekerWithProfile, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT s.id, s.profile_id, s.job_type, s.monthly_charges, s.location, s.experience,
		       s.photo_url, s.aadhar_url, s.pan_url, s.created_at,
		       p.name, p.email, p.mobile, p.status
		FROM job_seekers s
		JOIN profiles p ON p.id = s.profile_id
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.JobSeekerWithProfile
	for rows.Next() {
		var s model.JobSeekerWithProfile
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.JobType, &s.MonthlyCharges, &s.Location,
			&s.Experience, &s.PhotoURL, &s.AadharURL, &s.PanURL, &s.CreatedAt,
			&s.Name, &s.Email, &s.Mobile, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetJobSeekerByProfileID fetches the job seeker row attached to a profile.
func (q *Queries) GetJobSeekerByProfileID(ctx context.Context, profileID string) (model.JobSeeker, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+seekerColumns+" FROM job_seekers WHERE profile_id = ?"), profileID)

	var s model.JobSeeker
	err := row.Scan(&s.ID, &s.ProfileID, &s.JobType, &s.MonthlyCharges, &s.Location,
		&s.Experience, &s.PhotoURL, &s.AadharURL, &s.PanURL, &s.CreatedAt)
	if err != nil {
		return model.JobSeeker{}, notFound(err)
	}
	return s, nil
}
