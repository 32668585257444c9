package model

import (
	"database/sql"
	"time"
)

// JobSeeker holds the work profile attached to a jobseeker account.
type JobSeeker struct {
	ID             string         `json:"id"`
	ProfileID      string         `json:"profile_id"`
	JobType        string         `json:"job_type"`
	MonthlyCharges sql.NullInt64  `json:"monthly_charges"`
	Location       string         `json:"location"`
	Experience     string         `json:"experience"`
	PhotoURL       sql.NullString `json:"photo_url"`
	AadharURL      sql.NullString `json:"aadhar_url"`
	PanURL         sql.NullString `json:"pan_url"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Verified reports whether both identity documents have been uploaded.
func (s JobSeeker) Verified() bool {
	return s.AadharURL.Valid && s.AadharURL.String != "" &&
		s.PanURL.Valid && s.PanURL.String != ""
}

// JobSeekerWithProfile pairs a work profile with its account row for the
// seeker listing and detail pages.
type JobSeekerWithProfile struct {
	JobSeeker
	Name   string         `json:"name"`
	Email  string         `json:"email"`
	Mobile sql.NullString `json:"mobile"`
	Status sql.NullString `json:"status"`
}
