package model

import (
	"database/sql"
	"strings"
	"time"
)

// Fallbacks shown when a post's author profile is missing or incomplete.
const (
	UnknownUserName  = "Unknown User"
	UnknownUserEmail = "No email"
)

// Job post lifecycle statuses.
const (
	PostStatusActive = "active"
	PostStatusClosed = "closed"
	PostStatusFilled = "filled"
)

// JobPost represents a job posting created by a marketplace user.
type JobPost struct {
	ID               string         `json:"id"`
	UserID           string         `json:"user_id"`
	JobTitle         string         `json:"job_title"`
	JobCategory      string         `json:"job_category"`
	JobType          string         `json:"job_type"`
	Location         string         `json:"location"`
	Description      string         `json:"description"`
	RequiredSkills   sql.NullString `json:"required_skills"`
	Experience       sql.NullString `json:"experience"`
	NumberOfOpenings sql.NullInt64  `json:"number_of_openings"`
	Salary           sql.NullInt64  `json:"salary"`
	LastApplyDate    sql.NullTime   `json:"last_apply_date"`
	ContactEmail     sql.NullString `json:"contact_email"`
	Status           string         `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
}

// Skills splits the comma-separated required_skills field into trimmed,
// non-empty entries for display.
func (p JobPost) Skills() []string {
	if !p.RequiredSkills.Valid {
		return nil
	}
	var out []string
	for _, s := range strings.Split(p.RequiredSkills.String, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnrichedPost is a job post joined with its author's name and email.
type EnrichedPost struct {
	JobPost
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}
