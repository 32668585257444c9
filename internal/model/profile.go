package model

import (
	"database/sql"
	"time"
)

// Registration review statuses. A profile with a NULL status has never
// entered review and is treated as pending by the listing queries.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Account types.
const (
	UserTypeUser      = "user"
	UserTypeJobSeeker = "jobseeker"
)

// Profile represents a registered account on the marketplace. UpdatedAt
// is bumped by review decisions and backs the active-in-last-7-days
// counter.
type Profile struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Mobile    sql.NullString `json:"mobile"`
	UserType  string         `json:"user_type"`
	Status    sql.NullString `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// IsPending reports whether the profile is awaiting review. Profiles that
// never entered review carry a NULL status and count as pending.
func (p *Profile) IsPending() bool {
	return !p.Status.Valid || p.Status.String == StatusPending
}
