// Package model defines domain models and types used throughout the
// application including Admin, Profile, JobSeeker, JobPost and Banner.
package model

import "time"

// Admin represents a staff account with access to the dashboard.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
