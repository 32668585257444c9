package model

import (
	"database/sql"
	"time"
)

// SignupLog is an append-only record of a registration attempt. UserID,
// Name and UserType are a denormalized snapshot of the profile at signup
// time, so the row stays meaningful if the profile changes later.
type SignupLog struct {
	ID        string         `json:"id"`
	UserID    sql.NullString `json:"user_id"`
	Email     string         `json:"email"`
	Name      sql.NullString `json:"name"`
	UserType  sql.NullString `json:"user_type"`
	IP        string         `json:"ip"`
	UserAgent string         `json:"user_agent"`
	Country   string         `json:"country"`
	CreatedAt time.Time      `json:"created_at"`
}

// LoginLog is an append-only record of a sign-in attempt.
type LoginLog struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	IP        string         `json:"ip"`
	UserAgent string         `json:"user_agent"`
	Country   string         `json:"country"`
	Success   bool           `json:"success"`
	AdminID   sql.NullString `json:"admin_id"`
	CreatedAt time.Time      `json:"created_at"`
}
