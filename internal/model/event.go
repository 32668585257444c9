package model

import (
	"database/sql"
	"time"
)

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth   = "auth"
	EventCategoryReview = "review"
	EventCategoryPost   = "post"
	EventCategoryBanner = "banner"
	EventCategorySystem = "system"
	EventCategoryCache  = "cache"
)

// Event represents a system event log entry.
type Event struct {
	ID        string
	Level     string
	Category  string
	Message   string
	AdminID   sql.NullString
	Metadata  string // JSON string
	CreatedAt time.Time
}
