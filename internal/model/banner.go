package model

import "time"

// Banner represents a promotional banner image. At most one banner is
// active at a time; activation deactivates all others in the same
// transaction.
type Banner struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"image_url"`
	StoragePath string    `json:"storage_path"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
