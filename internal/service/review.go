// Package service implements the dashboard's business operations on top
// of the store layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/store"
)

// ErrNotPending is returned when a review decision targets a profile
// that has already been approved or rejected.
var ErrNotPending = errors.New("profile is not pending review")

// ReviewService applies approval decisions to pending registrations.
type ReviewService struct {
	db    *store.DB
	stats *StatsService
}

// NewReviewService creates a review service. The stats service may be
// nil, in which case counters are not invalidated.
func NewReviewService(db *store.DB, stats *StatsService) *ReviewService {
	return &ReviewService{db: db, stats: stats}
}

// Approve marks a pending profile as approved.
func (s *ReviewService) Approve(ctx context.Context, profileID, adminID string) error {
	return s.review(ctx, profileID, adminID, model.StatusApproved)
}

// Reject marks a pending profile as rejected.
func (s *ReviewService) Reject(ctx context.Context, profileID, adminID string) error {
	return s.review(ctx, profileID, adminID, model.StatusRejected)
}

// review updates the profile status. The underlying query only matches
// profiles that are still pending, so a concurrent decision loses
// cleanly with ErrNotPending instead of overwriting the first one.
func (s *ReviewService) review(ctx context.Context, profileID, adminID, status string) error {
	q := store.New(s.db)

	rows, err := q.UpdateProfileStatus(ctx, profileID, status)
	if err != nil {
		return fmt.Errorf("updating profile status: %w", err)
	}
	if rows == 0 {
		if _, err := q.GetProfile(ctx, profileID); errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return ErrNotPending
	}

	slog.Info("registration reviewed",
		"category", "review",
		"profile_id", profileID,
		"status", status,
		"admin_id", adminID,
	)

	if s.stats != nil {
		s.stats.Invalidate(ctx)
	}
	return nil
}
