package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/store"
)

// DashboardData aggregates everything the admin views render: the
// review queue, both account listings, enriched job posts and banners.
type DashboardData struct {
	Pending []model.Profile
	Users   []model.Profile
	Seekers []model.JobSeekerWithProfile
	Posts   []model.EnrichedPost
	Banners []model.Banner
}

// DashboardService loads the data sets behind the admin views.
type DashboardService struct {
	db *store.DB
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(db *store.DB) *DashboardService {
	return &DashboardService{db: db}
}

// FetchAll loads every dashboard data set concurrently. Each goroutine
// writes a disjoint field, so no locking is needed; the first error
// cancels the rest and is reported once.
func (s *DashboardService) FetchAll(ctx context.Context) (*DashboardData, error) {
	q := store.New(s.db)
	data := &DashboardData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Pending, err = q.ListPendingProfiles(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Users, err = q.ListProfilesByType(gctx, model.UserTypeUser)
		return err
	})
	g.Go(func() error {
		var err error
		data.Seekers, err = q.ListJobSeekers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Posts, err = s.enrichedPosts(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		data.Banners, err = q.ListBanners(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dashboard data: %w", err)
	}
	return data, nil
}

// Posts returns all job posts with author details attached.
func (s *DashboardService) Posts(ctx context.Context) ([]model.EnrichedPost, error) {
	return s.enrichedPosts(ctx, store.New(s.db))
}

// Post returns a single job post with author details attached.
func (s *DashboardService) Post(ctx context.Context, id string) (model.EnrichedPost, error) {
	q := store.New(s.db)

	post, err := q.GetJobPost(ctx, id)
	if err != nil {
		return model.EnrichedPost{}, err
	}

	profiles, err := q.GetProfilesByIDs(ctx, []string{post.UserID})
	if err != nil {
		return model.EnrichedPost{}, err
	}

	enriched := JoinPosts([]model.JobPost{post}, profiles)
	return enriched[0], nil
}

func (s *DashboardService) enrichedPosts(ctx context.Context, q *store.Queries) ([]model.EnrichedPost, error) {
	posts, err := q.ListJobPosts(ctx)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			ids = append(ids, p.UserID)
		}
	}

	profiles, err := q.GetProfilesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return JoinPosts(posts, profiles), nil
}

// JoinPosts attaches author name and email to each post. Posts whose
// author profile no longer exists fall back to placeholder values so
// the listing never breaks on orphaned posts.
func JoinPosts(posts []model.JobPost, profiles []model.Profile) []model.EnrichedPost {
	byID := make(map[string]model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]model.EnrichedPost, 0, len(posts))
	for _, post := range posts {
		enriched := model.EnrichedPost{
			JobPost:   post,
			UserName:  model.UnknownUserName,
			UserEmail: model.UnknownUserEmail,
		}
		if author, ok := byID[post.UserID]; ok {
			if author.Name != "" {
				enriched.UserName = author.Name
			}
			if author.Email != "" {
				enriched.UserEmail = author.Email
			}
		}
		out = append(out, enriched)
	}
	return out
}
