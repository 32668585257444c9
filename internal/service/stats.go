package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/workadmin/workadmin-go/internal/cache"
	"github.com/workadmin/workadmin-go/internal/filter"
	"github.com/workadmin/workadmin-go/internal/store"
)

const statsCacheKey = "stats:overview"

// Stats holds the activity counters shown on the dashboard.
type Stats struct {
	SignupsToday     int64 `json:"signups_today"`
	ActiveThisWeek   int64 `json:"active_this_week"`
	SignupsThisMonth int64 `json:"signups_this_month"`
	LoginsToday      int64 `json:"logins_today"`
}

// StatsService computes dashboard activity statistics. Results are
// cached briefly since every dashboard view requests them.
type StatsService struct {
	db    *store.DB
	cache *cache.TypedCache[Stats]
	now   func() time.Time
}

// NewStatsService creates a stats service backed by the given cache.
func NewStatsService(db *store.DB, c cache.Cacher, ttl time.Duration) *StatsService {
	return &StatsService{
		db:    db,
		cache: cache.NewTypedCache[Stats](c, ttl),
		now:   time.Now,
	}
}

// Overview returns the current activity counters, computed from the
// database on cache miss. The four counts run concurrently.
func (s *StatsService) Overview(ctx context.Context) (*Stats, error) {
	return s.cache.GetOrSet(ctx, statsCacheKey, func() (*Stats, error) {
		return s.compute(ctx)
	})
}

// Invalidate drops the cached counters so the next Overview recomputes.
// Called after reviews and deletions that change the numbers.
func (s *StatsService) Invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
}

func (s *StatsService) compute(ctx context.Context) (*Stats, error) {
	now := s.now()
	startOfToday := filter.StartOfDay(now)
	weekAgo := now.AddDate(0, 0, -7)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	q := store.New(s.db)
	stats := &Stats{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := q.CountProfilesCreatedSince(gctx, startOfToday)
		stats.SignupsToday = n
		return err
	})
	g.Go(func() error {
		n, err := q.CountProfilesActiveSince(gctx, weekAgo)
		stats.ActiveThisWeek = n
		return err
	})
	g.Go(func() error {
		n, err := q.CountProfilesCreatedSince(gctx, firstOfMonth)
		stats.SignupsThisMonth = n
		return err
	})
	g.Go(func() error {
		n, err := q.CountLoginsSince(gctx, startOfToday)
		stats.LoginsToday = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}
	return stats, nil
}
