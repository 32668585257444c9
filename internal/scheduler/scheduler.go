// Package scheduler runs the dashboard's recurring maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/workadmin/workadmin-go/internal/geoip"
	"github.com/workadmin/workadmin-go/internal/service"
	"github.com/workadmin/workadmin-go/internal/store"
)

// Scheduler owns the cron jobs: nightly log retention, GeoIP database
// reload and statistics cache warming.
type Scheduler struct {
	db            *store.DB
	geo           *geoip.Lookup
	stats         *service.StatsService
	retentionDays int
	cron          *cron.Cron
	logger        *slog.Logger
}

// New creates a scheduler. geo and stats may be nil; the corresponding
// jobs are then skipped.
func New(db *store.DB, geo *geoip.Lookup, stats *service.StatsService, retentionDays int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		db:            db,
		geo:           geo,
		stats:         stats,
		retentionDays: retentionDays,
		cron:          cron.New(),
		logger:        logger,
	}
}

// Start registers the jobs and begins running them.
func (s *Scheduler) Start() error {
	if s.retentionDays > 0 {
		// Low-traffic hour, after any nightly backups
		if _, err := s.cron.AddFunc("30 3 * * *", func() {
			if err := s.PruneLogs(context.Background()); err != nil {
				s.logger.Error("log retention job failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	if s.geo != nil {
		// The GeoLite2 file is replaced in place by external updaters;
		// Reload is a no-op while the mtime is unchanged.
		if _, err := s.cron.AddFunc("@hourly", func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Warn("geoip reload failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	if s.stats != nil {
		if _, err := s.cron.AddFunc("@every 5m", func() {
			if err := s.WarmStats(context.Background()); err != nil {
				s.logger.Warn("stats warmup failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PruneLogs deletes auth logs and events older than the retention
// window.
func (s *Scheduler) PruneLogs(ctx context.Context) error {
	queries := store.New(s.db)
	before := time.Now().AddDate(0, 0, -s.retentionDays)

	authRows, err := queries.PruneAuthLogsBefore(ctx, before)
	if err != nil {
		return err
	}

	eventRows, err := queries.PruneEventsBefore(ctx, before)
	if err != nil {
		return err
	}

	if authRows > 0 || eventRows > 0 {
		s.logger.Info("pruned old logs",
			"auth_logs", authRows,
			"events", eventRows,
			"retention_days", s.retentionDays,
		)
	}
	return nil
}

// WarmStats recomputes the dashboard statistics so the next page load
// hits a fresh cache entry.
func (s *Scheduler) WarmStats(ctx context.Context) error {
	s.stats.Invalidate(ctx)
	_, err := s.stats.Overview(ctx)
	return err
}
