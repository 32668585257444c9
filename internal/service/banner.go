package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/workadmin/workadmin-go/internal/imaging"
	"github.com/workadmin/workadmin-go/internal/model"
	"github.com/workadmin/workadmin-go/internal/storage"
	"github.com/workadmin/workadmin-go/internal/store"
)

// BannerService manages promotional banner uploads and activation. At
// most one banner is active at a time.
type BannerService struct {
	db    *store.DB
	files *storage.Local
}

// NewBannerService creates a banner service storing files in the given
// local store.
func NewBannerService(db *store.DB, files *storage.Local) *BannerService {
	return &BannerService{db: db, files: files}
}

// List returns all banners, newest first.
func (s *BannerService) List(ctx context.Context) ([]model.Banner, error) {
	return store.New(s.db).ListBanners(ctx)
}

// Active returns the currently active banner, or store.ErrNotFound when
// none is active.
func (s *BannerService) Active(ctx context.Context) (model.Banner, error) {
	return store.New(s.db).GetActiveBanner(ctx)
}

// Upload processes an uploaded image, stores the file and records the
// banner. When activate is set, all other banners are deactivated in
// the same transaction so the invariant holds even if the process dies
// between the two writes.
func (s *BannerService) Upload(ctx context.Context, r io.Reader, originalName string, activate bool) (model.Banner, error) {
	result, err := imaging.ProcessBanner(r)
	if err != nil {
		return model.Banner{}, fmt.Errorf("processing banner image: %w", err)
	}

	name, err := s.files.Save(storage.BannerFilename(originalName, result.Ext()), result.Data)
	if err != nil {
		return model.Banner{}, fmt.Errorf("storing banner image: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.removeFile(name)
		return model.Banner{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	q := store.New(s.db).WithTx(tx)
	if activate {
		if err := q.DeactivateAllBanners(ctx); err != nil {
			s.removeFile(name)
			return model.Banner{}, fmt.Errorf("deactivating banners: %w", err)
		}
	}

	banner, err := q.CreateBanner(ctx, store.CreateBannerParams{
		ImageURL:    s.files.PublicURL(name),
		StoragePath: name,
		IsActive:    activate,
	})
	if err != nil {
		s.removeFile(name)
		return model.Banner{}, fmt.Errorf("creating banner: %w", err)
	}

	if err := tx.Commit(); err != nil {
		s.removeFile(name)
		return model.Banner{}, fmt.Errorf("committing banner: %w", err)
	}

	slog.Info("banner uploaded",
		"category", "banner",
		"banner_id", banner.ID,
		"active", activate,
		"width", result.Width,
		"height", result.Height,
	)
	return banner, nil
}

// SetActive makes the given banner the single active one.
func (s *BannerService) SetActive(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	q := store.New(s.db).WithTx(tx)
	if err := q.DeactivateAllBanners(ctx); err != nil {
		return fmt.Errorf("deactivating banners: %w", err)
	}

	rows, err := q.ActivateBanner(ctx, id)
	if err != nil {
		return fmt.Errorf("activating banner: %w", err)
	}
	if rows == 0 {
		return store.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing activation: %w", err)
	}

	slog.Info("banner activated", "category", "banner", "banner_id", id)
	return nil
}

// Delete removes a banner record and its stored image. The file removal
// is best effort; a leftover file is harmless while a dangling database
// row is not.
func (s *BannerService) Delete(ctx context.Context, id string) error {
	q := store.New(s.db)

	banner, err := q.GetBanner(ctx, id)
	if err != nil {
		return err
	}

	rows, err := q.DeleteBanner(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting banner: %w", err)
	}
	if rows == 0 {
		return store.ErrNotFound
	}

	s.removeFile(banner.StoragePath)

	slog.Info("banner deleted", "category", "banner", "banner_id", id)
	return nil
}

func (s *BannerService) removeFile(name string) {
	if err := s.files.Remove(name); err != nil {
		slog.Error("removing banner file", "file", name, "error", err)
	}
}
