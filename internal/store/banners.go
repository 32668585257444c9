package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

const bannerColumns = "id, image_url, storage_path, is_active, created_at"

// CreateBannerParams holds the fields for creating a banner.
type CreateBannerParams struct {
	ImageURL    string
	StoragePath string
	IsActive    bool
}

// CreateBanner inserts a new banner and returns it. Callers that need the
// at-most-one-active invariant must run this inside a transaction together
// with DeactivateAllBanners.
func (q *Queries) CreateBanner(ctx context.Context, arg CreateBannerParams) (model.Banner, error) {
	b := model.Banner{
		ID:          uuid.NewString(),
		ImageURL:    arg.ImageURL,
		StoragePath: arg.StoragePath,
		IsActive:    arg.IsActive,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO banners (id, image_url, storage_path, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		b.ID, b.ImageURL, b.StoragePath, b.IsActive, b.CreatedAt)
	if err != nil {
		return model.Banner{}, err
	}
	return b, nil
}

// GetBanner fetches a banner by primary key.
func (q *Queries) GetBanner(ctx context.Context, id string) (model.Banner, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+bannerColumns+" FROM banners WHERE id = ?"), id)

	var b model.Banner
	err := row.Scan(&b.ID, &b.ImageURL, &b.StoragePath, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return model.Banner{}, notFound(err)
	}
	return b, nil
}

// ListBanners returns all banners, newest first.
func (q *Queries) ListBanners(ctx context.Context) ([]model.Banner, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+bannerColumns+" FROM banners ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Banner
	for rows.Next() {
		var b model.Banner
		if err := rows.Scan(&b.ID, &b.ImageURL, &b.StoragePath, &b.IsActive, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetActiveBanner fetches the currently active banner, if any.
func (q *Queries) GetActiveBanner(ctx context.Context) (model.Banner, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+bannerColumns+" FROM banners WHERE is_active = TRUE")

	var b model.Banner
	err := row.Scan(&b.ID, &b.ImageURL, &b.StoragePath, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return model.Banner{}, notFound(err)
	}
	return b, nil
}

// DeactivateAllBanners clears the active flag on every banner.
func (q *Queries) DeactivateAllBanners(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, "UPDATE banners SET is_active = FALSE WHERE is_active = TRUE")
	return err
}

// ActivateBanner sets the active flag on one banner, reporting how many
// rows matched.
func (q *Queries) ActivateBanner(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind(
		"UPDATE banners SET is_active = TRUE WHERE id = ?"), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteBanner removes a banner row, reporting how many rows matched.
func (q *Queries) DeleteBanner(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind("DELETE FROM banners WHERE id = ?"), id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
