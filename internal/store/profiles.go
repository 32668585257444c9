package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

const profileColumns = "id, name, email, mobile, user_type, status, created_at, updated_at"

// CreateProfileParams holds the fields for creating a marketplace profile.
type CreateProfileParams struct {
	Name     string
	Email    string
	Mobile   sql.NullString
	UserType string
	Status   sql.NullString
}

// CreateProfile inserts a new profile and returns it.
func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (model.Profile, error) {
	now := time.Now().UTC()
	p := model.Profile{
		ID:        uuid.NewString(),
		Name:      arg.Name,
		Email:     arg.Email,
		Mobile:    arg.Mobile,
		UserType:  arg.UserType,
		Status:    arg.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO profiles (id, name, email, mobile, user_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		p.ID, p.Name, p.Email, p.Mobile, p.UserType, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// GetProfile fetches a profile by primary key.
func (q *Queries) GetProfile(ctx context.Context, id string) (model.Profile, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?"), id)
	return scanProfileRow(row)
}

// ListPendingProfiles returns profiles awaiting review, newest first.
// Profiles that never entered review carry a NULL status and are included.
func (q *Queries) ListPendingProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(
		"SELECT "+profileColumns+" FROM profiles WHERE status = ? OR status IS NULL ORDER BY created_at DESC"),
		model.StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// ListProfilesByType returns all profiles with the given account type,
// newest first.
func (q *Queries) ListProfilesByType(ctx context.Context, userType string) ([]model.Profile, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(
		"SELECT "+profileColumns+" FROM profiles WHERE user_type = ? ORDER BY created_at DESC"),
		userType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// GetProfilesByIDs fetches the profiles for a set of IDs in one query.
// Missing IDs are simply absent from the result.
func (q *Queries) GetProfilesByIDs(ctx context.Context, ids []string) ([]model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := q.db.QueryContext(ctx, q.rebind(
		"SELECT "+profileColumns+" FROM profiles WHERE id IN ("+inPlaceholders(len(ids))+")"),
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProfiles(rows)
}

// UpdateProfileStatus moves a pending profile to the given status. The
// WHERE clause guards against double review: a profile already approved
// or rejected is left untouched and zero rows are reported.
func (q *Queries) UpdateProfileStatus(ctx context.Context, id, status string) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind(
		"UPDATE profiles SET status = ?, updated_at = ? WHERE id = ? AND (status = ? OR status IS NULL)"),
		status, time.Now().UTC(), id, model.StatusPending)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteProfile removes a profile. Attached job seeker rows cascade.
func (q *Queries) DeleteProfile(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, q.rebind("DELETE FROM profiles WHERE id = ?"), id)
	return err
}

// CountProfilesCreatedSince counts profiles created at or after the cutoff.
func (q *Queries) CountProfilesCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT COUNT(*) FROM profiles WHERE created_at >= ?"), since).Scan(&n)
	return n, err
}

// CountProfilesActiveSince counts profiles touched at or after the
// cutoff. Reviews bump updated_at, so this captures recent activity
// rather than recent signups.
func (q *Queries) CountProfilesActiveSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT COUNT(*) FROM profiles WHERE updated_at >= ?"), since).Scan(&n)
	return n, err
}

func scanProfileRow(row *sql.Row) (model.Profile, error) {
	var p model.Profile
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Mobile, &p.UserType, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return model.Profile{}, notFound(err)
	}
	return p, nil
}

func scanProfiles(rows *sql.Rows) ([]model.Profile, error) {
	var out []model.Profile
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Mobile, &p.UserType, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
