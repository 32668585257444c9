package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

const adminColumns = "id, email, password_hash, name, created_at, updated_at"

// CreateAdminParams holds the fields for creating an admin account.
type CreateAdminParams struct {
	Email        string
	PasswordHash string
	Name         string
}

// CreateAdmin inserts a new admin account and returns it.
func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (model.Admin, error) {
	admin := model.Admin{
		ID:           uuid.NewString(),
		Email:        arg.Email,
		PasswordHash: arg.PasswordHash,
		Name:         arg.Name,
		CreatedAt:    time.Now().UTC(),
	}
	admin.UpdatedAt = admin.CreatedAt

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO admins (id, email, password_hash, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`),
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, admin.CreatedAt, admin.UpdatedAt)
	if err != nil {
		return model.Admin{}, err
	}
	return admin, nil
}

// GetAdminByID fetches an admin by primary key.
func (q *Queries) GetAdminByID(ctx context.Context, id string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+adminColumns+" FROM admins WHERE id = ?"), id)
	return scanAdmin(row)
}

// GetAdminByEmail fetches an admin by email.
func (q *Queries) GetAdminByEmail(ctx context.Context, email string) (model.Admin, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT "+adminColumns+" FROM admins WHERE email = ?"), email)
	return scanAdmin(row)
}

// UpdateAdminPassword replaces an admin's password hash.
func (q *Queries) UpdateAdminPassword(ctx context.Context, id, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, q.rebind(
		"UPDATE admins SET password_hash = ?, updated_at = ? WHERE id = ?"),
		passwordHash, time.Now().UTC(), id)
	return err
}

// CountAdmins returns the number of admin accounts.
func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM admins").Scan(&n)
	return n, err
}

func scanAdmin(row *sql.Row) (model.Admin, error) {
	var a model.Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return model.Admin{}, notFound(err)
	}
	return a, nil
}
