package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

// InsertSignupLogParams holds the fields for recording a registration
// attempt. UserID, Name and UserType snapshot the profile at signup time.
type InsertSignupLogParams struct {
	UserID    sql.NullString
	Email     string
	Name      sql.NullString
	UserType  sql.NullString
	IP        string
	UserAgent string
	Country   string
}

// InsertSignupLog appends a registration attempt record.
func (q *Queries) InsertSignupLog(ctx context.Context, arg InsertSignupLogParams) (model.SignupLog, error) {
	l := model.SignupLog{
		ID:        uuid.NewString(),
		UserID:    arg.UserID,
		Email:     arg.Email,
		Name:      arg.Name,
		UserType:  arg.UserType,
		IP:        arg.IP,
		UserAgent: arg.UserAgent,
		Country:   arg.Country,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO signup_logs (id, user_id, email, name, user_type, ip, user_agent, country, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		l.ID, l.UserID, l.Email, l.Name, l.UserType, l.IP, l.UserAgent, l.Country, l.CreatedAt)
	if err != nil {
		return model.SignupLog{}, err
	}
	return l, nil
}

// InsertLoginLogParams holds the fields for recording a sign-in attempt.
type InsertLoginLogParams struct {
	Email     string
	IP        string
	UserAgent string
	Country   string
	Success   bool
	AdminID   sql.NullString
}

// InsertLoginLog appends a sign-in attempt record.
func (q *Queries) InsertLoginLog(ctx context.Context, arg InsertLoginLogParams) (model.LoginLog, error) {
	l := model.LoginLog{
		ID:        uuid.NewString(),
		Email:     arg.Email,
		IP:        arg.IP,
		UserAgent: arg.UserAgent,
		Country:   arg.Country,
		Success:   arg.Success,
		AdminID:   arg.AdminID,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO login_logs (id, email, ip, user_agent, country, success, admin_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		l.ID, l.Email, l.IP, l.UserAgent, l.Country, l.Success, l.AdminID, l.CreatedAt)
	if err != nil {
		return model.LoginLog{}, err
	}
	return l, nil
}

// ListSignupLogs returns the most recent registration attempts.
func (q *Queries) ListSignupLogs(ctx context.Context, limit int64) ([]model.SignupLog, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(`
		SELECT id, user_id, email, name, user_type, ip, user_agent, country, created_at
		FROM signup_logs ORDER BY created_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SignupLog
	for rows.Next() {
		var l model.SignupLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Email, &l.Name, &l.UserType, &l.IP, &l.UserAgent, &l.Country, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ListLoginLogs returns the most recent sign-in attempts.
func (q *Queries) ListLoginLogs(ctx context.Context, limit int64) ([]model.LoginLog, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(`
		SELECT id, email, ip, user_agent, country, success, admin_id, created_at
		FROM login_logs ORDER BY created_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.LoginLog
	for rows.Next() {
		var l model.LoginLog
		if err := rows.Scan(&l.ID, &l.Email, &l.IP, &l.UserAgent, &l.Country, &l.Success, &l.AdminID, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CountLoginsSince counts successful sign-ins at or after the cutoff.
func (q *Queries) CountLoginsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, q.rebind(
		"SELECT COUNT(*) FROM login_logs WHERE success = TRUE AND created_at >= ?"), since).Scan(&n)
	return n, err
}

// PruneAuthLogsBefore deletes signup and login records older than the
// cutoff, returning the total number of rows removed.
func (q *Queries) PruneAuthLogsBefore(ctx context.Context, before time.Time) (int64, error) {
	var total int64

	res, err := q.db.ExecContext(ctx, q.rebind(
		"DELETE FROM signup_logs WHERE created_at < ?"), before)
	if err != nil {
		return 0, err
	}
	if n, err := res.RowsAffected(); err == nil {
		total += n
	}

	res, err = q.db.ExecContext(ctx, q.rebind(
		"DELETE FROM login_logs WHERE created_at < ?"), before)
	if err != nil {
		return total, err
	}
	if n, err := res.RowsAffected(); err == nil {
		total += n
	}

	return total, nil
}
