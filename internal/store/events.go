package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/workadmin/workadmin-go/internal/model"
)

// InsertEventParams holds the fields for recording a system event.
type InsertEventParams struct {
	Level    string
	Category string
	Message  string
	AdminID  sql.NullString
	Metadata string
}

// InsertEvent appends a system event record.
func (q *Queries) InsertEvent(ctx context.Context, arg InsertEventParams) (model.Event, error) {
	e := model.Event{
		ID:        uuid.NewString(),
		Level:     arg.Level,
		Category:  arg.Category,
		Message:   arg.Message,
		AdminID:   arg.AdminID,
		Metadata:  arg.Metadata,
		CreatedAt: time.Now().UTC(),
	}

	_, err := q.db.ExecContext(ctx, q.rebind(`
		INSERT INTO events (id, level, category, message, admin_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		e.ID, e.Level, e.Category, e.Message, e.AdminID, e.Metadata, e.CreatedAt)
	if err != nil {
		return model.Event{}, err
	}
	return e, nil
}

// ListEvents returns a page of events, newest first.
func (q *Queries) ListEvents(ctx context.Context, limit, offset int64) ([]model.Event, error) {
	rows, err := q.db.QueryContext(ctx, q.rebind(`
		SELECT id, level, category, message, admin_id, metadata, created_at
		FROM events ORDER BY created_at DESC LIMIT ? OFFSET ?`), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.AdminID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountEvents returns the total number of recorded events.
func (q *Queries) CountEvents(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM events").Scan(&n)
	return n, err
}

// PruneEventsBefore deletes events older than the cutoff.
func (q *Queries) PruneEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, q.rebind(
		"DELETE FROM events WHERE created_at < ?"), before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
