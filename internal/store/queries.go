package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the database. Methods are safe for
// concurrent use.
type Queries struct {
	db     DBTX
	driver string
}

// New returns a Queries bound to the given database handle.
func New(db *DB) *Queries {
	return &Queries{db: db.DB, driver: db.Driver}
}

// NewWithDBTX returns a Queries bound to an arbitrary handle, for tests
// and transactions.
func NewWithDBTX(db DBTX, driver string) *Queries {
	return &Queries{db: db, driver: driver}
}

// WithTx returns a copy of Queries that runs inside the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, driver: q.driver}
}

// rebind rewrites "?" placeholders to the driver's native style. Queries
// are written with "?" which SQLite and MySQL accept directly; Postgres
// needs $1..$n.
func (q *Queries) rebind(query string) string {
	if q.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// notFound maps sql.ErrNoRows to ErrNotFound, passing other errors through.
func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// inPlaceholders returns "?, ?, ..." with n placeholders for IN clauses.
func inPlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
