// Package session configures server-side session management backed by
// the application database.
package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/mysqlstore"
	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/workadmin/workadmin-go/internal/store"
)

// Session table DDL per driver. The scs stores expect driver-specific
// column types, so the table cannot live in the shared migrations.
var sessionSchemas = map[string]string{
	store.DriverSQLite: `CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	)`,
	store.DriverPostgres: `CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BYTEA NOT NULL,
		expiry TIMESTAMPTZ NOT NULL
	)`,
	store.DriverMySQL: `CREATE TABLE IF NOT EXISTS sessions (
		token CHAR(43) PRIMARY KEY,
		data BLOB NOT NULL,
		expiry TIMESTAMP(6) NOT NULL
	)`,
}

// New creates a session manager backed by the application database.
func New(db *store.DB, isDev bool) (*scs.SessionManager, error) {
	schema, ok := sessionSchemas[db.Driver]
	if !ok {
		return nil, fmt.Errorf("no session store for driver %q", db.Driver)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating sessions table: %w", err)
	}

	sm := scs.New()

	switch db.Driver {
	case store.DriverSQLite:
		sm.Store = sqlite3store.New(db.DB)
	case store.DriverPostgres:
		sm.Store = postgresstore.New(db.DB)
	case store.DriverMySQL:
		sm.Store = mysqlstore.New(db.DB)
	}

	// Configure session
	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only

	return sm, nil
}
