// Package store provides database access, migrations and typed queries.
package store

import (
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	_ "github.com/go-sql-driver/mysql" // MySQL driver for database/sql
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql
	_ "modernc.org/sqlite"             // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// DB wraps a sql.DB together with the driver it was opened with. Queries
// need the driver to pick the right placeholder style.
type DB struct {
	*sql.DB
	Driver string
}

// DBConfig holds connection pool configuration options.
type DBConfig struct {
	// MaxOpenConns is the maximum number of open connections to the database.
	// For SQLite, this is typically 1 for writes but can be higher for reads with WAL mode.
	MaxOpenConns int
	// MaxIdleConns is the maximum number of connections in the idle connection pool.
	MaxIdleConns int
	// ConnMaxLifetime is the maximum amount of time a connection may be reused.
	ConnMaxLifetime time.Duration
	// ConnMaxIdleTime is the maximum amount of time a connection may be idle.
	ConnMaxIdleTime time.Duration
}

// DefaultDBConfig returns sensible pool defaults.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		// SQLite with WAL mode supports multiple readers but single writer.
		// Postgres and MySQL tolerate far more; 25 is a safe shared default.
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// Open opens a database connection for the given driver and DSN.
func Open(driver, dsn string) (*DB, error) {
	return OpenWithConfig(driver, dsn, DefaultDBConfig())
}

// OpenWithConfig opens a database connection with custom pool configuration.
func OpenWithConfig(driver, dsn string, cfg DBConfig) (*DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", dsn)
	case DriverPostgres:
		db, err = sql.Open("pgx", dsn)
	case DriverMySQL:
		// time.Time scanning requires parseTime
		if !strings.Contains(dsn, "parseTime") {
			if strings.Contains(dsn, "?") {
				dsn += "&parseTime=true"
			} else {
				dsn += "?parseTime=true"
			}
		}
		db, err = sql.Open("mysql", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if driver == DriverSQLite {
		// Configure SQLite for better performance and concurrency
		pragmas := []string{
			"PRAGMA journal_mode=WAL",        // Write-Ahead Logging for better concurrency
			"PRAGMA busy_timeout=5000",       // Wait 5s when database is locked
			"PRAGMA synchronous=NORMAL",      // Good balance of safety and speed
			"PRAGMA cache_size=-64000",       // 64MB cache
			"PRAGMA foreign_keys=ON",         // Enforce foreign key constraints
			"PRAGMA temp_store=MEMORY",       // Store temp tables in memory
			"PRAGMA mmap_size=268435456",     // 256MB memory-mapped I/O
			"PRAGMA page_size=4096",          // 4KB page size (standard)
			"PRAGMA wal_autocheckpoint=1000", // Auto checkpoint every 1000 pages
			"PRAGMA optimize",                // Run query planner optimizations
		}

		for _, pragma := range pragmas {
			if _, err := db.Exec(pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
			}
		}
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{DB: db, Driver: driver}, nil
}

// Migrate runs all pending database migrations.
func Migrate(db *DB) error {
	goose.SetBaseFS(migrations)

	dialect := map[string]string{
		DriverSQLite:   "sqlite3",
		DriverPostgres: "postgres",
		DriverMySQL:    "mysql",
	}[db.Driver]
	if dialect == "" {
		return fmt.Errorf("no migration dialect for driver %q", db.Driver)
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
