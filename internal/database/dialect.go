package database

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pressly/goose/v3"
)

// Dialect hides the differences between the supported SQL backends
type Dialect interface {
	DriverName() string

	// DSN builds the sql.Open data source name
	DSN(config DialectConfig) string

	// ConfigureConnection tunes the pool and session settings after the first ping
	ConfigureConnection(db *sql.DB) error

	// MigrationsSubdir is the directory under migrations/ holding this dialect's files
	MigrationsSubdir() string

	GooseDialect() goose.Dialect

	// Placeholders is the bind parameter style queries are built with
	Placeholders() sq.PlaceholderFormat

	// InsertIgnore makes an insert skip rows that violate a unique constraint
	InsertIgnore(b sq.InsertBuilder) sq.InsertBuilder
}

// DialectConfig holds configuration for database connection
type DialectConfig struct {
	// SQLite file
	Path string

	// PostgreSQL or MySQL connection string
	URL string
}

// pool applies the connection limits shared by the networked backends
func pool(db *sql.DB, maxOpen int, lifetime time.Duration) {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen / 5)
	db.SetConnMaxLifetime(lifetime)
	db.SetConnMaxIdleTime(lifetime / 5)
}
