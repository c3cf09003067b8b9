package database

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

// NewPostgresDialect creates a new PostgreSQL dialect
func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string { return "postgres" }

func (d *PostgresDialect) DSN(config DialectConfig) string { return config.URL }

func (d *PostgresDialect) MigrationsSubdir() string { return "postgres" }

func (d *PostgresDialect) GooseDialect() goose.Dialect { return goose.DialectPostgres }

func (d *PostgresDialect) Placeholders() sq.PlaceholderFormat { return sq.Dollar }

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	pool(db, 25, 5*time.Minute)
	return nil
}

func (d *PostgresDialect) InsertIgnore(b sq.InsertBuilder) sq.InsertBuilder {
	return b.Suffix("ON CONFLICT DO NOTHING")
}
