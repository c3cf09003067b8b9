package database

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// SQLiteDialect is the default, file-backed store
type SQLiteDialect struct{}

// NewSQLiteDialect creates a new SQLite dialect
func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string { return "sqlite3" }

func (d *SQLiteDialect) DSN(config DialectConfig) string { return config.Path }

func (d *SQLiteDialect) MigrationsSubdir() string { return "sqlite" }

func (d *SQLiteDialect) GooseDialect() goose.Dialect { return goose.DialectSQLite3 }

func (d *SQLiteDialect) Placeholders() sq.PlaceholderFormat { return sq.Question }

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// One writer at a time; WAL keeps readers unblocked
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL;", "PRAGMA busy_timeout=5000;"} {
		if _, err := db.Exec(pragma); err != nil {
			return err
		}
	}
	return nil
}

func (d *SQLiteDialect) InsertIgnore(b sq.InsertBuilder) sq.InsertBuilder {
	return b.Options("OR IGNORE")
}
