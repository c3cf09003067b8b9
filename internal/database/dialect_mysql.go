package database

import (
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string { return "mysql" }

// DSN turns on parseTime so DATETIME columns scan into time.Time.
// An unparsable URL is passed through for sql.Open to report.
func (d *MySQLDialect) DSN(config DialectConfig) string {
	cfg, err := mysql.ParseDSN(config.URL)
	if err != nil {
		return config.URL
	}
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

func (d *MySQLDialect) MigrationsSubdir() string { return "mysql" }

func (d *MySQLDialect) GooseDialect() goose.Dialect { return goose.DialectMySQL }

func (d *MySQLDialect) Placeholders() sq.PlaceholderFormat { return sq.Question }

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	pool(db, 25, 5*time.Minute)
	return nil
}

func (d *MySQLDialect) InsertIgnore(b sq.InsertBuilder) sq.InsertBuilder {
	return b.Options("IGNORE")
}
