package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/pressly/goose/v3"

	"duovocab/internal/config"
)

//go:embed migrations
var migrationsFS embed.FS

// DB wraps the database connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
}

// OpenSQLite opens a SQLite database at path
func OpenSQLite(path string) (*DB, error) {
	return open(NewSQLiteDialect(), DialectConfig{Path: path})
}

// Open creates and configures the database connection described by cfg
func Open(cfg config.DatabaseConfig) (*DB, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		return open(NewPostgresDialect(), DialectConfig{URL: cfg.URL})
	case "mysql":
		return open(NewMySQLDialect(), DialectConfig{URL: cfg.URL})
	case "sqlite", "sqlite3", "":
		return open(NewSQLiteDialect(), DialectConfig{Path: cfg.Path})
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}
}

func open(dialect Dialect, dialectConfig DialectConfig) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// RunMigrations applies the embedded migrations for the connection's dialect
func (db *DB) RunMigrations(ctx context.Context) error {
	migrations, err := fs.Sub(migrationsFS, path.Join("migrations", db.Dialect.MigrationsSubdir()))
	if err != nil {
		return fmt.Errorf("failed to locate migrations: %w", err)
	}

	provider, err := goose.NewProvider(db.Dialect.GooseDialect(), db.DB, migrations)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, result := range results {
		slog.Info("migration applied",
			slog.String("file", result.Source.Path),
			slog.Duration("took", result.Duration),
		)
	}

	return nil
}
