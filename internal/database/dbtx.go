package database

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

// DBTX is what repositories run queries against: a *DB or a *Tx.
// Queries built from Builder already use the dialect's placeholders.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Builder() sq.StatementBuilderType
	GetDialect() Dialect
}

// Tx is a transaction that remembers its dialect
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Begin starts a new transaction
func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

// WithTx runs fn inside a transaction, committing on success and rolling back on error
func (db *DB) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func builderFor(d Dialect) sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholders())
}

// Builder starts a squirrel statement in the connection's placeholder style
func (db *DB) Builder() sq.StatementBuilderType { return builderFor(db.Dialect) }

// GetDialect returns the database dialect
func (db *DB) GetDialect() Dialect { return db.Dialect }

// Builder starts a squirrel statement in the transaction's placeholder style
func (tx *Tx) Builder() sq.StatementBuilderType { return builderFor(tx.dialect) }

// GetDialect returns the transaction's dialect
func (tx *Tx) GetDialect() Dialect { return tx.dialect }
