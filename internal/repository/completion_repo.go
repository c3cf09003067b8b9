package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"duovocab/internal/database"
)

const completionsTable = "lesson_completions"

// CompletionRecord is one stored (session, lesson) pair
type CompletionRecord struct {
	SessionID   string    `json:"session_id"`
	LessonID    string    `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// CompletionRepository stores completion sets in the lesson_completions table
type CompletionRepository struct {
	db *database.DB
}

// NewCompletionRepository creates a new completion repository
func NewCompletionRepository(db *database.DB) *CompletionRepository {
	return &CompletionRepository{db: db}
}

// Load returns the session's lesson IDs in the order they were first saved
func (r *CompletionRepository) Load(ctx context.Context, sessionID string) ([]string, error) {
	query, args, err := r.db.Builder().Select("lesson_id").
		From(completionsTable).
		Where(sq.Eq{"session_id": sessionID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Save replaces the session's set. Rows that survive keep their original position.
func (r *CompletionRepository) Save(ctx context.Context, sessionID string, lessonIDs []string) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		del := tx.Builder().Delete(completionsTable).Where(sq.Eq{"session_id": sessionID})
		if len(lessonIDs) > 0 {
			del = del.Where(sq.NotEq{"lesson_id": lessonIDs})
		}
		query, args, err := del.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete completions: %w", err)
		}

		return insertCompletions(ctx, tx, sessionID, lessonIDs, time.Now().UTC())
	})
}

// All returns every stored record, for backups
func (r *CompletionRepository) All(ctx context.Context) ([]CompletionRecord, error) {
	query, args, err := r.db.Builder().Select("session_id", "lesson_id", "completed_at").
		From(completionsTable).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var records []CompletionRecord
	for rows.Next() {
		var rec CompletionRecord
		if err := rows.Scan(&rec.SessionID, &rec.LessonID, &rec.CompletedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Import adds records, skipping pairs that already exist. Returns the number of input records.
func (r *CompletionRepository) Import(ctx context.Context, records []CompletionRecord) (int, error) {
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		for _, rec := range records {
			completedAt := rec.CompletedAt
			if completedAt.IsZero() {
				completedAt = time.Now().UTC()
			}
			if err := insertCompletions(ctx, tx, rec.SessionID, []string{rec.LessonID}, completedAt); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Clear deletes every stored record
func (r *CompletionRepository) Clear(ctx context.Context) error {
	query, args, err := r.db.Builder().Delete(completionsTable).ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func insertCompletions(ctx context.Context, tx database.DBTX, sessionID string, lessonIDs []string, completedAt time.Time) error {
	if len(lessonIDs) == 0 {
		return nil
	}

	ins := tx.Builder().Insert(completionsTable).Columns("session_id", "lesson_id", "completed_at")
	for _, id := range lessonIDs {
		ins = ins.Values(sessionID, id, completedAt)
	}

	query, args, err := tx.GetDialect().InsertIgnore(ins).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert completions: %w", err)
	}
	return nil
}
