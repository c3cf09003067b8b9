package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"duovocab/internal/repository"
)

// ProgressService tracks which lessons a session has completed.
// Every operation accepts a session that has never been seen before.
type ProgressService struct {
	store  repository.CompletionStore
	logger *slog.Logger
}

// NewProgressService creates a new progress service
func NewProgressService(store repository.CompletionStore, logger *slog.Logger) *ProgressService {
	return &ProgressService{
		store:  store,
		logger: logger,
	}
}

// MarkComplete adds lessonID to the session's completion set
func (s *ProgressService) MarkComplete(ctx context.Context, sessionID string, lessonID int) error {
	ids, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load completions: %w", err)
	}

	key := strconv.Itoa(lessonID)
	if slices.Contains(ids, key) {
		return nil
	}
	if err := s.store.Save(ctx, sessionID, append(ids, key)); err != nil {
		return fmt.Errorf("save completions: %w", err)
	}
	return nil
}

// Unmark removes lessonID from the session's completion set
func (s *ProgressService) Unmark(ctx context.Context, sessionID string, lessonID int) error {
	ids, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("load completions: %w", err)
	}

	key := strconv.Itoa(lessonID)
	if !slices.Contains(ids, key) {
		return nil
	}
	remaining := slices.DeleteFunc(ids, func(id string) bool { return id == key })
	if err := s.store.Save(ctx, sessionID, remaining); err != nil {
		return fmt.Errorf("save completions: %w", err)
	}
	return nil
}

// Reset clears the session's completion set
func (s *ProgressService) Reset(ctx context.Context, sessionID string) error {
	if err := s.store.Save(ctx, sessionID, nil); err != nil {
		return fmt.Errorf("reset completions: %w", err)
	}
	return nil
}

// IsComplete reports whether lessonID is in the session's completion set
func (s *ProgressService) IsComplete(ctx context.Context, sessionID string, lessonID int) (bool, error) {
	ids, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("load completions: %w", err)
	}
	return slices.Contains(ids, strconv.Itoa(lessonID)), nil
}

// Completed returns the session's completed lesson IDs.
// Entries that are not integers are skipped.
func (s *ProgressService) Completed(ctx context.Context, sessionID string) (map[int]bool, error) {
	ids, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load completions: %w", err)
	}

	completed := make(map[int]bool, len(ids))
	for _, raw := range ids {
		id, err := strconv.Atoi(raw)
		if err != nil {
			s.logger.DebugContext(ctx, "skipping malformed completion entry",
				slog.String("session_id", sessionID),
				slog.String("value", raw))
			continue
		}
		completed[id] = true
	}
	return completed, nil
}
