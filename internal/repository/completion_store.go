package repository

import (
	"context"
	"slices"
	"sync"
)

// CompletionStore persists the set of completed lesson IDs for a session.
// IDs are kept as the exact strings they were saved with.
type CompletionStore interface {
	Load(ctx context.Context, sessionID string) ([]string, error)
	Save(ctx context.Context, sessionID string, lessonIDs []string) error
}

// MemoryCompletionStore keeps completion sets in process memory
type MemoryCompletionStore struct {
	mu   sync.RWMutex
	sets map[string][]string
}

// NewMemoryCompletionStore creates an empty in-memory store
func NewMemoryCompletionStore() *MemoryCompletionStore {
	return &MemoryCompletionStore{sets: make(map[string][]string)}
}

// Load returns a copy of the session's set; unknown sessions have an empty set
func (s *MemoryCompletionStore) Load(_ context.Context, sessionID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sets[sessionID]), nil
}

// Save replaces the session's set
func (s *MemoryCompletionStore) Save(_ context.Context, sessionID string, lessonIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(lessonIDs) == 0 {
		delete(s.sets, sessionID)
		return nil
	}
	s.sets[sessionID] = slices.Clone(lessonIDs)
	return nil
}
