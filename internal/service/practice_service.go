package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"duovocab/internal/models"
)

// ErrNothingToPractice is returned when a selection yields no words
var ErrNothingToPractice = errors.New("nothing to practice")

// DatasetLoader provides the current dataset. Implementations fail softly.
type DatasetLoader interface {
	Load(ctx context.Context) models.Dataset
}

// Build assembles the word pool for a selection.
//
// A single lesson must be in range and have at least one word. A multi-lesson
// selection is a best-effort union: repeated IDs count once (first occurrence
// keeps its place) and out-of-range IDs are skipped. The pool is the
// concatenation of the selected lessons' words in selection order, unshuffled.
func (s *PracticeService) Build(ds models.Dataset, sel models.Selection) (*models.PracticeSession, error) {
	if sel.IsSingle() {
		id := *sel.Single
		lesson, ok := ds.Lesson(id)
		if !ok || len(lesson.Words) == 0 {
			return nil, ErrNothingToPractice
		}
		return &models.PracticeSession{
			Words:          slices.Clone(lesson.Words),
			IsSingleLesson: true,
			LessonID:       &id,
		}, nil
	}

	seen := make(map[int]struct{}, len(sel.Multi))
	var words []models.Word
	for _, id := range sel.Multi {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		lesson, ok := ds.Lesson(id)
		if !ok {
			continue
		}
		words = append(words, lesson.Words...)
	}
	if len(words) == 0 {
		return nil, ErrNothingToPractice
	}
	return &models.PracticeSession{Words: words}, nil
}

// PracticeService builds practice sessions from the vocabulary file
type PracticeService struct {
	vocab  DatasetLoader
	logger *slog.Logger
}

// NewPracticeService creates a new practice service
func NewPracticeService(vocab DatasetLoader, logger *slog.Logger) *PracticeService {
	return &PracticeService{
		vocab:  vocab,
		logger: logger,
	}
}

// Prepare loads the dataset once and returns the session for sel together with
// the distractor pools of the whole dataset
func (s *PracticeService) Prepare(ctx context.Context, sel models.Selection) (*models.PracticeSession, models.DistractorPools, error) {
	ds := s.vocab.Load(ctx)

	session, err := s.Build(ds, sel)
	if err != nil {
		s.logger.DebugContext(ctx, "practice selection rejected",
			slog.Any("single", sel.Single),
			slog.Any("multi", sel.Multi),
			slog.Int("lessons", len(ds)))
		return nil, models.DistractorPools{}, err
	}

	return session, BuildDistractorPools(ds), nil
}
