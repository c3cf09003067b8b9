package handlers

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"duovocab/internal/service"
)

// LessonHandler serves the lesson list and the completion routes
type LessonHandler struct {
	vocab      service.DatasetLoader
	progress   *service.ProgressService
	middleware *Middleware
	templates  *template.Template
	vocabPath  string
	logger     *slog.Logger
}

// NewLessonHandler creates a new lesson handler
func NewLessonHandler(vocab service.DatasetLoader, progress *service.ProgressService, middleware *Middleware, templates *template.Template, vocabPath string, logger *slog.Logger) *LessonHandler {
	return &LessonHandler{
		vocab:      vocab,
		progress:   progress,
		middleware: middleware,
		templates:  templates,
		vocabPath:  vocabPath,
		logger:     logger,
	}
}

// Index lists every lesson with its completion state
func (h *LessonHandler) Index(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ds := h.vocab.Load(ctx)

	completed, err := h.progress.Completed(ctx, GetSessionID(ctx))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load completions", slog.Any("error", err))
		completed = map[int]bool{}
	}

	lessons := lessonViews(ds, completed)
	done := 0
	for _, l := range lessons {
		if l.Completed {
			done++
		}
	}

	render(w, h.templates, "index.tmpl", IndexViewData{
		Page: Page{
			Title:     "DuoVocab Practice",
			Active:    "learn",
			CSRFToken: h.middleware.CSRFToken(r),
		},
		Lessons:        lessons,
		CompletedCount: done,
		VocabPath:      h.vocabPath,
	})
}

// Custom shows the multi-lesson selection form
func (h *LessonHandler) Custom(w http.ResponseWriter, r *http.Request) {
	ds := h.vocab.Load(r.Context())

	render(w, h.templates, "custom.tmpl", CustomViewData{
		Page: Page{
			Title:     "Custom Training - DuoVocab",
			Active:    "custom",
			CSRFToken: h.middleware.CSRFToken(r),
		},
		Lessons: lessonViews(ds, nil),
	})
}

// Skip marks a lesson complete without practicing it
func (h *LessonHandler) Skip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lessonID(r)
	if ok {
		if err := h.progress.MarkComplete(r.Context(), GetSessionID(r.Context()), id); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error skipping lesson", err)
			return
		}
	}
	redirectHome(w, r)
}

// Unskip clears a lesson's completion
func (h *LessonHandler) Unskip(w http.ResponseWriter, r *http.Request) {
	id, ok := h.lessonID(r)
	if ok {
		if err := h.progress.Unmark(r.Context(), GetSessionID(r.Context()), id); err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error unskipping lesson", err)
			return
		}
	}
	redirectHome(w, r)
}

// Reset clears every completion in the session
func (h *LessonHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.progress.Reset(r.Context(), GetSessionID(r.Context())); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error resetting progress", err)
		return
	}
	redirectHome(w, r)
}

// MarkComplete records a finished quiz for asynchronous callers
func (h *LessonHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		redirectHome(w, r)
		return
	}
	if _, ok := h.vocab.Load(r.Context()).Lesson(id); !ok {
		respondWithJSON(w, http.StatusNotFound, map[string]string{"status": "error", "error": ErrLessonNotFound})
		return
	}

	if err := h.progress.MarkComplete(r.Context(), GetSessionID(r.Context()), id); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to mark lesson complete", slog.Int("lesson_id", id), slog.Any("error", err))
		respondWithJSON(w, http.StatusInternalServerError, map[string]string{"status": "error", "error": ErrInternalServerError})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// lessonID parses {id} and checks it against the current dataset.
// Only lessons that exist right now may enter a completion set.
func (h *LessonHandler) lessonID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	if _, ok := h.vocab.Load(r.Context()).Lesson(id); !ok {
		h.logger.DebugContext(r.Context(), "ignoring unknown lesson", slog.Int("lesson_id", id))
		return 0, false
	}
	return id, true
}
