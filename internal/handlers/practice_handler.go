package handlers

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"duovocab/internal/models"
	"duovocab/internal/quiz"
	"duovocab/internal/service"
)

const (
	socketReadLimit   = 4096
	socketIdleTimeout = 30 * time.Minute
	socketWriteWait   = 10 * time.Second
)

var errBadSelection = errors.New("invalid lesson selection")

// Websocket message types sent by the server
const (
	MessageQuestion = "question"
	MessageResult   = "result"
	MessageFinished = "finished"
	MessageError    = "error"
)

// SocketMessage is one server-to-client frame of the live quiz
type SocketMessage struct {
	Type     string         `json:"type"`
	Question *quiz.Question `json:"question,omitempty"`
	Result   *quiz.Result   `json:"result,omitempty"`
	Stats    *quiz.Stats    `json:"stats,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// AnswerMessage is what the client sends for each question
type AnswerMessage struct {
	Answer string `json:"answer"`
}

// PracticeHandler builds practice sessions and runs live quizzes
type PracticeHandler struct {
	practice   *service.PracticeService
	progress   *service.ProgressService
	middleware *Middleware
	templates  *template.Template
	upgrader   websocket.Upgrader
	runnerOpts []quiz.Option
	logger     *slog.Logger
}

// NewPracticeHandler creates a new practice handler. allowedOrigins lists
// cross-origin pages that may open the quiz socket.
func NewPracticeHandler(practice *service.PracticeService, progress *service.ProgressService, middleware *Middleware, templates *template.Template, allowedOrigins []string, logger *slog.Logger, runnerOpts ...quiz.Option) *PracticeHandler {
	return &PracticeHandler{
		practice:   practice,
		progress:   progress,
		middleware: middleware,
		templates:  templates,
		upgrader: websocket.Upgrader{
			CheckOrigin: checkOrigin(allowedOrigins),
		},
		runnerOpts: runnerOpts,
		logger:     logger,
	}
}

// ShowPractice renders the quiz page for ?lesson_id= or ?custom_lessons=
func (h *PracticeHandler) ShowPractice(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		redirectHome(w, r)
		return
	}

	session, pools, err := h.practice.Prepare(r.Context(), sel)
	if err != nil {
		redirectHome(w, r)
		return
	}

	render(w, h.templates, "practice.tmpl", PracticeViewData{
		Page: Page{
			Title:     "Practice - DuoVocab",
			CSRFToken: h.middleware.CSRFToken(r),
		},
		Session: session,
		Pools:   pools,
		Query:   r.URL.RawQuery,
	})
}

// PracticeSocket runs a quiz for the lifetime of one websocket connection.
// Finishing a single-lesson session marks it complete for the caller's session.
func (h *PracticeHandler) PracticeSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := GetSessionID(ctx)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(socketReadLimit)

	send := func(msg SocketMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		return conn.WriteJSON(msg)
	}

	sel, err := parseSelection(r.URL.Query())
	if err != nil {
		_ = send(SocketMessage{Type: MessageError, Error: err.Error()})
		return
	}
	session, pools, err := h.practice.Prepare(ctx, sel)
	if err != nil {
		_ = send(SocketMessage{Type: MessageError, Error: err.Error()})
		return
	}

	opts := append(slices.Clone(h.runnerOpts), quiz.WithCompletion(func(ctx context.Context, lessonID int) error {
		return h.progress.MarkComplete(ctx, sessionID, lessonID)
	}))
	runner := quiz.NewRunner(session, pools, opts...)

	for {
		q, err := runner.Next(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "quiz failed", slog.Any("error", err))
			_ = send(SocketMessage{Type: MessageError, Error: ErrInternalServerError})
			return
		}

		stats := runner.Stats()
		if q == nil {
			h.logger.InfoContext(ctx, "quiz finished",
				slog.Bool("single_lesson", session.IsSingleLesson),
				slog.Int("correct", stats.Correct),
				slog.Int("incorrect", stats.Incorrect))
			_ = send(SocketMessage{Type: MessageFinished, Stats: &stats})
			return
		}
		if err := send(SocketMessage{Type: MessageQuestion, Question: q, Stats: &stats}); err != nil {
			return
		}

		var answer AnswerMessage
		_ = conn.SetReadDeadline(time.Now().Add(socketIdleTimeout))
		if err := conn.ReadJSON(&answer); err != nil {
			// Abandoned sessions never complete
			h.logger.DebugContext(ctx, "quiz abandoned", slog.Any("error", err))
			return
		}

		res, err := runner.Answer(ctx, answer.Answer)
		if err != nil {
			_ = send(SocketMessage{Type: MessageError, Error: err.Error()})
			return
		}
		if err := send(SocketMessage{Type: MessageResult, Result: &res}); err != nil {
			return
		}
	}
}

// parseSelection reads lesson_id, or failing that every custom_lessons value.
// lesson_id wins when both are present. Any non-integer value is rejected.
func parseSelection(q url.Values) (models.Selection, error) {
	if raw, ok := q["lesson_id"]; ok && len(raw) > 0 {
		id, err := strconv.Atoi(raw[0])
		if err != nil {
			return models.Selection{}, errBadSelection
		}
		return models.SingleLesson(id), nil
	}

	raw := q["custom_lessons"]
	if len(raw) == 0 {
		return models.Selection{}, errBadSelection
	}
	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.Atoi(v)
		if err != nil {
			return models.Selection{}, errBadSelection
		}
		ids = append(ids, id)
	}
	return models.MultiLesson(ids...), nil
}

// checkOrigin accepts same-origin requests plus the configured origins
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || slices.Contains(allowed, "*") || slices.Contains(allowed, origin) {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
