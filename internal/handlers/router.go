package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Lessons    *LessonHandler
	Dictionary *DictionaryHandler
	Practice   *PracticeHandler
	Middleware *Middleware
}

// NewRouter wires every route. CORS is only enabled when allowedOrigins is set.
func NewRouter(h Handlers, allowedOrigins []string, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", Health).Methods(http.MethodGet)

	pages := r.NewRoute().Subrouter()
	pages.Use(h.Middleware.Session)

	m := h.Middleware
	pages.HandleFunc("/", h.Lessons.Index).Methods(http.MethodGet)
	pages.HandleFunc("/custom", h.Lessons.Custom).Methods(http.MethodGet)
	pages.HandleFunc("/skip/{id}", m.CSRFProtect(h.Lessons.Skip)).Methods(http.MethodPost)
	pages.HandleFunc("/unskip/{id}", m.CSRFProtect(h.Lessons.Unskip)).Methods(http.MethodPost)
	pages.HandleFunc("/reset", m.CSRFProtect(h.Lessons.Reset)).Methods(http.MethodPost)
	pages.HandleFunc("/mark_complete/{id}", m.CSRFProtect(h.Lessons.MarkComplete)).Methods(http.MethodPost)

	pages.HandleFunc("/dictionary", h.Dictionary.ShowDictionary).Methods(http.MethodGet)

	pages.HandleFunc("/practice", h.Practice.ShowPractice).Methods(http.MethodGet)
	pages.HandleFunc("/practice/ws", m.RateLimit(h.Practice.PracticeSocket)).Methods(http.MethodGet)

	handler := Logging(logger)(r)
	if len(allowedOrigins) == 0 {
		return handler
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", CSRFHeaderName},
		AllowCredentials: true,
	})
	return c.Handler(handler)
}

// Health reports that the process is serving
func Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
