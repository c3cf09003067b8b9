package handlers

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"duovocab/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const SessionContextKey ContextKey = "session_id"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	sessions *security.SessionManager
	csrf     *security.CSRFGenerator
	limiter  *security.RateLimiter
	logger   *slog.Logger
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessions *security.SessionManager, csrf *security.CSRFGenerator, limiter *security.RateLimiter, logger *slog.Logger) *Middleware {
	return &Middleware{
		sessions: sessions,
		csrf:     csrf,
		limiter:  limiter,
		logger:   logger,
	}
}

// Session makes sure every request carries a session ID. A missing, forged or
// expired cookie is replaced by a fresh anonymous session.
func (m *Middleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(security.SessionCookieName); err == nil {
			sessionID, err = m.sessions.Parse(cookie.Value)
			if err != nil {
				m.logger.DebugContext(r.Context(), "discarding session cookie", slog.Any("error", err))
			}
		}

		if sessionID == "" {
			sessionID = security.GenerateSessionID()
			token, expires, err := m.sessions.Issue(sessionID)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error issuing session", err)
				return
			}
			http.SetCookie(w, security.CreateSessionCookie(r, security.SessionCookieName, token, expires))
		}

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CSRFProtect rejects state-changing requests without a valid CSRF token.
// The token is read from the csrf_token form field or the X-CSRF-Token header.
func (m *Middleware) CSRFProtect(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(CSRFHeaderName)
		if token == "" {
			token = r.PostFormValue(CSRFFormField)
		}

		if !m.csrf.ValidateToken(GetSessionID(r.Context()), token) {
			m.logger.WarnContext(r.Context(), "csrf validation failed",
				slog.String("path", r.URL.Path),
				slog.String("ip", security.GetClientIP(r)))
			respondWithError(w, http.StatusForbidden, ErrForbidden, "", nil)
			return
		}
		next(w, r)
	}
}

// CSRFToken returns the token pages must echo back for the request's session
func (m *Middleware) CSRFToken(r *http.Request) string {
	token, err := m.csrf.GenerateToken(GetSessionID(r.Context()))
	if err != nil {
		return ""
	}
	return token
}

// RateLimit applies the per-IP limiter
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := security.GetClientIP(r)
		if !m.limiter.Allow(ip) {
			m.logger.WarnContext(r.Context(), "rate limit exceeded", slog.String("ip", ip))
			respondWithError(w, http.StatusTooManyRequests, ErrTooManyRequests, "", nil)
			return
		}
		next(w, r)
	}
}

// GetSessionID retrieves the session ID from the request context
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(SessionContextKey).(string)
	return id
}

// statusRecorder captures the response status for request logging
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Hijack lets websocket upgrades pass through the logging wrapper
func (s *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := s.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	s.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// Logging middleware logs HTTP requests
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.InfoContext(r.Context(), "request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
