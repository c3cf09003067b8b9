package security

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "duovocab_session"

const tokenIssuer = "duovocab"

// ErrInvalidSession is returned for tokens that are malformed, forged or expired
var ErrInvalidSession = errors.New("invalid session token")

// GenerateSessionID creates a new UUID for session identification
func GenerateSessionID() string {
	return uuid.New().String()
}

// SessionManager issues and verifies HS256 session tokens. The token subject
// is the anonymous session ID that completion state is keyed by.
type SessionManager struct {
	key      []byte
	duration time.Duration
	now      func() time.Time
}

// NewSessionManager creates a session manager signing with key
func NewSessionManager(key []byte, duration time.Duration) *SessionManager {
	return &SessionManager{
		key:      key,
		duration: duration,
		now:      time.Now,
	}
}

// Duration is how long an issued token stays valid
func (m *SessionManager) Duration() time.Duration {
	return m.duration
}

// Issue signs a token for sessionID and returns it with its expiry
func (m *SessionManager) Issue(sessionID string) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.duration)

	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expires, nil
}

// Parse verifies token and returns the session ID it carries
func (m *SessionManager) Parse(token string) (string, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	claims := &jwt.RegisteredClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return m.key, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}

// IsSecureRequest determines if the request is over HTTPS
// Checks TLS connection, X-Forwarded-Proto header (for reverse proxies), and URL scheme
func IsSecureRequest(r *http.Request) bool {
	// Direct TLS connection
	if r.TLS != nil {
		return true
	}

	// Behind reverse proxy
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		return true
	}

	return r.URL.Scheme == "https"
}

// CreateSessionCookie creates a session cookie with proper security flags
// The Secure flag is automatically set based on the request scheme (HTTPS detection)
func CreateSessionCookie(r *http.Request, name, value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
}
