package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

// ErrNoSession is returned when a token is requested without a session
var ErrNoSession = errors.New("session ID is required")

// CSRFGenerator binds form tokens to the anonymous session id.
// A token is the unpadded base64url HMAC-SHA256 of the id under the CSRF key.
type CSRFGenerator struct {
	key []byte
}

// NewCSRFGenerator creates a generator from a key produced by DeriveKeys
func NewCSRFGenerator(key []byte) *CSRFGenerator {
	return &CSRFGenerator{key: key}
}

func (g *CSRFGenerator) sum(sessionID string) []byte {
	mac := hmac.New(sha256.New, g.key)
	mac.Write([]byte(sessionID))
	return mac.Sum(nil)
}

// GenerateToken returns the token for sessionID. It is stable for the life of the session.
func (g *CSRFGenerator) GenerateToken(sessionID string) (string, error) {
	if sessionID == "" {
		return "", ErrNoSession
	}
	return base64.RawURLEncoding.EncodeToString(g.sum(sessionID)), nil
}

// ValidateToken reports whether token was issued for sessionID
func (g *CSRFGenerator) ValidateToken(sessionID, token string) bool {
	if sessionID == "" || token == "" {
		return false
	}
	given, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return false
	}
	return hmac.Equal(given, g.sum(sessionID))
}
