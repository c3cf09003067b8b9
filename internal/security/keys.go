package security

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const keySize = 32

// Keys are the independent secrets derived from the configured session secret
type Keys struct {
	Session []byte
	CSRF    []byte
}

// DeriveKeys expands secret into one key per purpose with HKDF-SHA256
func DeriveKeys(secret string) (Keys, error) {
	if secret == "" {
		return Keys{}, errors.New("session secret is required")
	}

	session, err := deriveKey(secret, "duovocab session token")
	if err != nil {
		return Keys{}, err
	}
	csrf, err := deriveKey(secret, "duovocab csrf token")
	if err != nil {
		return Keys{}, err
	}
	return Keys{Session: session, CSRF: csrf}, nil
}

func deriveKey(secret, info string) ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(info)), key); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return key, nil
}
