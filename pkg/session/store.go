package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// Store parks sessions between requests, keyed by an opaque token the caller
// hands to the client. Sessions are ephemeral: a store may drop them at any
// time (process restart, TTL) and the caller falls back to a fresh anonymous
// session.
type Store interface {
	// Save persists the session under the token, replacing any previous one.
	Save(ctx context.Context, token string, sess Session) error

	// Load returns the parked session, or ErrSessionNotFound.
	Load(ctx context.Context, token string) (Session, error)

	// Delete removes the parked session. Deleting a missing token is not an
	// error.
	Delete(ctx context.Context, token string) error
}

// GenerateToken creates a cryptographically random session token.
func GenerateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
