package auth

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Level is a permission level required by an operation.
type Level string

const (
	// LevelRead is granted to everyone, including anonymous visitors.
	LevelRead Level = "read"
	// LevelChange is granted only to authenticated sessions.
	LevelChange Level = "change"
)

// ErrForbidden is returned when a session lacks the required permission.
var ErrForbidden = errors.New("forbidden")

// SessionStore maps opaque session tokens to authenticated usernames.
// Tokens are random; the hosting layer carries them back and forth and
// nothing ever decodes them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewSessionStore creates an empty SessionStore
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

// Issue binds a fresh token to the given username
func (s *SessionStore) Issue(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = username
	s.mu.Unlock()
	return token
}

// Revoke invalidates a token. Revoking an unknown or already-revoked
// token is not an error.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Identity resolves a token to the username it is bound to
func (s *SessionStore) Identity(token string) (string, bool) {
	s.mu.RLock()
	username, ok := s.sessions[token]
	s.mu.RUnlock()
	return username, ok
}

// Authorize checks a token against a required permission level. Read is
// always granted; change requires an authenticated session and fails with
// ErrForbidden otherwise.
func (s *SessionStore) Authorize(token string, level Level) error {
	if level == LevelRead {
		return nil
	}
	if _, ok := s.Identity(token); !ok {
		return ErrForbidden
	}
	return nil
}
