package auth

import (
	"errors"
	"fmt"
	"time"

	"journal/app/models"
	"journal/app/repositories"

	"github.com/sirupsen/logrus"
)

var (
	// ErrAuthenticationFailed covers both an unknown username and a bad
	// password; callers get one answer for either.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already taken")
)

// Service runs the session state machine: registration, login, logout and
// permission checks.
type Service struct {
	users       repositories.UserRepository
	credentials *CredentialStore
	sessions    *SessionStore
}

// NewService creates a new auth Service
func NewService(users repositories.UserRepository) *Service {
	return &Service{
		users:       users,
		credentials: NewCredentialStore(users),
		sessions:    NewSessionStore(),
	}
}

// Credentials exposes the credential store
func (s *Service) Credentials() *CredentialStore {
	return s.credentials
}

// Register creates a user with a hashed password and immediately opens an
// authenticated session for it. A taken username fails with
// ErrUsernameTaken and writes nothing.
func (s *Service) Register(username, password string) (*models.User, string, error) {
	logCtx := logrus.WithField("username", username)

	hashed, err := s.credentials.Hash(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{Username: username, Password: hashed}
	if err := user.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid user: %w", err)
	}

	if err := s.users.Create(user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			logCtx.Warn("Registration failed: username already exists")
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token := s.sessions.Issue(user.Username)
	logCtx.WithField("user_id", user.ID).Info("User registered")
	return user, token, nil
}

// Login authenticates a username/password pair and issues a session token.
// The stored last-logged timestamp is touched on success.
func (s *Service) Login(username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.users.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logCtx.Warn("Login failed: user not found")
			return "", ErrAuthenticationFailed
		}
		return "", err
	}

	ok, err := s.credentials.Verify(user, password)
	if err != nil {
		return "", err
	}
	if !ok {
		logCtx.Warn("Login failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	user.LastLogged = time.Now()
	if err := s.users.Update(user); err != nil {
		return "", err
	}

	token := s.sessions.Issue(user.Username)
	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return token, nil
}

// Logout invalidates a session token. Logging out twice is not an error.
func (s *Service) Logout(token string) {
	s.sessions.Revoke(token)
}

// Identity resolves a session token to its username
func (s *Service) Identity(token string) (string, bool) {
	return s.sessions.Identity(token)
}

// Authorize checks a session token against a required permission level
func (s *Service) Authorize(token string, level Level) error {
	return s.sessions.Authorize(token, level)
}
