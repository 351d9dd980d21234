package auth

import (
	"fmt"

	"journal/app/models"
	"journal/app/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and verifies user passwords. It holds the user
// repository so the legacy-upgrade path can rewrite a stored credential.
type CredentialStore struct {
	users repositories.UserRepository
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(users repositories.UserRepository) *CredentialStore {
	return &CredentialStore{users: users}
}

// Hash derives a salted bcrypt hash from a cleartext password
func (s *CredentialStore) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// Verify reports whether the password matches the user's stored credential.
//
// Records created before hashing was introduced still hold the cleartext
// password. When the stored credential equals the submitted cleartext, it
// is re-hashed and persisted before the normal check runs. This equality
// test cannot fire for a correctly hashed record, because a bcrypt hash is
// never equal to its own input. This is a compatibility shim and the only
// place such a comparison may happen.
func (s *CredentialStore) Verify(user *models.User, password string) (bool, error) {
	if user.Password == password {
		hashed, err := s.Hash(password)
		if err != nil {
			return false, err
		}
		user.Password = hashed
		if err := s.users.Update(user); err != nil {
			return false, fmt.Errorf("failed to upgrade legacy credential: %w", err)
		}
		logrus.WithField("user_id", user.ID).Warn("Upgraded legacy cleartext credential")
	}

	err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	return err == nil, nil
}
