package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLifecycle(t *testing.T) {
	store := NewSessionStore()

	token := store.Issue("alice")
	assert.NotEmpty(t, token)

	username, ok := store.Identity(token)
	assert.True(t, ok)
	assert.Equal(t, "alice", username)

	store.Revoke(token)
	_, ok = store.Identity(token)
	assert.False(t, ok)

	// Revoking twice is not an error
	store.Revoke(token)
}

func TestTokensAreUnique(t *testing.T) {
	store := NewSessionStore()
	assert.NotEqual(t, store.Issue("alice"), store.Issue("alice"))
}

func TestAuthorize(t *testing.T) {
	store := NewSessionStore()

	t.Run("read is granted to anonymous", func(t *testing.T) {
		assert.NoError(t, store.Authorize("", LevelRead))
	})

	t.Run("change is forbidden to anonymous", func(t *testing.T) {
		assert.ErrorIs(t, store.Authorize("", LevelChange), ErrForbidden)
		assert.ErrorIs(t, store.Authorize("stale-token", LevelChange), ErrForbidden)
	})

	t.Run("change is granted to authenticated", func(t *testing.T) {
		token := store.Issue("alice")
		assert.NoError(t, store.Authorize(token, LevelChange))
		assert.NoError(t, store.Authorize(token, LevelRead))
	})

	t.Run("change is forbidden after logout", func(t *testing.T) {
		token := store.Issue("alice")
		store.Revoke(token)
		assert.ErrorIs(t, store.Authorize(token, LevelChange), ErrForbidden)
	})
}
