package auth

import (
	"testing"

	"journal/app/models"
	"journal/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*CredentialStore, repositories.UserRepository) {
	t.Helper()
	db, err := repositories.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	users := repositories.NewBadgerUserRepository(db)
	return NewCredentialStore(users), users
}

func TestHashAndVerify(t *testing.T) {
	store, users := newTestStore(t)

	hash, err := store.Hash("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, "pw123", hash)

	user := &models.User{Username: "alice", Password: hash}
	require.NoError(t, users.Create(user))

	ok, err := store.Verify(user, "pw123")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Verify(user, "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	store, _ := newTestStore(t)

	first, err := store.Hash("pw123")
	assert.NoError(t, err)
	second, err := store.Hash("pw123")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestLegacyCleartextUpgrade(t *testing.T) {
	store, users := newTestStore(t)

	// A record from before hashing was introduced
	user := &models.User{Username: "legacy", Password: "pw123"}
	require.NoError(t, users.Create(user))

	ok, err := store.Verify(user, "pw123")
	assert.NoError(t, err)
	assert.True(t, ok)

	stored, err := users.FindByUsername("legacy")
	require.NoError(t, err)
	assert.NotEqual(t, "pw123", stored.Password)

	// The rewritten credential keeps verifying and is not rewritten again
	rewritten := stored.Password
	ok, err = store.Verify(stored, "pw123")
	assert.NoError(t, err)
	assert.True(t, ok)

	stored, err = users.FindByUsername("legacy")
	require.NoError(t, err)
	assert.Equal(t, rewritten, stored.Password)
}
