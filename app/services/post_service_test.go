package services

import (
	"testing"

	"journal/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService(t *testing.T) *PostService {
	t.Helper()
	db, err := repositories.Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return NewPostService(repositories.NewBadgerPostRepository(db))
}

func TestCreatePost(t *testing.T) {
	service := newTestPostService(t)

	post, err := service.CreatePost("Hello", "World")
	assert.NoError(t, err)
	assert.Greater(t, post.ID, 0)
	assert.False(t, post.Created.IsZero())

	retrieved, err := service.GetPost(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Hello", retrieved.Title)
	assert.Equal(t, "World", retrieved.Text)
}

func TestCreatePostValidation(t *testing.T) {
	service := newTestPostService(t)

	_, err := service.CreatePost("", "body")
	assert.Error(t, err)

	_, err = service.CreatePost("Title", "")
	assert.Error(t, err)
}

func TestCreatePostDuplicateTitle(t *testing.T) {
	service := newTestPostService(t)

	_, err := service.CreatePost("Unique", "first")
	require.NoError(t, err)

	_, err = service.CreatePost("Unique", "second")
	assert.ErrorIs(t, err, repositories.ErrConflict)

	posts, err := service.ListPosts()
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
}

func TestUpdatePost(t *testing.T) {
	service := newTestPostService(t)

	post, err := service.CreatePost("Before", "old text")
	require.NoError(t, err)

	updated, err := service.UpdatePost(post.ID, "After", "new text")
	assert.NoError(t, err)
	assert.Equal(t, post.Created.Unix(), updated.Created.Unix())

	retrieved, err := service.GetPost(post.ID)
	assert.NoError(t, err)
	assert.Equal(t, "After", retrieved.Title)
	assert.Equal(t, "new text", retrieved.Text)
}

func TestUpdatePostErrors(t *testing.T) {
	service := newTestPostService(t)

	_, err := service.UpdatePost(9999, "Ghost", "text")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = service.CreatePost("First", "text")
	require.NoError(t, err)
	second, err := service.CreatePost("Second", "text")
	require.NoError(t, err)

	_, err = service.UpdatePost(second.ID, "First", "text")
	assert.ErrorIs(t, err, repositories.ErrConflict)
}
