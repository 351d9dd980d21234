package repositories

import (
	"testing"

	"journal/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryRepository(t *testing.T) {
	db, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	postRepo := NewBadgerPostRepository(db)
	repo := NewBadgerCategoryRepository(db)

	t.Run("create category", func(t *testing.T) {
		category := &models.Category{Name: "go"}
		err := repo.Create(category)
		assert.NoError(t, err)
		assert.Greater(t, category.ID, 0)
	})

	t.Run("duplicate name fails", func(t *testing.T) {
		err := repo.Create(&models.Category{Name: "go"})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("attach and list by post", func(t *testing.T) {
		post := &models.Post{Title: "Tagged Post", Text: "text"}
		require.NoError(t, postRepo.Create(post))
		category := &models.Category{Name: "journal"}
		require.NoError(t, repo.Create(category))

		err := repo.Attach(post.ID, category.ID)
		assert.NoError(t, err)

		categories, err := repo.ListByPost(post.ID)
		assert.NoError(t, err)
		assert.Len(t, categories, 1)
		assert.Equal(t, "journal", categories[0].Name)

		retrieved, err := postRepo.GetByID(post.ID)
		assert.NoError(t, err)
		assert.True(t, retrieved.HasCategory(category.ID))
	})

	t.Run("duplicate pair fails", func(t *testing.T) {
		post := &models.Post{Title: "Doubly Tagged", Text: "text"}
		require.NoError(t, postRepo.Create(post))
		category := &models.Category{Name: "twice"}
		require.NoError(t, repo.Create(category))

		assert.NoError(t, repo.Attach(post.ID, category.ID))
		err := repo.Attach(post.ID, category.ID)
		assert.ErrorIs(t, err, ErrConflict)

		categories, err := repo.ListByPost(post.ID)
		assert.NoError(t, err)
		assert.Len(t, categories, 1)
	})

	t.Run("attach with missing references", func(t *testing.T) {
		category := &models.Category{Name: "dangling"}
		require.NoError(t, repo.Create(category))

		assert.ErrorIs(t, repo.Attach(9999, category.ID), ErrNotFound)

		post := &models.Post{Title: "Untagged", Text: "text"}
		require.NoError(t, postRepo.Create(post))
		assert.ErrorIs(t, repo.Attach(post.ID, 9999), ErrNotFound)
	})

	t.Run("get category with posts", func(t *testing.T) {
		post := &models.Post{Title: "Listed Post", Text: "text"}
		require.NoError(t, postRepo.Create(post))
		category := &models.Category{Name: "listing"}
		require.NoError(t, repo.Create(category))
		require.NoError(t, repo.Attach(post.ID, category.ID))

		found, err := repo.GetByID(category.ID)
		assert.NoError(t, err)
		assert.Len(t, found.Posts, 1)
		assert.Equal(t, "Listed Post", found.Posts[0].Title)

		_, err = repo.GetByID(9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list all categories", func(t *testing.T) {
		categories, err := repo.List()
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, len(categories), 4)
	})
}
