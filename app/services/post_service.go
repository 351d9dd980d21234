package services

import (
	"fmt"
	"time"

	"journal/app/models"
	"journal/app/repositories"
)

// PostService handles business logic for journal posts
type PostService struct {
	postRepo repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost creates a new post with validation. A duplicate title fails
// with repositories.ErrConflict.
func (s *PostService) CreatePost(title, text string) (*models.Post, error) {
	post := &models.Post{
		Title:   title,
		Text:    text,
		Created: time.Now(),
	}

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by ID with its categories and comments
func (s *PostService) GetPost(id int) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// ListPosts retrieves all posts
func (s *PostService) ListPosts() ([]*models.Post, error) {
	return s.postRepo.List()
}

// UpdatePost rewrites a post's title and text. The creation timestamp is
// preserved. A missing id fails with repositories.ErrNotFound and a title
// collision with a different post fails with repositories.ErrConflict.
func (s *PostService) UpdatePost(id int, title, text string) (*models.Post, error) {
	post := &models.Post{
		ID:      id,
		Title:   title,
		Text:    text,
		Created: time.Now(), // placeholder; the repository restores the stored value
	}

	if err := post.Validate(); err != nil {
		return nil, fmt.Errorf("invalid post: %w", err)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}
