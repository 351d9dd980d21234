package services

import (
	"fmt"
	"time"

	"journal/app/models"
	"journal/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	commentRepo repositories.CommentRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(commentRepo repositories.CommentRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo}
}

// AddComment creates a comment linked to a post and an authoring user.
// The repository resolves both references atomically; either one missing
// fails with repositories.ErrNotFound and nothing is written.
func (s *CommentService) AddComment(postID, authorID int, thoughts string) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Thoughts: thoughts,
		Written:  time.Now(),
	}

	if err := comment.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment: %w", err)
	}

	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListPostComments retrieves all comments for a post
func (s *CommentService) ListPostComments(postID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByPost(postID)
}

// ListUserComments retrieves all comments written by a user
func (s *CommentService) ListUserComments(authorID int) ([]*models.Comment, error) {
	return s.commentRepo.ListByAuthor(authorID)
}
