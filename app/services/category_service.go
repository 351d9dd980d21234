package services

import (
	"fmt"

	"journal/app/models"
	"journal/app/repositories"
)

// CategoryService handles business logic for categories
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category. A duplicate name fails with
// repositories.ErrConflict.
func (s *CategoryService) CreateCategory(name string) (*models.Category, error) {
	category := &models.Category{Name: name}

	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// AttachCategory links a post and a category. A missing post or category
// fails with repositories.ErrNotFound; linking the same pair twice fails
// with repositories.ErrConflict.
func (s *CategoryService) AttachCategory(postID, categoryID int) error {
	return s.categoryRepo.Attach(postID, categoryID)
}

// GetCategory retrieves a category with the posts carrying it
func (s *CategoryService) GetCategory(id int) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// ListCategories retrieves all categories
func (s *CategoryService) ListCategories() ([]*models.Category, error) {
	return s.categoryRepo.List()
}
