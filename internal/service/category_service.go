package service

import (
	"context"
	"strings"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// CategoryService exposes the category lookup table
type CategoryService struct {
	categoryRepo domain.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo domain.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns all categories, optionally only those of one type
func (s *CategoryService) ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]*domain.Category, error) {
	if categoryType != nil && !categoryType.Valid() {
		return nil, domain.NewValidationError("type", "must be expense or income")
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStoreError("list categories", err)
	}

	if categoryType == nil {
		return categories, nil
	}

	filtered := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.Type == *categoryType {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// CreateCategory validates and stores a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input domain.CreateCategoryInput) (*domain.Category, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, err
	}

	created, err := s.categoryRepo.Create(ctx, &domain.Category{Name: input.Name, Type: input.Type})
	if err != nil {
		return nil, domain.WrapStoreError("create category", err)
	}

	log.Info().Int32("category_id", created.ID).Str("type", string(created.Type)).Msg("Category created")
	return created, nil
}
