package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository in memory
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create stores a category under the next id
func (r *CategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	return r.db.AddCategory(category.Name, category.Type), nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(_ context.Context, id int32) (*domain.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.categories[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

// List returns all categories ordered by id
func (r *CategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]*domain.Category, 0, len(r.db.categories))
	for _, c := range r.db.categories {
		copied := *c
		result = append(result, &copied)
	}
	slices.SortFunc(result, func(a, b *domain.Category) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}
