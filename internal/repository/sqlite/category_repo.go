package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
)

// CategoryRepository implements domain.CategoryRepository on SQLite
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a category and returns it with its assigned id
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (name, type) VALUES (?, ?)`,
		category.Name, string(category.Type),
	)
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Category{ID: int32(id), Name: category.Name, Type: category.Type}, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	var (
		c            domain.Category
		categoryType string
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, name, type FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &categoryType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	c.Type = domain.TransactionType(categoryType)
	return &c, nil
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var (
			c            domain.Category
			categoryType string
		)
		if err := rows.Scan(&c.ID, &c.Name, &categoryType); err != nil {
			return nil, err
		}
		c.Type = domain.TransactionType(categoryType)
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}
