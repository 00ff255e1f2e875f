package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CategoryRepository implements domain.CategoryRepository using PostgreSQL
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a category and returns it with its assigned id
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	created := domain.Category{Name: category.Name, Type: category.Type}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO categories (name, type) VALUES ($1, $2) RETURNING id`,
		category.Name, string(category.Type),
	).Scan(&created.ID)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int32) (*domain.Category, error) {
	var (
		c            domain.Category
		categoryType string
	)
	err := r.pool.QueryRow(ctx, `SELECT id, name, type FROM categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &categoryType)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	c.Type = domain.TransactionType(categoryType)
	return &c, nil
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, type FROM categories ORDER BY id`)
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
