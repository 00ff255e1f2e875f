// Package memory provides process-local stores for templates, monthly overrides and
// categories. All three repositories of one DB share a single lock so an override
// upsert and a template delete can never interleave.
package memory

import (
	"sync"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
)

// DB holds the shared state behind the memory repositories
type DB struct {
	mu             sync.RWMutex
	templates      map[int32]*domain.TransactionTemplate
	overrides      map[domain.OverrideKey]*domain.MonthlyStatusOverride
	categories     map[int32]*domain.Category
	nextTemplateID int32
	nextCategoryID int32
}

// NewDB creates an empty store seeded with the default categories
func NewDB() *DB {
	db := NewEmptyDB()
	for _, c := range domain.DefaultCategories {
		db.AddCategory(c.Name, c.Type)
	}
	return db
}

// NewEmptyDB creates a store without any categories
func NewEmptyDB() *DB {
	return &DB{
		templates:      make(map[int32]*domain.TransactionTemplate),
		overrides:      make(map[domain.OverrideKey]*domain.MonthlyStatusOverride),
		categories:     make(map[int32]*domain.Category),
		nextTemplateID: 1,
		nextCategoryID: 1,
	}
}

// AddCategory inserts a category and returns it with its assigned id
func (db *DB) AddCategory(name string, categoryType domain.TransactionType) *domain.Category {
	db.mu.Lock()
	defer db.mu.Unlock()

	c := &domain.Category{ID: db.nextCategoryID, Name: name, Type: categoryType}
	db.nextCategoryID++
	db.categories[c.ID] = c

	copied := *c
	return &copied
}

func copyTemplate(t *domain.TransactionTemplate) *domain.TransactionTemplate {
	c := *t
	if t.CategoryID != nil {
		id := *t.CategoryID
		c.CategoryID = &id
	}
	if t.OriginalDate != nil {
		d := *t.OriginalDate
		c.OriginalDate = &d
	}
	if t.CustomDay != nil {
		day := *t.CustomDay
		c.CustomDay = &day
	}
	return &c
}
