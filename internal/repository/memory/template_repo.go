package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
)

// TemplateRepository implements domain.TemplateRepository in memory
type TemplateRepository struct {
	db *DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create stores a template under a fresh id. Ids are never reused.
func (r *TemplateRepository) Create(_ context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored := copyTemplate(template)
	stored.ID = r.db.nextTemplateID
	r.db.nextTemplateID++
	r.db.templates[stored.ID] = stored

	return copyTemplate(stored), nil
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(_ context.Context, id int32) (*domain.TransactionTemplate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.templates[id]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	return copyTemplate(t), nil
}

// List returns all templates ordered by id
func (r *TemplateRepository) List(_ context.Context) ([]*domain.TransactionTemplate, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]*domain.TransactionTemplate, 0, len(r.db.templates))
	for _, t := range r.db.templates {
		result = append(result, copyTemplate(t))
	}
	slices.SortFunc(result, func(a, b *domain.TransactionTemplate) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result, nil
}

// Update replaces the mutable fields of an existing template
func (r *TemplateRepository) Update(_ context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	existing, ok := r.db.templates[template.ID]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}

	stored := copyTemplate(template)
	stored.CreatedAt = existing.CreatedAt
	r.db.templates[stored.ID] = stored

	return copyTemplate(stored), nil
}

// Delete removes a template and every override recorded for it
func (r *TemplateRepository) Delete(_ context.Context, id int32) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.templates[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(r.db.templates, id)

	for key := range r.db.overrides {
		if key.TemplateID == id {
			delete(r.db.overrides, key)
		}
	}
	return nil
}
