package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
)

// MonthlyStatusRepository implements domain.MonthlyStatusRepository in memory,
// indexed by the composite (template, year, month) key
type MonthlyStatusRepository struct {
	db *DB
}

// NewMonthlyStatusRepository creates a new MonthlyStatusRepository
func NewMonthlyStatusRepository(db *DB) *MonthlyStatusRepository {
	return &MonthlyStatusRepository{db: db}
}

// Get returns the override for key
func (r *MonthlyStatusRepository) Get(_ context.Context, key domain.OverrideKey) (*domain.MonthlyStatusOverride, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	o, ok := r.db.overrides[key]
	if !ok {
		return nil, domain.ErrOverrideNotFound
	}
	copied := *o
	return &copied, nil
}

// ListByMonth returns the overrides of one month ordered by template id
func (r *MonthlyStatusRepository) ListByMonth(_ context.Context, year, month int) ([]*domain.MonthlyStatusOverride, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	result := make([]*domain.MonthlyStatusOverride, 0)
	for key, o := range r.db.overrides {
		if key.Year == year && key.Month == month {
			copied := *o
			result = append(result, &copied)
		}
	}
	slices.SortFunc(result, func(a, b *domain.MonthlyStatusOverride) int {
		return cmp.Compare(a.TemplateID, b.TemplateID)
	})
	return result, nil
}

// Upsert creates or overwrites the override under the write lock, so the template
// existence check and the write are one step
func (r *MonthlyStatusRepository) Upsert(_ context.Context, override *domain.MonthlyStatusOverride) (*domain.MonthlyStatusOverride, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.templates[override.TemplateID]; !ok {
		return nil, domain.ErrTemplateNotFound
	}

	stored := *override
	r.db.overrides[stored.Key()] = &stored

	copied := stored
	return &copied, nil
}

// Count returns the number of stored overrides
func (r *MonthlyStatusRepository) Count() int {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.overrides)
}
