package testutil

import (
	"context"
	"sync"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/websocket"
)

// MockTemplateRepository is a mock implementation of domain.TemplateRepository
type MockTemplateRepository struct {
	Templates map[int32]*domain.TransactionTemplate
	NextID    int32
	// Overrides, when set, receives the cascade of Delete
	Overrides *MockMonthlyStatusRepository

	CreateFn func(template *domain.TransactionTemplate) (*domain.TransactionTemplate, error)
	ListFn   func() ([]*domain.TransactionTemplate, error)
	UpdateFn func(template *domain.TransactionTemplate) (*domain.TransactionTemplate, error)
	DeleteFn func(id int32) error
}

// NewMockTemplateRepository creates a new MockTemplateRepository
func NewMockTemplateRepository() *MockTemplateRepository {
	return &MockTemplateRepository{
		Templates: make(map[int32]*domain.TransactionTemplate),
		NextID:    1,
	}
}

// Create creates a new template
func (m *MockTemplateRepository) Create(_ context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	if m.CreateFn != nil {
		return m.CreateFn(template)
	}
	template.ID = m.NextID
	m.NextID++
	m.Templates[template.ID] = template
	return template, nil
}

// GetByID retrieves a template by ID
func (m *MockTemplateRepository) GetByID(_ context.Context, id int32) (*domain.TransactionTemplate, error) {
	if t, ok := m.Templates[id]; ok {
		copied := *t
		return &copied, nil
	}
	return nil, domain.ErrTemplateNotFound
}

// List retrieves all templates in insertion order of their ids
func (m *MockTemplateRepository) List(_ context.Context) ([]*domain.TransactionTemplate, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	result := make([]*domain.TransactionTemplate, 0, len(m.Templates))
	for id := int32(1); id < m.NextID; id++ {
		if t, ok := m.Templates[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

// Update updates an existing template
func (m *MockTemplateRepository) Update(_ context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(template)
	}
	if _, ok := m.Templates[template.ID]; !ok {
		return nil, domain.ErrTemplateNotFound
	}
	m.Templates[template.ID] = template
	return template, nil
}

// Delete removes a template
func (m *MockTemplateRepository) Delete(_ context.Context, id int32) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(id)
	}
	if _, ok := m.Templates[id]; !ok {
		return domain.ErrTemplateNotFound
	}
	delete(m.Templates, id)
	if m.Overrides != nil {
		m.Overrides.deleteTemplate(id)
	}
	return nil
}

// AddTemplate adds a template to the mock repository (helper for tests)
func (m *MockTemplateRepository) AddTemplate(template *domain.TransactionTemplate) {
	m.Templates[template.ID] = template
	if template.ID >= m.NextID {
		m.NextID = template.ID + 1
	}
}

// MockMonthlyStatusRepository is a mock implementation of domain.MonthlyStatusRepository
type MockMonthlyStatusRepository struct {
	Overrides map[domain.OverrideKey]*domain.MonthlyStatusOverride
	// Templates, when set, is consulted by Upsert for template existence
	Templates *MockTemplateRepository

	ListByMonthFn func(year, month int) ([]*domain.MonthlyStatusOverride, error)
	UpsertFn      func(override *domain.MonthlyStatusOverride) (*domain.MonthlyStatusOverride, error)
	UpsertCalls   int
}

// NewMockMonthlyStatusRepository creates a new MockMonthlyStatusRepository
func NewMockMonthlyStatusRepository() *MockMonthlyStatusRepository {
	return &MockMonthlyStatusRepository{
		Overrides: make(map[domain.OverrideKey]*domain.MonthlyStatusOverride),
	}
}

// Get retrieves an override by key
func (m *MockMonthlyStatusRepository) Get(_ context.Context, key domain.OverrideKey) (*domain.MonthlyStatusOverride, error) {
	if o, ok := m.Overrides[key]; ok {
		return o, nil
	}
	return nil, domain.ErrOverrideNotFound
}

// ListByMonth retrieves all overrides of a month
func (m *MockMonthlyStatusRepository) ListByMonth(_ context.Context, year, month int) ([]*domain.MonthlyStatusOverride, error) {
	if m.ListByMonthFn != nil {
		return m.ListByMonthFn(year, month)
	}
	result := make([]*domain.MonthlyStatusOverride, 0)
	for key, o := range m.Overrides {
		if key.Year == year && key.Month == month {
			result = append(result, o)
		}
	}
	return result, nil
}

// Upsert creates or overwrites an override
func (m *MockMonthlyStatusRepository) Upsert(_ context.Context, override *domain.MonthlyStatusOverride) (*domain.MonthlyStatusOverride, error) {
	m.UpsertCalls++
	if m.UpsertFn != nil {
		return m.UpsertFn(override)
	}
	if m.Templates != nil {
		if _, ok := m.Templates.Templates[override.TemplateID]; !ok {
			return nil, domain.ErrTemplateNotFound
		}
	}
	m.Overrides[override.Key()] = override
	return override, nil
}

// AddOverride adds an override to the mock repository (helper for tests)
func (m *MockMonthlyStatusRepository) AddOverride(override *domain.MonthlyStatusOverride) {
	m.Overrides[override.Key()] = override
}

func (m *MockMonthlyStatusRepository) deleteTemplate(id int32) {
	for key := range m.Overrides {
		if key.TemplateID == id {
			delete(m.Overrides, key)
		}
	}
}

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	CreateFn   func(category *domain.Category) (*domain.Category, error)
	ListFn     func() ([]*domain.Category, error)
}

// NewMockCategoryRepository creates a new MockCategoryRepository
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
	}
}

// Create stores a category under the next free id
func (m *MockCategoryRepository) Create(_ context.Context, category *domain.Category) (*domain.Category, error) {
	if m.CreateFn != nil {
		return m.CreateFn(category)
	}
	var maxID int32
	for id := range m.Categories {
		maxID = max(maxID, id)
	}
	created := &domain.Category{ID: maxID + 1, Name: category.Name, Type: category.Type}
	m.Categories[created.ID] = created
	return created, nil
}

// GetByID retrieves a category by ID
func (m *MockCategoryRepository) GetByID(_ context.Context, id int32) (*domain.Category, error) {
	if c, ok := m.Categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

// List retrieves all categories ordered by id
func (m *MockCategoryRepository) List(_ context.Context) ([]*domain.Category, error) {
	if m.ListFn != nil {
		return m.ListFn()
	}
	result := make([]*domain.Category, 0, len(m.Categories))
	var maxID int32
	for id := range m.Categories {
		maxID = max(maxID, id)
	}
	for id := int32(1); id <= maxID; id++ {
		if c, ok := m.Categories[id]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

// AddCategory adds a category to the mock repository (helper for tests)
func (m *MockCategoryRepository) AddCategory(category *domain.Category) {
	m.Categories[category.ID] = category
}

// RecordingPublisher captures published events for assertions
type RecordingPublisher struct {
	mu     sync.Mutex
	Events []websocket.Event
}

// Publish records the event
func (p *RecordingPublisher) Publish(event websocket.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types returns the recorded event types in publish order
func (p *RecordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.Events))
	for i, e := range p.Events {
		types[i] = e.Type
	}
	return types
}
