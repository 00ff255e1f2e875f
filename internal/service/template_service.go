package service

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/util"
	"github.com/dafibh/fortuna/ledger-backend/internal/websocket"
	"github.com/rs/zerolog/log"
)

// TemplateServiceImpl handles transaction template business logic
type TemplateServiceImpl struct {
	templateRepo   domain.TemplateRepository
	categoryRepo   domain.CategoryRepository
	clock          Clock
	eventPublisher websocket.EventPublisher
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo domain.TemplateRepository, categoryRepo domain.CategoryRepository, clock Clock) *TemplateServiceImpl {
	if clock == nil {
		clock = SystemClock{}
	}
	return &TemplateServiceImpl{
		templateRepo: templateRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

var _ domain.TemplateService = (*TemplateServiceImpl)(nil)

// SetEventPublisher sets the event publisher for real-time updates
func (s *TemplateServiceImpl) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *TemplateServiceImpl) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CreateTemplate validates and stores a new template
func (s *TemplateServiceImpl) CreateTemplate(ctx context.Context, input domain.CreateTemplateInput) (*domain.TransactionTemplate, error) {
	template := &domain.TransactionTemplate{
		Type:          input.Type,
		Description:   input.Description,
		Amount:        input.Amount,
		CategoryID:    input.CategoryID,
		BaselineDate:  util.DateOnly(input.Date),
		Recurrence:    input.Recurrence,
		DatePlacement: input.DatePlacement,
		CustomDay:     input.CustomDay,
		Status:        input.Status,
		IsCleared:     input.IsCleared,
	}
	if input.OriginalDate != nil {
		original := util.DateOnly(*input.OriginalDate)
		template.OriginalDate = &original
	}

	applyDefaults(template)
	normalizeRecurrence(template, false)

	if err := template.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, template.CategoryID); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	template.CreatedAt = now
	template.UpdatedAt = now

	created, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, domain.WrapStoreError("create template", err)
	}

	log.Info().
		Int32("template_id", created.ID).
		Str("recurrence", string(created.Recurrence)).
		Str("description", created.Description).
		Msg("Template created")

	s.publishEvent(websocket.TemplateCreated(created))

	return created, nil
}

// UpdateTemplate rejects invalid patch fields before reading the store, then applies
// the patch and re-validates the merged result
func (s *TemplateServiceImpl) UpdateTemplate(ctx context.Context, id int32, input domain.UpdateTemplateInput) (*domain.TransactionTemplate, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStoreError("get template", err)
	}

	updated := *existing
	wasRecurring := existing.IsRecurring()
	applyPatch(&updated, input)
	normalizeRecurrence(&updated, wasRecurring)

	if err := updated.Validate(); err != nil {
		return nil, err
	}
	if input.CategoryID != nil {
		if err := s.checkCategory(ctx, updated.CategoryID); err != nil {
			return nil, err
		}
	}

	updated.UpdatedAt = s.clock.Now()

	result, err := s.templateRepo.Update(ctx, &updated)
	if err != nil {
		return nil, domain.WrapStoreError("update template", err)
	}

	log.Info().Int32("template_id", id).Msg("Template updated")
	s.publishEvent(websocket.TemplateUpdated(result))

	return result, nil
}

// DeleteTemplate removes a template together with its monthly overrides
func (s *TemplateServiceImpl) DeleteTemplate(ctx context.Context, id int32) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		return domain.WrapStoreError("delete template", err)
	}

	log.Info().Int32("template_id", id).Msg("Template deleted")
	s.publishEvent(websocket.TemplateDeleted(map[string]int32{"id": id}))

	return nil
}

// GetTemplate retrieves a single template by ID
func (s *TemplateServiceImpl) GetTemplate(ctx context.Context, id int32) (*domain.TransactionTemplate, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.WrapStoreError("get template", err)
	}
	return template, nil
}

// ListTemplates retrieves all templates
func (s *TemplateServiceImpl) ListTemplates(ctx context.Context) ([]*domain.TransactionTemplate, error) {
	templates, err := s.templateRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStoreError("list templates", err)
	}
	return templates, nil
}

// checkCategory rejects references to categories that do not exist
func (s *TemplateServiceImpl) checkCategory(ctx context.Context, categoryID *int32) error {
	if categoryID == nil {
		return nil
	}
	if _, err := s.categoryRepo.GetByID(ctx, *categoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("categoryId", "does not reference an existing category")
		}
		return domain.WrapStoreError("get category", err)
	}
	return nil
}

func applyDefaults(t *domain.TransactionTemplate) {
	if t.Type == "" {
		t.Type = domain.TransactionTypeExpense
	}
	if t.Status == "" {
		t.Status = domain.StatusPending
	}
	if t.Recurrence == "" {
		t.Recurrence = domain.RecurrenceOnce
	}
	if t.DatePlacement == "" {
		t.DatePlacement = domain.PlacementFixed
	}
}

func applyPatch(t *domain.TransactionTemplate, in domain.UpdateTemplateInput) {
	if in.Type != nil {
		t.Type = *in.Type
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.ClearCategory {
		t.CategoryID = nil
	} else if in.CategoryID != nil {
		id := *in.CategoryID
		t.CategoryID = &id
	}
	if in.Date != nil {
		t.BaselineDate = util.DateOnly(*in.Date)
	}
	if in.OriginalDate != nil {
		original := util.DateOnly(*in.OriginalDate)
		t.OriginalDate = &original
	}
	if in.Recurrence != nil {
		t.Recurrence = *in.Recurrence
	}
	if in.DatePlacement != nil {
		t.DatePlacement = *in.DatePlacement
	}
	if in.CustomDay != nil {
		day := *in.CustomDay
		t.CustomDay = &day
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.IsCleared != nil {
		t.IsCleared = *in.IsCleared
	}
}

// normalizeRecurrence anchors the origin when recurrence is switched on and drops a
// custom day that the placement no longer uses
func normalizeRecurrence(t *domain.TransactionTemplate, wasRecurring bool) {
	if t.IsRecurring() && !wasRecurring && t.OriginalDate == nil && !t.BaselineDate.IsZero() {
		original := t.BaselineDate
		t.OriginalDate = &original
	}
	if t.DatePlacement != domain.PlacementCustomDay {
		t.CustomDay = nil
	}
}
