package service

import (
	"cmp"
	"context"
	"slices"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/util"
	"github.com/dafibh/fortuna/ledger-backend/internal/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// LedgerService materializes monthly occurrences, summarizes months and manages
// per-month status overrides
type LedgerService struct {
	templateRepo   domain.TemplateRepository
	statusRepo     domain.MonthlyStatusRepository
	categoryRepo   domain.CategoryRepository
	clock          Clock
	eventPublisher websocket.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	templateRepo domain.TemplateRepository,
	statusRepo domain.MonthlyStatusRepository,
	categoryRepo domain.CategoryRepository,
	clock Clock,
) *LedgerService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LedgerService{
		templateRepo: templateRepo,
		statusRepo:   statusRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *LedgerService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *LedgerService) publishEvent(event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(event)
	}
}

// CurrentMonth returns the year and month containing the service clock's now
func (s *LedgerService) CurrentMonth() (int, int) {
	now := s.clock.Now()
	return now.Year(), int(now.Month())
}

// OccurrencesForMonth returns every occurrence of every template in (year, month),
// most recent first.
//
// A template whose baseline date lies in the month appears once, literally. Recurring
// templates that fire in any other month appear as virtual occurrences. This makes
// the literal record stand in for the origin month, so no month is counted twice.
func (s *LedgerService) OccurrencesForMonth(ctx context.Context, year, month int) ([]*domain.Occurrence, error) {
	if err := domain.ValidateYearMonth(year, month); err != nil {
		return nil, err
	}

	var (
		templates []*domain.TransactionTemplate
		overrides []*domain.MonthlyStatusOverride
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		templates, err = s.templateRepo.List(gctx)
		return domain.WrapStoreError("list templates", err)
	})
	g.Go(func() error {
		var err error
		overrides, err = s.statusRepo.ListByMonth(gctx, year, month)
		return domain.WrapStoreError("list monthly status", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byKey := make(map[domain.OverrideKey]*domain.MonthlyStatusOverride, len(overrides))
	for _, o := range overrides {
		byKey[o.Key()] = o
	}

	now := s.clock.Now()
	occurrences := make([]*domain.Occurrence, 0, len(templates))

	for _, t := range templates {
		var (
			date    = util.DateOnly(t.BaselineDate)
			virtual bool
		)

		switch {
		case util.InMonth(t.BaselineDate, year, month):
			// literal record
		case t.IsRecurring() && Fires(t, year, month):
			date = ResolveDate(t, year, month)
			virtual = true
		default:
			continue
		}

		override := byKey[domain.OverrideKey{TemplateID: t.ID, Year: year, Month: month}]
		status, cleared := EffectiveStatus(t, override, virtual, year, month, now)

		occurrences = append(occurrences, &domain.Occurrence{
			Template:         t,
			Year:             year,
			Month:            month,
			OccurrenceDate:   date,
			EffectiveStatus:  status,
			EffectiveCleared: cleared,
			Virtual:          virtual,
			Override:         override,
		})
	}

	sortOccurrences(occurrences)

	log.Debug().
		Int("year", year).
		Int("month", month).
		Int("templates", len(templates)).
		Int("occurrences", len(occurrences)).
		Msg("Materialized month")

	return occurrences, nil
}

// sortOccurrences orders by date descending, then template id ascending
func sortOccurrences(occurrences []*domain.Occurrence) {
	slices.SortFunc(occurrences, func(a, b *domain.Occurrence) int {
		if c := b.OccurrenceDate.Compare(a.OccurrenceDate); c != 0 {
			return c
		}
		return cmp.Compare(a.Template.ID, b.Template.ID)
	})
}

// SummarizeMonth materializes the month and aggregates it. Any store failure aborts
// the whole computation; an empty month yields a zeroed summary with no error.
func (s *LedgerService) SummarizeMonth(ctx context.Context, year, month int) (*domain.MonthlySummary, error) {
	if err := domain.ValidateYearMonth(year, month); err != nil {
		return nil, err
	}

	var (
		occurrences []*domain.Occurrence
		categories  []*domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		occurrences, err = s.OccurrencesForMonth(gctx, year, month)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.List(gctx)
		return domain.WrapStoreError("list categories", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[int32]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	return Summarize(year, month, occurrences, names), nil
}

// GetMonthlyStatus returns the explicit override for a template in a month.
// ErrOverrideNotFound means the month uses the template baseline.
func (s *LedgerService) GetMonthlyStatus(ctx context.Context, templateID int32, year, month int) (*domain.MonthlyStatusOverride, error) {
	if err := domain.ValidateYearMonth(year, month); err != nil {
		return nil, err
	}

	override, err := s.statusRepo.Get(ctx, domain.OverrideKey{TemplateID: templateID, Year: year, Month: month})
	if err != nil {
		return nil, domain.WrapStoreError("get monthly status", err)
	}
	return override, nil
}

// SetMonthlyStatus upserts the override for (template, year, month) in a single
// atomic store operation
func (s *LedgerService) SetMonthlyStatus(ctx context.Context, input domain.SetMonthlyStatusInput) (*domain.MonthlyStatusOverride, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	override, err := s.statusRepo.Upsert(ctx, &domain.MonthlyStatusOverride{
		TemplateID: input.TemplateID,
		Year:       input.Year,
		Month:      input.Month,
		Status:     input.Status,
		IsCleared:  input.IsCleared,
		UpdatedAt:  s.clock.Now(),
	})
	if err != nil {
		return nil, domain.WrapStoreError("set monthly status", err)
	}

	log.Info().
		Int32("template_id", override.TemplateID).
		Int("year", override.Year).
		Int("month", override.Month).
		Str("status", string(override.Status)).
		Bool("is_cleared", override.IsCleared).
		Msg("Monthly status set")

	s.publishEvent(websocket.StatusUpdated(override.Year, override.Month, override))

	return override, nil
}
