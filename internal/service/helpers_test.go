package service

import (
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// june15 is "now" for tests that depend on the future-month rule
var june15 = FixedClock{T: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newTestTemplate(id int32, txType domain.TransactionType, amount string, baseline time.Time, recurrence domain.Recurrence) *domain.TransactionTemplate {
	t := &domain.TransactionTemplate{
		ID:            id,
		Type:          txType,
		Description:   "template",
		Amount:        decimal.RequireFromString(amount),
		BaselineDate:  baseline,
		Recurrence:    recurrence,
		DatePlacement: domain.PlacementFixed,
		Status:        domain.StatusPending,
	}
	if recurrence != domain.RecurrenceOnce {
		origin := baseline
		t.OriginalDate = &origin
	}
	return t
}
