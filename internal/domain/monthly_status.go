package domain

import (
	"context"
	"time"
)

// OverrideKey addresses one template in one calendar month
type OverrideKey struct {
	TemplateID int32
	Year       int
	Month      int
}

// MonthlyStatusOverride is a per-month status exception layered over a template's baseline status
type MonthlyStatusOverride struct {
	TemplateID int32             `json:"transactionId"`
	Year       int               `json:"year"`
	Month      int               `json:"month"`
	Status     TransactionStatus `json:"status"`
	IsCleared  bool              `json:"isCleared"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Key returns the composite key of the override
func (o *MonthlyStatusOverride) Key() OverrideKey {
	return OverrideKey{TemplateID: o.TemplateID, Year: o.Year, Month: o.Month}
}

// SetMonthlyStatusInput is the user action of marking one month of a template
type SetMonthlyStatusInput struct {
	TemplateID int32
	Year       int
	Month      int
	Status     TransactionStatus
	IsCleared  bool
}

// Validate checks the status and the addressed month
func (in SetMonthlyStatusInput) Validate() error {
	if err := ValidateYearMonth(in.Year, in.Month); err != nil {
		return err
	}
	if !in.Status.Valid() {
		return NewValidationError("status", "must be one of pending, paid, cleared")
	}
	return nil
}

// MonthlyStatusRepository stores overrides keyed by (template, year, month)
type MonthlyStatusRepository interface {
	// Get returns ErrOverrideNotFound when no override exists for key
	Get(ctx context.Context, key OverrideKey) (*MonthlyStatusOverride, error)

	// ListByMonth returns every override recorded for the month
	ListByMonth(ctx context.Context, year, month int) ([]*MonthlyStatusOverride, error)

	// Upsert atomically creates or overwrites the override. Returns ErrTemplateNotFound
	// when the template does not exist.
	Upsert(ctx context.Context, override *MonthlyStatusOverride) (*MonthlyStatusOverride, error)
}
