package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

type TransactionStatus string

const (
	StatusPending TransactionStatus = "pending"
	StatusPaid    TransactionStatus = "paid"
	StatusCleared TransactionStatus = "cleared"
)

// Recurrence is how often a template produces an occurrence
type Recurrence string

const (
	RecurrenceOnce      Recurrence = "once"
	RecurrenceWeekly    Recurrence = "weekly"
	RecurrenceBiweekly  Recurrence = "biweekly"
	RecurrenceMonthly   Recurrence = "monthly"
	RecurrenceQuarterly Recurrence = "quarterly"
	RecurrenceYearly    Recurrence = "yearly"
)

// DatePlacement decides which day of the target month a recurring occurrence lands on
type DatePlacement string

const (
	PlacementFixed        DatePlacement = "fixed"
	PlacementFirstOfMonth DatePlacement = "first_of_month"
	PlacementLastOfMonth  DatePlacement = "last_of_month"
	PlacementCustomDay    DatePlacement = "custom_day"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

func (s TransactionStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid || s == StatusCleared
}

// IsSettled reports whether the status counts as paid in summaries
func (s TransactionStatus) IsSettled() bool {
	return s == StatusPaid || s == StatusCleared
}

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceOnce, RecurrenceWeekly, RecurrenceBiweekly, RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

func (p DatePlacement) Valid() bool {
	switch p {
	case PlacementFixed, PlacementFirstOfMonth, PlacementLastOfMonth, PlacementCustomDay:
		return true
	}
	return false
}

// TransactionTemplate is the persisted definition of a one-time or recurring transaction
type TransactionTemplate struct {
	ID            int32             `json:"id"`
	Type          TransactionType   `json:"type"`
	Description   string            `json:"description"`
	Amount        decimal.Decimal   `json:"amount"`
	CategoryID    *int32            `json:"categoryId,omitempty"`
	BaselineDate  time.Time         `json:"date"`
	OriginalDate  *time.Time        `json:"originalDate,omitempty"`
	Recurrence    Recurrence        `json:"recurrence"`
	DatePlacement DatePlacement     `json:"datePlacement"`
	CustomDay     *int              `json:"customDay,omitempty"`
	Status        TransactionStatus `json:"status"`
	IsCleared     bool              `json:"isCleared"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// IsRecurring returns true for every recurrence other than once
func (t *TransactionTemplate) IsRecurring() bool {
	return t.Recurrence != RecurrenceOnce
}

// Origin returns the anchor date used for recurrence projection
func (t *TransactionTemplate) Origin() time.Time {
	if t.OriginalDate != nil {
		return *t.OriginalDate
	}
	return t.BaselineDate
}

// Validate checks field-level invariants of a template
func (t *TransactionTemplate) Validate() error {
	if !t.Type.Valid() {
		return NewValidationError("type", "must be expense or income")
	}
	if t.Description == "" {
		return NewValidationError("description", "is required")
	}
	if len(t.Description) > MaxDescriptionLength {
		return NewValidationError("description", "exceeds maximum length")
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	if t.BaselineDate.IsZero() {
		return NewValidationError("date", "is required")
	}
	if !t.Recurrence.Valid() {
		return NewValidationError("recurrence", "must be one of once, weekly, biweekly, monthly, quarterly, yearly")
	}
	if !t.DatePlacement.Valid() {
		return NewValidationError("datePlacement", "must be one of fixed, first_of_month, last_of_month, custom_day")
	}
	if t.DatePlacement != PlacementFixed && t.Recurrence == RecurrenceOnce {
		return NewValidationError("datePlacement", "relative placement requires a recurring template")
	}
	if t.DatePlacement == PlacementCustomDay {
		if t.CustomDay == nil {
			return NewValidationError("customDay", "is required for custom_day placement")
		}
		if err := validateCustomDay(*t.CustomDay); err != nil {
			return err
		}
	}
	if !t.Status.Valid() {
		return NewValidationError("status", "must be one of pending, paid, cleared")
	}
	return nil
}

// MaxAmount is the largest amount a NUMERIC(10,2) column holds
var MaxAmount = decimal.RequireFromString("99999999.99")

// ValidateAmount checks that an amount is positive, fits the stored precision and
// has at most two decimal places
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return NewValidationError("amount", "must be greater than zero")
	}
	if amount.GreaterThan(MaxAmount) {
		return NewValidationError("amount", "must not exceed 99999999.99")
	}
	if !amount.Equal(amount.Round(AmountScale)) {
		return NewValidationError("amount", "must have at most 2 decimal places")
	}
	return nil
}

// CreateTemplateInput holds the user-supplied fields of a new template.
// Empty enum fields take the defaults expense, pending, once and fixed.
type CreateTemplateInput struct {
	Type          TransactionType
	Description   string
	Amount        decimal.Decimal
	CategoryID    *int32
	Date          time.Time
	OriginalDate  *time.Time
	Recurrence    Recurrence
	DatePlacement DatePlacement
	CustomDay     *int
	Status        TransactionStatus
	IsCleared     bool
}

// UpdateTemplateInput is a partial update; nil fields are left untouched
type UpdateTemplateInput struct {
	Type          *TransactionType
	Description   *string
	Amount        *decimal.Decimal
	CategoryID    *int32
	ClearCategory bool
	Date          *time.Time
	OriginalDate  *time.Time
	Recurrence    *Recurrence
	DatePlacement *DatePlacement
	CustomDay     *int
	Status        *TransactionStatus
	IsCleared     *bool
}

// Validate checks the fields present in the patch on their own. Rules that span
// fields are checked on the merged template.
func (in UpdateTemplateInput) Validate() error {
	if in.Type != nil && !in.Type.Valid() {
		return NewValidationError("type", "must be expense or income")
	}
	if in.Description != nil {
		if *in.Description == "" {
			return NewValidationError("description", "is required")
		}
		if len(*in.Description) > MaxDescriptionLength {
			return NewValidationError("description", "exceeds maximum length")
		}
	}
	if in.Amount != nil {
		if err := ValidateAmount(*in.Amount); err != nil {
			return err
		}
	}
	if in.Recurrence != nil && !in.Recurrence.Valid() {
		return NewValidationError("recurrence", "must be one of once, weekly, biweekly, monthly, quarterly, yearly")
	}
	if in.DatePlacement != nil && !in.DatePlacement.Valid() {
		return NewValidationError("datePlacement", "must be one of fixed, first_of_month, last_of_month, custom_day")
	}
	if in.CustomDay != nil {
		if err := validateCustomDay(*in.CustomDay); err != nil {
			return err
		}
	}
	if in.Status != nil && !in.Status.Valid() {
		return NewValidationError("status", "must be one of pending, paid, cleared")
	}
	return nil
}

func validateCustomDay(day int) error {
	if day < 1 || day > 31 {
		return NewValidationError("customDay", "must be between 1 and 31")
	}
	return nil
}

// TemplateRepository is CRUD over transaction templates. Delete cascades monthly overrides.
type TemplateRepository interface {
	Create(ctx context.Context, template *TransactionTemplate) (*TransactionTemplate, error)
	GetByID(ctx context.Context, id int32) (*TransactionTemplate, error)
	List(ctx context.Context) ([]*TransactionTemplate, error)
	Update(ctx context.Context, template *TransactionTemplate) (*TransactionTemplate, error)
	Delete(ctx context.Context, id int32) error
}

// TemplateService defines the template CRUD operations exposed to handlers
type TemplateService interface {
	CreateTemplate(ctx context.Context, input CreateTemplateInput) (*TransactionTemplate, error)
	UpdateTemplate(ctx context.Context, id int32, input UpdateTemplateInput) (*TransactionTemplate, error)
	DeleteTemplate(ctx context.Context, id int32) error
	GetTemplate(ctx context.Context, id int32) (*TransactionTemplate, error)
	ListTemplates(ctx context.Context) ([]*TransactionTemplate, error)
}
