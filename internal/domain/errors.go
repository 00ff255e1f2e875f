package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStore            = errors.New("store failure")
	ErrTemplateNotFound = fmt.Errorf("transaction template %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrOverrideNotFound = fmt.Errorf("monthly status %w", ErrNotFound)
)

// Validation constants
const (
	MaxDescriptionLength = 255
	MinYear              = 1900
	MaxYear              = 2200
	AmountScale          = 2
)

// ValidationError reports a rejected field before any store access
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// StoreError wraps a backing store failure. It is surfaced unmodified and never retried.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is reports ErrStore so handlers can match any store failure
func (e *StoreError) Is(target error) bool {
	return target == ErrStore
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStoreError wraps err as a StoreError unless it is nil or already a domain error
func WrapStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrStore) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// ValidateYearMonth checks that year and month address a real calendar month
func ValidateYearMonth(year, month int) error {
	if year < MinYear || year > MaxYear {
		return NewValidationError("year", fmt.Sprintf("must be between %d and %d", MinYear, MaxYear))
	}
	if month < 1 || month > 12 {
		return NewValidationError("month", "must be between 1 and 12")
	}
	return nil
}
