package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation = "https://fortuna.app/errors/validation"
	ErrorTypeNotFound   = "https://fortuna.app/errors/not-found"
	ErrorTypeInternal   = "https://fortuna.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// handleServiceError maps domain errors to problem responses. Store failures are
// logged and reported without their cause.
func handleServiceError(c echo.Context, err error, operation string) error {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: validationErr.Field, Message: validationErr.Message},
		})
	}
	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		return NewNotFoundError(c, "Transaction template not found")
	case errors.Is(err, domain.ErrOverrideNotFound):
		return NewNotFoundError(c, "No status recorded for this month")
	case errors.Is(err, domain.ErrNotFound):
		return NewNotFoundError(c, "Resource not found")
	case errors.Is(err, domain.ErrInvalidInput):
		return NewValidationError(c, err.Error(), nil)
	}

	log.Error().Err(err).Str("operation", operation).Msg("Failed to " + operation)
	return NewInternalError(c, "Failed to "+operation)
}
