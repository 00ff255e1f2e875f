package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// StatusHandler reads and writes per-month status overrides
type StatusHandler struct {
	ledgerService *service.LedgerService
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(ledgerService *service.LedgerService) *StatusHandler {
	return &StatusHandler{
		ledgerService: ledgerService,
	}
}

// SetMonthlyStatusRequest represents the body of a status update
type SetMonthlyStatusRequest struct {
	Status    string `json:"status"`
	IsCleared bool   `json:"isCleared"`
}

// MonthlyStatusResponse represents an override in API responses
type MonthlyStatusResponse struct {
	TransactionID int32  `json:"transactionId"`
	Year          int    `json:"year"`
	Month         int    `json:"month"`
	Status        string `json:"status"`
	IsCleared     bool   `json:"isCleared"`
	UpdatedAt     string `json:"updatedAt"`
}

// GetMonthlyStatus handles GET /api/v1/templates/:id/status/:year/:month
func (h *StatusHandler) GetMonthlyStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid template ID", nil)
	}
	year, month, fieldErr := parseYearMonth(c)
	if fieldErr != nil {
		return invalidParam(c, fieldErr)
	}

	override, err := h.ledgerService.GetMonthlyStatus(c.Request().Context(), id, year, month)
	if err != nil {
		return handleServiceError(c, err, "get monthly status")
	}

	return c.JSON(http.StatusOK, toMonthlyStatusResponse(override))
}

// SetMonthlyStatus handles PUT /api/v1/templates/:id/status/:year/:month
func (h *StatusHandler) SetMonthlyStatus(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid template ID", nil)
	}
	year, month, fieldErr := parseYearMonth(c)
	if fieldErr != nil {
		return invalidParam(c, fieldErr)
	}

	var req SetMonthlyStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	override, err := h.ledgerService.SetMonthlyStatus(c.Request().Context(), domain.SetMonthlyStatusInput{
		TemplateID: id,
		Year:       year,
		Month:      month,
		Status:     domain.TransactionStatus(req.Status),
		IsCleared:  req.IsCleared,
	})
	if err != nil {
		return handleServiceError(c, err, "set monthly status")
	}

	return c.JSON(http.StatusOK, toMonthlyStatusResponse(override))
}

func toMonthlyStatusResponse(o *domain.MonthlyStatusOverride) MonthlyStatusResponse {
	return MonthlyStatusResponse{
		TransactionID: o.TemplateID,
		Year:          o.Year,
		Month:         o.Month,
		Status:        string(o.Status),
		IsCleared:     o.IsCleared,
		UpdatedAt:     o.UpdatedAt.Format(time.RFC3339),
	}
}
