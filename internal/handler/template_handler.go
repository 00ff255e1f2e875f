package handler

import (
	"net/http"
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// TemplateHandler handles transaction template HTTP requests
type TemplateHandler struct {
	service domain.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(service domain.TemplateService) *TemplateHandler {
	return &TemplateHandler{
		service: service,
	}
}

// CreateTemplateRequest represents the create template request body
type CreateTemplateRequest struct {
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Amount        string  `json:"amount"`
	CategoryID    *int32  `json:"categoryId,omitempty"`
	Date          string  `json:"date"`
	OriginalDate  *string `json:"originalDate,omitempty"`
	Recurrence    string  `json:"recurrence"`
	DatePlacement string  `json:"datePlacement"`
	CustomDay     *int    `json:"customDay,omitempty"`
	Status        string  `json:"status"`
	IsCleared     bool    `json:"isCleared"`
}

// UpdateTemplateRequest represents a partial template update; omitted fields are kept
type UpdateTemplateRequest struct {
	Type          *string `json:"type,omitempty"`
	Description   *string `json:"description,omitempty"`
	Amount        *string `json:"amount,omitempty"`
	CategoryID    *int32  `json:"categoryId,omitempty"`
	ClearCategory bool    `json:"clearCategory,omitempty"`
	Date          *string `json:"date,omitempty"`
	OriginalDate  *string `json:"originalDate,omitempty"`
	Recurrence    *string `json:"recurrence,omitempty"`
	DatePlacement *string `json:"datePlacement,omitempty"`
	CustomDay     *int    `json:"customDay,omitempty"`
	Status        *string `json:"status,omitempty"`
	IsCleared     *bool   `json:"isCleared,omitempty"`
}

// TemplateResponse represents a transaction template in API responses
type TemplateResponse struct {
	ID            int32   `json:"id"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Amount        string  `json:"amount"`
	CategoryID    *int32  `json:"categoryId"`
	Date          string  `json:"date"`
	OriginalDate  *string `json:"originalDate"`
	Recurrence    string  `json:"recurrence"`
	DatePlacement string  `json:"datePlacement"`
	CustomDay     *int    `json:"customDay"`
	Status        string  `json:"status"`
	IsCleared     bool    `json:"isCleared"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// TemplateListResponse represents the list response
type TemplateListResponse struct {
	Data []TemplateResponse `json:"data"`
}

// CreateTemplate handles POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c echo.Context) error {
	var req CreateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return NewValidationError(c, "Invalid date", []ValidationError{
			{Field: "date", Message: "Must be in YYYY-MM-DD format"},
		})
	}

	input := domain.CreateTemplateInput{
		Type:          domain.TransactionType(req.Type),
		Description:   req.Description,
		Amount:        amount,
		CategoryID:    req.CategoryID,
		Date:          date,
		Recurrence:    domain.Recurrence(req.Recurrence),
		DatePlacement: domain.DatePlacement(req.DatePlacement),
		CustomDay:     req.CustomDay,
		Status:        domain.TransactionStatus(req.Status),
		IsCleared:     req.IsCleared,
	}

	if req.OriginalDate != nil && *req.OriginalDate != "" {
		originalDate, err := parseDate(*req.OriginalDate)
		if err != nil {
			return NewValidationError(c, "Invalid original date", []ValidationError{
				{Field: "originalDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.OriginalDate = &originalDate
	}

	template, err := h.service.CreateTemplate(c.Request().Context(), input)
	if err != nil {
		return handleServiceError(c, err, "create template")
	}

	return c.JSON(http.StatusCreated, toTemplateResponse(template))
}

// ListTemplates handles GET /api/v1/templates
func (h *TemplateHandler) ListTemplates(c echo.Context) error {
	templates, err := h.service.ListTemplates(c.Request().Context())
	if err != nil {
		return handleServiceError(c, err, "list templates")
	}

	response := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		response[i] = toTemplateResponse(t)
	}

	return c.JSON(http.StatusOK, TemplateListResponse{Data: response})
}

// GetTemplate handles GET /api/v1/templates/:id
func (h *TemplateHandler) GetTemplate(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid template ID", nil)
	}

	template, err := h.service.GetTemplate(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get template")
	}

	return c.JSON(http.StatusOK, toTemplateResponse(template))
}

// UpdateTemplate handles PATCH /api/v1/templates/:id
func (h *TemplateHandler) UpdateTemplate(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid template ID", nil)
	}

	var req UpdateTemplateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	input := domain.UpdateTemplateInput{
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		CustomDay:     req.CustomDay,
		IsCleared:     req.IsCleared,
	}
	if req.Type != nil {
		v := domain.TransactionType(*req.Type)
		input.Type = &v
	}
	if req.Recurrence != nil {
		v := domain.Recurrence(*req.Recurrence)
		input.Recurrence = &v
	}
	if req.DatePlacement != nil {
		v := domain.DatePlacement(*req.DatePlacement)
		input.DatePlacement = &v
	}
	if req.Status != nil {
		v := domain.TransactionStatus(*req.Status)
		input.Status = &v
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		input.Amount = &amount
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.Date = &date
	}
	if req.OriginalDate != nil {
		originalDate, err := parseDate(*req.OriginalDate)
		if err != nil {
			return NewValidationError(c, "Invalid original date", []ValidationError{
				{Field: "originalDate", Message: "Must be in YYYY-MM-DD format"},
			})
		}
		input.OriginalDate = &originalDate
	}

	template, err := h.service.UpdateTemplate(c.Request().Context(), id, input)
	if err != nil {
		return handleServiceError(c, err, "update template")
	}

	return c.JSON(http.StatusOK, toTemplateResponse(template))
}

// DeleteTemplate handles DELETE /api/v1/templates/:id
func (h *TemplateHandler) DeleteTemplate(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid template ID", nil)
	}

	if err := h.service.DeleteTemplate(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "delete template")
	}

	return c.NoContent(http.StatusNoContent)
}

// toTemplateResponse converts domain.TransactionTemplate to TemplateResponse
func toTemplateResponse(t *domain.TransactionTemplate) TemplateResponse {
	resp := TemplateResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        formatAmount(t.Amount),
		CategoryID:    t.CategoryID,
		Date:          formatDate(t.BaselineDate),
		Recurrence:    string(t.Recurrence),
		DatePlacement: string(t.DatePlacement),
		CustomDay:     t.CustomDay,
		Status:        string(t.Status),
		IsCleared:     t.IsCleared,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.OriginalDate != nil {
		originalDate := formatDate(*t.OriginalDate)
		resp.OriginalDate = &originalDate
	}
	return resp
}
