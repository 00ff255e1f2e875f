package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// CategoryHandler serves the category lookup table
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryListResponse represents the list response
type CategoryListResponse struct {
	Data []*domain.Category `json:"data"`
}

// CreateCategoryRequest represents the request body for creating a category
type CreateCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	category, err := h.categoryService.CreateCategory(c.Request().Context(), domain.CreateCategoryInput{
		Name: req.Name,
		Type: domain.TransactionType(req.Type),
	})
	if err != nil {
		return handleServiceError(c, err, "create category")
	}

	return c.JSON(http.StatusCreated, category)
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	var categoryType *domain.TransactionType
	if raw := c.QueryParam("type"); raw != "" {
		t := domain.TransactionType(raw)
		categoryType = &t
	}

	categories, err := h.categoryService.ListCategories(c.Request().Context(), categoryType)
	if err != nil {
		return handleServiceError(c, err, "list categories")
	}

	return c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}
