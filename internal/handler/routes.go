package handler

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups every HTTP handler served by the API
type Handlers struct {
	Template  *TemplateHandler
	Month     *MonthHandler
	Status    *StatusHandler
	Category  *CategoryHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes. mutating wraps routes that write to the store.
func RegisterRoutes(e *echo.Echo, h Handlers, mutating echo.MiddlewareFunc) {
	// WebSocket endpoint (outside the API group)
	if h.WebSocket != nil {
		e.GET("/ws", h.WebSocket.HandleWS)
	}

	// API version 1
	api := e.Group("/api/v1")

	// Category routes
	api.GET("/categories", h.Category.ListCategories)
	api.POST("/categories", h.Category.CreateCategory, mutating)

	// Template routes
	templates := api.Group("/templates")
	templates.GET("", h.Template.ListTemplates)
	templates.POST("", h.Template.CreateTemplate, mutating)
	templates.GET("/:id", h.Template.GetTemplate)
	templates.PATCH("/:id", h.Template.UpdateTemplate, mutating)
	templates.DELETE("/:id", h.Template.DeleteTemplate, mutating)

	// Monthly status routes
	templates.GET("/:id/status/:year/:month", h.Status.GetMonthlyStatus)
	templates.PUT("/:id/status/:year/:month", h.Status.SetMonthlyStatus, mutating)

	// Month routes
	months := api.Group("/months")
	months.GET("/current/occurrences", h.Month.GetCurrentOccurrences)
	months.GET("/current/summary", h.Month.GetCurrentSummary)
	months.GET("/:year/:month/occurrences", h.Month.GetOccurrences)
	months.GET("/:year/:month/summary", h.Month.GetSummary)
}
