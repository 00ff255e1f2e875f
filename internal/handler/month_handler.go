package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// MonthHandler serves the materialized view of a month
type MonthHandler struct {
	ledgerService *service.LedgerService
}

// NewMonthHandler creates a new MonthHandler
func NewMonthHandler(ledgerService *service.LedgerService) *MonthHandler {
	return &MonthHandler{
		ledgerService: ledgerService,
	}
}

// OccurrenceResponse is one template occurrence within a month
type OccurrenceResponse struct {
	ID            int32   `json:"id"`
	Type          string  `json:"type"`
	Description   string  `json:"description"`
	Amount        string  `json:"amount"`
	CategoryID    *int32  `json:"categoryId"`
	Date          string  `json:"date"`
	BaselineDate  string  `json:"baselineDate"`
	OriginalDate  *string `json:"originalDate"`
	Recurrence    string  `json:"recurrence"`
	DatePlacement string  `json:"datePlacement"`
	CustomDay     *int    `json:"customDay"`
	Status        string  `json:"status"`
	IsCleared     bool    `json:"isCleared"`
	Virtual       bool    `json:"virtual"`
	Overridden    bool    `json:"overridden"`
}

// OccurrenceListResponse lists the occurrences of a month, most recent first
type OccurrenceListResponse struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Data  []OccurrenceResponse `json:"data"`
}

// CategorySummaryResponse is the expense total of one category
type CategorySummaryResponse struct {
	ID         int32  `json:"id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	Percentage int    `json:"percentage"`
}

// SummaryResponse represents the monthly summary
type SummaryResponse struct {
	Year                int                       `json:"year"`
	Month               int                       `json:"month"`
	Income              string                    `json:"income"`
	Expenses            string                    `json:"expenses"`
	Remaining           string                    `json:"remaining"`
	TotalTransactions   int                       `json:"totalTransactions"`
	PaidTransactions    int                       `json:"paidTransactions"`
	PendingTransactions int                       `json:"pendingTransactions"`
	PercentPaid         int                       `json:"percentPaid"`
	Categories          []CategorySummaryResponse `json:"categories"`
}

// GetOccurrences handles GET /api/v1/months/:year/:month/occurrences
func (h *MonthHandler) GetOccurrences(c echo.Context) error {
	year, month, fieldErr := parseYearMonth(c)
	if fieldErr != nil {
		return invalidParam(c, fieldErr)
	}
	return h.occurrences(c, year, month)
}

// GetCurrentOccurrences handles GET /api/v1/months/current/occurrences
func (h *MonthHandler) GetCurrentOccurrences(c echo.Context) error {
	year, month := h.ledgerService.CurrentMonth()
	return h.occurrences(c, year, month)
}

// GetSummary handles GET /api/v1/months/:year/:month/summary
func (h *MonthHandler) GetSummary(c echo.Context) error {
	year, month, fieldErr := parseYearMonth(c)
	if fieldErr != nil {
		return invalidParam(c, fieldErr)
	}
	return h.summary(c, year, month)
}

// GetCurrentSummary handles GET /api/v1/months/current/summary
func (h *MonthHandler) GetCurrentSummary(c echo.Context) error {
	year, month := h.ledgerService.CurrentMonth()
	return h.summary(c, year, month)
}

func (h *MonthHandler) occurrences(c echo.Context, year, month int) error {
	occurrences, err := h.ledgerService.OccurrencesForMonth(c.Request().Context(), year, month)
	if err != nil {
		return handleServiceError(c, err, "list occurrences")
	}

	data := make([]OccurrenceResponse, len(occurrences))
	for i, o := range occurrences {
		data[i] = toOccurrenceResponse(o)
	}

	return c.JSON(http.StatusOK, OccurrenceListResponse{Year: year, Month: month, Data: data})
}

func (h *MonthHandler) summary(c echo.Context, year, month int) error {
	summary, err := h.ledgerService.SummarizeMonth(c.Request().Context(), year, month)
	if err != nil {
		return handleServiceError(c, err, "summarize month")
	}

	return c.JSON(http.StatusOK, toSummaryResponse(summary))
}

func toOccurrenceResponse(o *domain.Occurrence) OccurrenceResponse {
	t := o.Template
	resp := OccurrenceResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        formatAmount(t.Amount),
		CategoryID:    t.CategoryID,
		Date:          formatDate(o.OccurrenceDate),
		BaselineDate:  formatDate(t.BaselineDate),
		Recurrence:    string(t.Recurrence),
		DatePlacement: string(t.DatePlacement),
		CustomDay:     t.CustomDay,
		Status:        string(o.EffectiveStatus),
		IsCleared:     o.EffectiveCleared,
		Virtual:       o.Virtual,
		Overridden:    o.Override != nil,
	}
	if t.OriginalDate != nil {
		originalDate := formatDate(*t.OriginalDate)
		resp.OriginalDate = &originalDate
	}
	return resp
}

func toSummaryResponse(s *domain.MonthlySummary) SummaryResponse {
	categories := make([]CategorySummaryResponse, len(s.Categories))
	for i, c := range s.Categories {
		categories[i] = CategorySummaryResponse{
			ID:         c.ID,
			Name:       c.Name,
			Amount:     formatAmount(c.Amount),
			Percentage: c.Percentage,
		}
	}

	return SummaryResponse{
		Year:                s.Year,
		Month:               s.Month,
		Income:              formatAmount(s.Income),
		Expenses:            formatAmount(s.Expenses),
		Remaining:           formatAmount(s.Remaining),
		TotalTransactions:   s.TotalTransactions,
		PaidTransactions:    s.PaidTransactions,
		PendingTransactions: s.PendingTransactions,
		PercentPaid:         s.PercentPaid,
		Categories:          categories,
	}
}
