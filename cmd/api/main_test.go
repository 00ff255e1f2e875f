package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/ledger-backend/internal/config"
	"github.com/dafibh/fortuna/ledger-backend/internal/handler"
	"github.com/dafibh/fortuna/ledger-backend/internal/middleware"
	"github.com/dafibh/fortuna/ledger-backend/internal/repository"
	"github.com/dafibh/fortuna/ledger-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, burst int) *echo.Echo {
	t.Helper()

	cfg := &config.Config{
		StoreBackend: config.StoreMemory,
		Port:         "0",
		CORSOrigins:  []string{"http://localhost:3000"},
		RateLimit:    config.RateLimitConfig{RequestsPerMinute: 60, Burst: burst},
	}

	store := repository.OpenMemory()
	clock := service.SystemClock{}
	ledgerService := service.NewLedgerService(store.Templates, store.Statuses, store.Categories, clock)

	rateLimiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
	t.Cleanup(rateLimiter.Stop)

	e := newServer(cfg)
	handler.RegisterRoutes(e, handler.Handlers{
		Template: handler.NewTemplateHandler(service.NewTemplateService(store.Templates, store.Categories, clock)),
		Month:    handler.NewMonthHandler(ledgerService),
		Status:   handler.NewStatusHandler(ledgerService),
		Category: handler.NewCategoryHandler(service.NewCategoryService(store.Categories)),
	}, middleware.RateLimitMiddleware(rateLimiter))
	return e
}

func TestServer_Health(t *testing.T) {
	e := newTestServer(t, 5)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestServer_TemplateLifecycle(t *testing.T) {
	e := newTestServer(t, 10)

	body := `{"type":"expense","description":"Gym","amount":"30","date":"2024-01-15","recurrence":"monthly"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPut, "/api/v1/templates/1/status/2024/3", strings.NewReader(`{"status":"paid"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/months/2024/3/occurrences", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var occurrences handler.OccurrenceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &occurrences))
	require.Len(t, occurrences.Data, 1)
	assert.Equal(t, "2024-03-15", occurrences.Data[0].Date)
	assert.Equal(t, "paid", occurrences.Data[0].Status)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/months/2024/3/summary", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary handler.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, "30.00", summary.Expenses)
	assert.Equal(t, 100, summary.PercentPaid)
}

func TestServer_RateLimitsMutations(t *testing.T) {
	e := newTestServer(t, 1)

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/templates", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	// Reads are not limited
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
