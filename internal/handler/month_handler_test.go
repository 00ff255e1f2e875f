package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOccurrences_RecurringAndLiteral(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeExpense, "100", date(2024, 5, 10), domain.RecurrenceMonthly, domain.StatusPaid)
	env.addTemplate(2, domain.TransactionTypeExpense, "25", date(2024, 6, 20), domain.RecurrenceOnce, domain.StatusPending)

	c, rec := newContext(http.MethodGet, "/api/v1/months/2024/6/occurrences", "", "year", "2024", "month", "6")

	require.NoError(t, env.months.GetOccurrences(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response OccurrenceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2024, response.Year)
	assert.Equal(t, 6, response.Month)
	require.Len(t, response.Data, 2)

	// Most recent first
	assert.Equal(t, int32(2), response.Data[0].ID)
	assert.Equal(t, "2024-06-20", response.Data[0].Date)
	assert.False(t, response.Data[0].Virtual)

	assert.Equal(t, int32(1), response.Data[1].ID)
	assert.Equal(t, "2024-06-10", response.Data[1].Date)
	assert.Equal(t, "2024-05-10", response.Data[1].BaselineDate)
	assert.True(t, response.Data[1].Virtual)
	assert.Equal(t, "paid", response.Data[1].Status)
}

func TestGetOccurrences_FutureMonthIsPending(t *testing.T) {
	env := newTestEnv()
	tmpl := env.addTemplate(1, domain.TransactionTypeExpense, "100", date(2024, 5, 10), domain.RecurrenceMonthly, domain.StatusPaid)
	tmpl.IsCleared = true

	c, rec := newContext(http.MethodGet, "/api/v1/months/2024/8/occurrences", "", "year", "2024", "month", "8")

	require.NoError(t, env.months.GetOccurrences(c))

	var response OccurrenceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "pending", response.Data[0].Status)
	assert.False(t, response.Data[0].IsCleared)
	assert.False(t, response.Data[0].Overridden)
}

func TestGetOccurrences_OverrideWins(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeExpense, "100", date(2024, 5, 10), domain.RecurrenceMonthly, domain.StatusPending)
	env.statusRepo.AddOverride(&domain.MonthlyStatusOverride{TemplateID: 1, Year: 2024, Month: 8, Status: domain.StatusCleared, IsCleared: true})

	c, rec := newContext(http.MethodGet, "/api/v1/months/2024/8/occurrences", "", "year", "2024", "month", "8")

	require.NoError(t, env.months.GetOccurrences(c))

	var response OccurrenceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 1)
	assert.Equal(t, "cleared", response.Data[0].Status)
	assert.True(t, response.Data[0].IsCleared)
	assert.True(t, response.Data[0].Overridden)
}

func TestGetOccurrences_InvalidMonth(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name  string
		year  string
		month string
	}{
		{"non-numeric month", "2024", "june"},
		{"non-numeric year", "twenty", "6"},
		{"month out of range", "2024", "13"},
		{"year out of range", "1800", "6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext(http.MethodGet, "/api/v1/months/x/y/occurrences", "", "year", tt.year, "month", tt.month)

			require.NoError(t, env.months.GetOccurrences(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetOccurrences_StoreFailure(t *testing.T) {
	env := newTestEnv()
	env.templateRepo.ListFn = func() ([]*domain.TransactionTemplate, error) {
		return nil, errors.New("connection reset")
	}

	c, rec := newContext(http.MethodGet, "/api/v1/months/2024/6/occurrences", "", "year", "2024", "month", "6")

	require.NoError(t, env.months.GetOccurrences(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestGetCurrentOccurrences_UsesClock(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeExpense, "10", date(2024, 6, 3), domain.RecurrenceOnce, domain.StatusPending)

	c, rec := newContext(http.MethodGet, "/api/v1/months/current/occurrences", "")

	require.NoError(t, env.months.GetCurrentOccurrences(c))

	var response OccurrenceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 2024, response.Year)
	assert.Equal(t, 6, response.Month)
	assert.Len(t, response.Data, 1)
}

func TestGetSummary(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeIncome, "1000", date(2024, 6, 1), domain.RecurrenceOnce, domain.StatusPending)
	rent := env.addTemplate(2, domain.TransactionTypeExpense, "200", date(2024, 6, 5), domain.RecurrenceOnce, domain.StatusPaid)
	housing := int32(1)
	rent.CategoryID = &housing
	env.addTemplate(3, domain.TransactionTypeExpense, "100", date(2024, 6, 7), domain.RecurrenceOnce, domain.StatusPending)

	c, rec := newContext(http.MethodGet, "/api/v1/months/2024/6/summary", "", "year", "2024", "month", "6")

	require.NoError(t, env.months.GetSummary(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "1000.00", response.Income)
	assert.Equal(t, "300.00", response.Expenses)
	assert.Equal(t, "700.00", response.Remaining)
	assert.Equal(t, 2, response.TotalTransactions)
	assert.Equal(t, 1, response.PaidTransactions)
	assert.Equal(t, 1, response.PendingTransactions)
	assert.Equal(t, 50, response.PercentPaid)
	require.Len(t, response.Categories, 1)
	assert.Equal(t, "Housing", response.Categories[0].Name)
	assert.Equal(t, "200.00", response.Categories[0].Amount)
	assert.Equal(t, 67, response.Categories[0].Percentage)
}

func TestGetCurrentSummary_EmptyMonth(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodGet, "/api/v1/months/current/summary", "")

	require.NoError(t, env.months.GetCurrentSummary(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 6, response.Month)
	assert.Equal(t, "0.00", response.Remaining)
	assert.Equal(t, 0, response.PercentPaid)
	assert.Empty(t, response.Categories)
}
