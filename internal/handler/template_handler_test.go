package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTemplate_Success(t *testing.T) {
	env := newTestEnv()

	body := `{"type":"expense","description":"Rent","amount":"1200.50","categoryId":1,"date":"2024-06-01","recurrence":"monthly"}`
	c, rec := newContext(http.MethodPost, "/api/v1/templates", body)

	err := env.templates.CreateTemplate(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response TemplateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, int32(1), response.ID)
	assert.Equal(t, "expense", response.Type)
	assert.Equal(t, "1200.50", response.Amount)
	assert.Equal(t, "2024-06-01", response.Date)
	require.NotNil(t, response.OriginalDate)
	assert.Equal(t, "2024-06-01", *response.OriginalDate)
	assert.Equal(t, "monthly", response.Recurrence)
	assert.Equal(t, "fixed", response.DatePlacement)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, []string{"template.created"}, env.publisher.Types())
}

func TestCreateTemplate_InvalidAmount(t *testing.T) {
	env := newTestEnv()

	body := `{"type":"expense","description":"Rent","amount":"abc","date":"2024-06-01"}`
	c, rec := newContext(http.MethodPost, "/api/v1/templates", body)

	err := env.templates.CreateTemplate(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "amount", problem.Errors[0].Field)
	assert.Empty(t, env.templateRepo.Templates)
}

func TestCreateTemplate_AmountBeyondColumnPrecision(t *testing.T) {
	env := newTestEnv()

	body := `{"type":"expense","description":"Rent","amount":"100000000.00","date":"2024-06-01"}`
	c, rec := newContext(http.MethodPost, "/api/v1/templates", body)

	require.NoError(t, env.templates.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "amount", problem.Errors[0].Field)
	assert.Empty(t, env.templateRepo.Templates)
}

func TestCreateTemplate_InvalidDate(t *testing.T) {
	env := newTestEnv()

	body := `{"type":"expense","description":"Rent","amount":"10","date":"06/01/2024"}`
	c, rec := newContext(http.MethodPost, "/api/v1/templates", body)

	require.NoError(t, env.templates.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTemplate_ValidationFailure(t *testing.T) {
	env := newTestEnv()

	body := `{"type":"expense","description":"","amount":"10","date":"2024-06-01"}`
	c, rec := newContext(http.MethodPost, "/api/v1/templates", body)

	require.NoError(t, env.templates.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeValidation, problem.Type)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "description", problem.Errors[0].Field)
	assert.Empty(t, env.publisher.Events)
}

func TestCreateTemplate_UnknownCategory(t *testing.T) {
	env := newTestEnv()

	body := `{"type":"expense","description":"Rent","amount":"10","categoryId":99,"date":"2024-06-01"}`
	c, rec := newContext(http.MethodPost, "/api/v1/templates", body)

	require.NoError(t, env.templates.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTemplates(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeExpense, "10", date(2024, 6, 1), domain.RecurrenceOnce, domain.StatusPending)
	env.addTemplate(2, domain.TransactionTypeIncome, "3000", date(2024, 6, 25), domain.RecurrenceMonthly, domain.StatusPaid)

	c, rec := newContext(http.MethodGet, "/api/v1/templates", "")

	require.NoError(t, env.templates.ListTemplates(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response TemplateListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response.Data, 2)
	assert.Equal(t, int32(1), response.Data[0].ID)
	assert.Equal(t, "3000.00", response.Data[1].Amount)
}

func TestGetTemplate_NotFound(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodGet, "/api/v1/templates/42", "", "id", "42")

	require.NoError(t, env.templates.GetTemplate(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTemplate_InvalidID(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodGet, "/api/v1/templates/abc", "", "id", "abc")

	require.NoError(t, env.templates.GetTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTemplate_PartialUpdate(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeExpense, "10", date(2024, 6, 1), domain.RecurrenceOnce, domain.StatusPending)

	body := `{"description":"Groceries","amount":"45.99"}`
	c, rec := newContext(http.MethodPatch, "/api/v1/templates/1", body, "id", "1")

	require.NoError(t, env.templates.UpdateTemplate(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response TemplateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "Groceries", response.Description)
	assert.Equal(t, "45.99", response.Amount)
	assert.Equal(t, "2024-06-01", response.Date)
	assert.Equal(t, "pending", response.Status)
	assert.Equal(t, []string{"template.updated"}, env.publisher.Types())
}

func TestUpdateTemplate_NotFound(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodPatch, "/api/v1/templates/7", `{"description":"x"}`, "id", "7")

	require.NoError(t, env.templates.UpdateTemplate(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTemplate_CascadesOverrides(t *testing.T) {
	env := newTestEnv()
	env.addTemplate(1, domain.TransactionTypeExpense, "10", date(2024, 1, 5), domain.RecurrenceMonthly, domain.StatusPending)
	env.statusRepo.AddOverride(&domain.MonthlyStatusOverride{TemplateID: 1, Year: 2024, Month: 3, Status: domain.StatusPaid})

	c, rec := newContext(http.MethodDelete, "/api/v1/templates/1", "", "id", "1")

	require.NoError(t, env.templates.DeleteTemplate(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, env.templateRepo.Templates)
	assert.Empty(t, env.statusRepo.Overrides)
	assert.Equal(t, []string{"template.deleted"}, env.publisher.Types())
}

func TestDeleteTemplate_NotFound(t *testing.T) {
	env := newTestEnv()

	c, rec := newContext(http.MethodDelete, "/api/v1/templates/3", "", "id", "3")

	require.NoError(t, env.templates.DeleteTemplate(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
