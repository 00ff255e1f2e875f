package handler

import (
	"net/http/httptest"
	"strings"
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/service"
	"github.com/dafibh/fortuna/ledger-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// june15 is "now" for every handler test
var june15 = service.FixedClock{T: time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)}

type testEnv struct {
	templateRepo *testutil.MockTemplateRepository
	statusRepo   *testutil.MockMonthlyStatusRepository
	categoryRepo *testutil.MockCategoryRepository
	publisher    *testutil.RecordingPublisher

	templates  *TemplateHandler
	months     *MonthHandler
	statuses   *StatusHandler
	categories *CategoryHandler
}

func newTestEnv() *testEnv {
	templateRepo := testutil.NewMockTemplateRepository()
	statusRepo := testutil.NewMockMonthlyStatusRepository()
	templateRepo.Overrides = statusRepo
	statusRepo.Templates = templateRepo

	categoryRepo := testutil.NewMockCategoryRepository()
	categoryRepo.AddCategory(&domain.Category{ID: 1, Name: "Housing", Type: domain.TransactionTypeExpense})
	categoryRepo.AddCategory(&domain.Category{ID: 2, Name: "Groceries", Type: domain.TransactionTypeExpense})
	categoryRepo.AddCategory(&domain.Category{ID: 3, Name: "Salary", Type: domain.TransactionTypeIncome})

	publisher := &testutil.RecordingPublisher{}

	templateService := service.NewTemplateService(templateRepo, categoryRepo, june15)
	templateService.SetEventPublisher(publisher)
	ledgerService := service.NewLedgerService(templateRepo, statusRepo, categoryRepo, june15)
	ledgerService.SetEventPublisher(publisher)

	return &testEnv{
		templateRepo: templateRepo,
		statusRepo:   statusRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		templates:    NewTemplateHandler(templateService),
		months:       NewMonthHandler(ledgerService),
		statuses:     NewStatusHandler(ledgerService),
		categories:   NewCategoryHandler(service.NewCategoryService(categoryRepo)),
	}
}

func (env *testEnv) addTemplate(id int32, txType domain.TransactionType, amount string, baseline time.Time, recurrence domain.Recurrence, status domain.TransactionStatus) *domain.TransactionTemplate {
	t := &domain.TransactionTemplate{
		ID:            id,
		Type:          txType,
		Description:   "template",
		Amount:        decimal.RequireFromString(amount),
		BaselineDate:  baseline,
		Recurrence:    recurrence,
		DatePlacement: domain.PlacementFixed,
		Status:        status,
		CreatedAt:     june15.T,
		UpdatedAt:     june15.T,
	}
	if recurrence != domain.RecurrenceOnce {
		origin := baseline
		t.OriginalDate = &origin
	}
	env.templateRepo.AddTemplate(t)
	return t
}

// newContext builds an echo context for method and path; params are name/value pairs
func newContext(method, path, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
