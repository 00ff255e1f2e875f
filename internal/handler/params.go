package handler

import (
	"strconv"
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// parseID reads a positive int32 path parameter
func parseID(c echo.Context, name string) (int32, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// parseYearMonth reads the :year and :month path parameters. Range checks are left
// to the service so they report the same errors everywhere.
func parseYearMonth(c echo.Context) (year, month int, fieldErr *ValidationError) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, &ValidationError{Field: "year", Message: "Must be a number"}
	}
	month, err = strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, &ValidationError{Field: "month", Message: "Must be a number"}
	}
	return year, month, nil
}

func invalidParam(c echo.Context, fieldErr *ValidationError) error {
	return NewValidationError(c, "Invalid "+fieldErr.Field, []ValidationError{*fieldErr})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(util.DateLayout, value)
}

func formatDate(t time.Time) string {
	return t.Format(util.DateLayout)
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
