package service

import (
	"time"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/util"
)

// periodRule decides, from the non-negative month distance to the origin, whether a
// recurrence kind fires
type periodRule func(monthDiff int) bool

func everyMonth(int) bool { return true }

func everyNMonths(n int) periodRule {
	return func(monthDiff int) bool { return monthDiff%n == 0 }
}

// periodRules maps recurrence kinds to their month filters.
// Weekly and biweekly are approximated as one occurrence per month.
var periodRules = map[domain.Recurrence]periodRule{
	domain.RecurrenceWeekly:    everyMonth,
	domain.RecurrenceBiweekly:  everyMonth,
	domain.RecurrenceMonthly:   everyMonth,
	domain.RecurrenceQuarterly: everyNMonths(3),
	domain.RecurrenceYearly:    everyNMonths(12),
}

// Fires reports whether the template produces an occurrence in (year, month).
// A once template fires only in the month of its baseline date; recurring templates
// fire from their origin month onward, origin month included.
func Fires(t *domain.TransactionTemplate, year, month int) bool {
	if t.Recurrence == domain.RecurrenceOnce {
		return util.InMonth(t.BaselineDate, year, month)
	}

	rule, ok := periodRules[t.Recurrence]
	if !ok {
		return false
	}

	monthDiff := util.MonthDiff(t.Origin(), year, month)
	if monthDiff < 0 {
		return false
	}
	return rule(monthDiff)
}

// ResolveDate computes the calendar date of the template's occurrence in (year, month).
// It is total: every validated template yields a date for every month.
func ResolveDate(t *domain.TransactionTemplate, year, month int) time.Time {
	if t.Recurrence != domain.RecurrenceOnce {
		switch t.DatePlacement {
		case domain.PlacementFirstOfMonth:
			return util.FirstOfMonth(year, month)
		case domain.PlacementLastOfMonth:
			return util.LastOfMonth(year, month)
		case domain.PlacementCustomDay:
			if t.CustomDay != nil {
				return util.CalculateActualDate(year, month, *t.CustomDay)
			}
		}
	}

	return util.CalculateActualDate(year, month, t.Origin().Day())
}
