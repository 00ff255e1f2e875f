package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Occurrence is one computed appearance of a template within a month. Never persisted.
type Occurrence struct {
	Template         *TransactionTemplate
	Year             int
	Month            int
	OccurrenceDate   time.Time
	EffectiveStatus  TransactionStatus
	EffectiveCleared bool
	// Virtual is true for recurrence projections, false for the template's literal month
	Virtual  bool
	Override *MonthlyStatusOverride
}

// MonthlySummary aggregates the occurrences of one month
type MonthlySummary struct {
	Year                int
	Month               int
	Income              decimal.Decimal
	Expenses            decimal.Decimal
	Remaining           decimal.Decimal
	TotalTransactions   int
	PaidTransactions    int
	PendingTransactions int
	PercentPaid         int
	Categories          []CategorySummary
}

// CategorySummary is the expense total of one category within a month
type CategorySummary struct {
	ID         int32
	Name       string
	Amount     decimal.Decimal
	Percentage int
}
