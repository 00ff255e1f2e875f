package service

import (
	"cmp"
	"slices"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Summarize reduces a month's occurrences into totals and a per-category breakdown.
// Only expenses take part in the paid/pending tally. categoryNames resolves
// category ids; ids missing from it are reported as "Unknown".
func Summarize(year, month int, occurrences []*domain.Occurrence, categoryNames map[int32]string) *domain.MonthlySummary {
	summary := &domain.MonthlySummary{
		Year:       year,
		Month:      month,
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Categories: []domain.CategorySummary{},
	}

	byCategory := make(map[int32]decimal.Decimal)

	for _, occ := range occurrences {
		t := occ.Template
		if t.Type == domain.TransactionTypeIncome {
			summary.Income = summary.Income.Add(t.Amount)
			continue
		}

		summary.Expenses = summary.Expenses.Add(t.Amount)
		summary.TotalTransactions++
		if occ.EffectiveStatus.IsSettled() {
			summary.PaidTransactions++
		}

		if t.CategoryID != nil {
			byCategory[*t.CategoryID] = byCategory[*t.CategoryID].Add(t.Amount)
		}
	}

	summary.Remaining = summary.Income.Sub(summary.Expenses)
	summary.PendingTransactions = summary.TotalTransactions - summary.PaidTransactions
	summary.PercentPaid = roundedPercent(decimal.NewFromInt(int64(summary.PaidTransactions)), decimal.NewFromInt(int64(summary.TotalTransactions)))

	for id, amount := range byCategory {
		name, ok := categoryNames[id]
		if !ok {
			name = domain.UnknownCategoryName
		}
		summary.Categories = append(summary.Categories, domain.CategorySummary{
			ID:         id,
			Name:       name,
			Amount:     amount,
			Percentage: roundedPercent(amount, summary.Expenses),
		})
	}

	// Highest amount first; ids break ties so output is stable
	slices.SortFunc(summary.Categories, func(a, b domain.CategorySummary) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return summary
}

// roundedPercent returns round(100 * part / whole), or 0 when whole is zero
func roundedPercent(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(whole).Round(0).IntPart())
}
