package domain

import (
	"context"
	"strings"
)

type Category struct {
	ID   int32           `json:"id"`
	Name string          `json:"name"`
	Type TransactionType `json:"type"`
}

// UnknownCategoryName is reported for category ids that no longer resolve
const UnknownCategoryName = "Unknown"

// MaxCategoryNameLength matches the categories.name column
const MaxCategoryNameLength = 100

// CreateCategoryInput is the payload for adding a category
type CreateCategoryInput struct {
	Name string
	Type TransactionType
}

// Validate checks the name and type of a new category
func (in CreateCategoryInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewValidationError("name", "is required")
	}
	if len(in.Name) > MaxCategoryNameLength {
		return NewValidationError("name", "exceeds maximum length")
	}
	if !in.Type.Valid() {
		return NewValidationError("type", "must be expense or income")
	}
	return nil
}

// CategoryRepository is the category lookup table. Categories are added, never edited.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) (*Category, error)
	GetByID(ctx context.Context, id int32) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}

// DefaultCategories is the category set seeded into a fresh store
var DefaultCategories = []Category{
	{Name: "Housing", Type: TransactionTypeExpense},
	{Name: "Utilities", Type: TransactionTypeExpense},
	{Name: "Groceries", Type: TransactionTypeExpense},
	{Name: "Transportation", Type: TransactionTypeExpense},
	{Name: "Health", Type: TransactionTypeExpense},
	{Name: "Insurance", Type: TransactionTypeExpense},
	{Name: "Dining", Type: TransactionTypeExpense},
	{Name: "Entertainment", Type: TransactionTypeExpense},
	{Name: "Shopping", Type: TransactionTypeExpense},
	{Name: "Personal", Type: TransactionTypeExpense},
	{Name: "Education", Type: TransactionTypeExpense},
	{Name: "Travel", Type: TransactionTypeExpense},
	{Name: "Debt", Type: TransactionTypeExpense},
	{Name: "Savings", Type: TransactionTypeExpense},
	{Name: "Gifts", Type: TransactionTypeExpense},
	{Name: "Salary", Type: TransactionTypeIncome},
	{Name: "Investments", Type: TransactionTypeIncome},
	{Name: "Interest", Type: TransactionTypeIncome},
	{Name: "Bonus", Type: TransactionTypeIncome},
	{Name: "Other Income", Type: TransactionTypeIncome},
}
