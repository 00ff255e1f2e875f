package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/shopspring/decimal"
)

const templateColumns = `id, type, description, amount, category_id, baseline_date, original_date,
	recurrence, date_placement, custom_day, status, is_cleared, created_at, updated_at`

// TemplateRepository implements domain.TemplateRepository on SQLite
type TemplateRepository struct {
	db *sql.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *sql.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// Create inserts a new template
func (r *TemplateRepository) Create(ctx context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO transaction_templates (type, description, amount, category_id, baseline_date, original_date,
			recurrence, date_placement, custom_day, status, is_cleared, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+templateColumns,
		append(templateArgs(template), formatTimestamp(template.CreatedAt), formatTimestamp(template.UpdatedAt))...,
	)
	return scanTemplate(row)
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id int32) (*domain.TransactionTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM transaction_templates WHERE id = ?`, id)
	template, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// List retrieves all templates ordered by id
func (r *TemplateRepository) List(ctx context.Context) ([]*domain.TransactionTemplate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+templateColumns+` FROM transaction_templates ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := make([]*domain.TransactionTemplate, 0)
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, rows.Err()
}

// Update writes every mutable column of an existing template
func (r *TemplateRepository) Update(ctx context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE transaction_templates
		SET type = ?, description = ?, amount = ?, category_id = ?, baseline_date = ?, original_date = ?,
			recurrence = ?, date_placement = ?, custom_day = ?, status = ?, is_cleared = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+templateColumns,
		append(templateArgs(template), formatTimestamp(template.UpdatedAt), template.ID)...,
	)
	updated, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a template; its overrides cascade
func (r *TemplateRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transaction_templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

// templateArgs returns the bind values of every column between type and is_cleared
func templateArgs(t *domain.TransactionTemplate) []any {
	var categoryID, originalDate, customDay any
	if t.CategoryID != nil {
		categoryID = *t.CategoryID
	}
	if t.OriginalDate != nil {
		originalDate = formatDate(*t.OriginalDate)
	}
	if t.CustomDay != nil {
		customDay = *t.CustomDay
	}
	return []any{
		string(t.Type),
		t.Description,
		t.Amount.StringFixed(domain.AmountScale),
		categoryID,
		formatDate(t.BaselineDate),
		originalDate,
		string(t.Recurrence),
		string(t.DatePlacement),
		customDay,
		string(t.Status),
		t.IsCleared,
	}
}

func scanTemplate(row rowScanner) (*domain.TransactionTemplate, error) {
	var (
		t             domain.TransactionTemplate
		txType        string
		amount        string
		categoryID    sql.NullInt32
		baselineDate  string
		originalDate  sql.NullString
		recurrence    string
		datePlacement string
		customDay     sql.NullInt32
		status        string
		createdAt     string
		updatedAt     string
	)

	err := row.Scan(&t.ID, &txType, &t.Description, &amount, &categoryID, &baselineDate, &originalDate,
		&recurrence, &datePlacement, &customDay, &status, &t.IsCleared, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount of template %d: %w", t.ID, err)
	}
	if t.BaselineDate, err = parseDate(baselineDate); err != nil {
		return nil, fmt.Errorf("parse date of template %d: %w", t.ID, err)
	}
	if originalDate.Valid {
		d, err := parseDate(originalDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse original date of template %d: %w", t.ID, err)
		}
		t.OriginalDate = &d
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.Int32
	}
	if customDay.Valid {
		day := int(customDay.Int32)
		t.CustomDay = &day
	}

	t.Type = domain.TransactionType(txType)
	t.Recurrence = domain.Recurrence(recurrence)
	t.DatePlacement = domain.DatePlacement(datePlacement)
	t.Status = domain.TransactionStatus(status)
	t.CreatedAt = parseTimestamp(createdAt)
	t.UpdatedAt = parseTimestamp(updatedAt)
	return &t, nil
}
