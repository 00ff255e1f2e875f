package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const templateColumns = `id, type, description, amount, category_id, baseline_date, original_date,
	recurrence, date_placement, custom_day, status, is_cleared, created_at, updated_at`

// TemplateRepository implements domain.TemplateRepository using PostgreSQL
type TemplateRepository struct {
	pool *pgxpool.Pool
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

// Create inserts a new template
func (r *TemplateRepository) Create(ctx context.Context, template *domain.TransactionTemplate) (*domain.TransactionTemplate, error) {
	amount, err := decimalToPgNumeric(template.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO transaction_templates (type, description, amount, category_id, baseline_date, original_date,
			recurrence, date_placement, custom_day, status, is_cleared, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+templateColumns,
		string(template.Type),
		template.Description,
		amount,
		toPgInt4(template.CategoryID),
		pgtype.Date{Time: template.BaselineDate, Valid: true},
		toPgDate(template.OriginalDate),
		string(template.Recurrence),
		string(template.DatePlacement),
		toPgInt2(template.CustomDay),
		string(template.Status),
		template.IsCleared,
		pgtype.Timestamptz{Time: template.CreatedAt, Valid: true},
		pgtype.Timestamptz{Time: template.UpdatedAt, Valid: true},
	)
	return scanTemplate(row)
}

// GetByID retrieves a template by ID
func (r *TemplateRepository) GetByID(ctx context.Context, id int32) (*domain.TransactionTemplate, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM transaction_templates WHERE id = $1`, id)
	template, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return template, nil
}

// List retrieves all templates ordered by id
func (r *TemplateRepository) List(ctx context.Context) ([]*domain.TransactionTemplate, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+templateColumns+` FROM transaction_templates ORDER BY id`)
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
	amount, err := decimalToPgNumeric(template.Amount)
	if err != nil {
		return nil, err
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE transaction_templates
		SET type = $2, description = $3, amount = $4, category_id = $5, baseline_date = $6, original_date = $7,
			recurrence = $8, date_placement = $9, custom_day = $10, status = $11, is_cleared = $12, updated_at = $13
		WHERE id = $1
		RETURNING `+templateColumns,
		template.ID,
		string(template.Type),
		template.Description,
		amount,
		toPgInt4(template.CategoryID),
		pgtype.Date{Time: template.BaselineDate, Valid: true},
		toPgDate(template.OriginalDate),
		string(template.Recurrence),
		string(template.DatePlacement),
		toPgInt2(template.CustomDay),
		string(template.Status),
		template.IsCleared,
		pgtype.Timestamptz{Time: template.UpdatedAt, Valid: true},
	)
	updated, err := scanTemplate(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return updated, nil
}

// Delete removes a template. Overrides go with it through ON DELETE CASCADE.
func (r *TemplateRepository) Delete(ctx context.Context, id int32) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transaction_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTemplateNotFound
	}
	return nil
}

func scanTemplate(row rowScanner) (*domain.TransactionTemplate, error) {
	var (
		t             domain.TransactionTemplate
		txType        string
		amount        pgtype.Numeric
		categoryID    pgtype.Int4
		baselineDate  pgtype.Date
		originalDate  pgtype.Date
		recurrence    string
		datePlacement string
		customDay     pgtype.Int2
		status        string
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
	)

	err := row.Scan(&t.ID, &txType, &t.Description, &amount, &categoryID, &baselineDate, &originalDate,
		&recurrence, &datePlacement, &customDay, &status, &t.IsCleared, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.Type = domain.TransactionType(txType)
	t.Amount = pgNumericToDecimal(amount)
	t.BaselineDate = baselineDate.Time
	t.Recurrence = domain.Recurrence(recurrence)
	t.DatePlacement = domain.DatePlacement(datePlacement)
	t.Status = domain.TransactionStatus(status)
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time
	if categoryID.Valid {
		t.CategoryID = &categoryID.Int32
	}
	if originalDate.Valid {
		t.OriginalDate = &originalDate.Time
	}
	if customDay.Valid {
		day := int(customDay.Int16)
		t.CustomDay = &day
	}
	return &t, nil
}
