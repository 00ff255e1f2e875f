package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
)

// MonthlyStatusRepository implements domain.MonthlyStatusRepository on SQLite
type MonthlyStatusRepository struct {
	db *sql.DB
}

// NewMonthlyStatusRepository creates a new MonthlyStatusRepository
func NewMonthlyStatusRepository(db *sql.DB) *MonthlyStatusRepository {
	return &MonthlyStatusRepository{db: db}
}

// Get retrieves the override of one template in one month
func (r *MonthlyStatusRepository) Get(ctx context.Context, key domain.OverrideKey) (*domain.MonthlyStatusOverride, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT template_id, year, month, status, is_cleared, updated_at
		FROM monthly_transaction_status
		WHERE template_id = ? AND year = ? AND month = ?`,
		key.TemplateID, key.Year, key.Month,
	)
	override, err := scanOverride(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOverrideNotFound
		}
		return nil, err
	}
	return override, nil
}

// ListByMonth retrieves every override of a month
func (r *MonthlyStatusRepository) ListByMonth(ctx context.Context, year, month int) ([]*domain.MonthlyStatusOverride, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT template_id, year, month, status, is_cleared, updated_at
		FROM monthly_transaction_status
		WHERE year = ? AND month = ?
		ORDER BY template_id`,
		year, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	overrides := make([]*domain.MonthlyStatusOverride, 0)
	for rows.Next() {
		override, err := scanOverride(rows)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}
	return overrides, rows.Err()
}

// Upsert checks the template and writes the override inside one transaction
func (r *MonthlyStatusRepository) Upsert(ctx context.Context, override *domain.MonthlyStatusOverride) (*domain.MonthlyStatusOverride, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM transaction_templates WHERE id = ?`, override.TemplateID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO monthly_transaction_status (template_id, year, month, status, is_cleared, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (template_id, year, month)
		DO UPDATE SET status = excluded.status, is_cleared = excluded.is_cleared, updated_at = excluded.updated_at
		RETURNING template_id, year, month, status, is_cleared, updated_at`,
		override.TemplateID,
		override.Year,
		override.Month,
		string(override.Status),
		override.IsCleared,
		formatTimestamp(override.UpdatedAt),
	)
	stored, err := scanOverride(row)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

func scanOverride(row rowScanner) (*domain.MonthlyStatusOverride, error) {
	var (
		o         domain.MonthlyStatusOverride
		status    string
		updatedAt string
	)
	if err := row.Scan(&o.TemplateID, &o.Year, &o.Month, &status, &o.IsCleared, &updatedAt); err != nil {
		return nil, err
	}
	o.Status = domain.TransactionStatus(status)
	o.UpdatedAt = parseTimestamp(updatedAt)
	return &o, nil
}
