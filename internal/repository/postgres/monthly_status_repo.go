package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MonthlyStatusRepository implements domain.MonthlyStatusRepository using PostgreSQL
type MonthlyStatusRepository struct {
	pool *pgxpool.Pool
}

// NewMonthlyStatusRepository creates a new MonthlyStatusRepository
func NewMonthlyStatusRepository(pool *pgxpool.Pool) *MonthlyStatusRepository {
	return &MonthlyStatusRepository{pool: pool}
}

// Get retrieves the override of one template in one month
func (r *MonthlyStatusRepository) Get(ctx context.Context, key domain.OverrideKey) (*domain.MonthlyStatusOverride, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT template_id, year, month, status, is_cleared, updated_at
		FROM monthly_transaction_status
		WHERE template_id = $1 AND year = $2 AND month = $3`,
		key.TemplateID, key.Year, key.Month,
	)
	override, err := scanOverride(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOverrideNotFound
		}
		return nil, err
	}
	return override, nil
}

// ListByMonth retrieves every override of a month
func (r *MonthlyStatusRepository) ListByMonth(ctx context.Context, year, month int) ([]*domain.MonthlyStatusOverride, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT template_id, year, month, status, is_cleared, updated_at
		FROM monthly_transaction_status
		WHERE year = $1 AND month = $2
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

// Upsert creates or overwrites an override in a single statement
func (r *MonthlyStatusRepository) Upsert(ctx context.Context, override *domain.MonthlyStatusOverride) (*domain.MonthlyStatusOverride, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO monthly_transaction_status (template_id, year, month, status, is_cleared, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (template_id, year, month)
		DO UPDATE SET status = EXCLUDED.status, is_cleared = EXCLUDED.is_cleared, updated_at = EXCLUDED.updated_at
		RETURNING template_id, year, month, status, is_cleared, updated_at`,
		override.TemplateID,
		override.Year,
		override.Month,
		string(override.Status),
		override.IsCleared,
		pgtype.Timestamptz{Time: override.UpdatedAt, Valid: true},
	)
	stored, err := scanOverride(row)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return nil, domain.ErrTemplateNotFound
		}
		return nil, err
	}
	return stored, nil
}

func scanOverride(row rowScanner) (*domain.MonthlyStatusOverride, error) {
	var (
		o         domain.MonthlyStatusOverride
		year      int32
		month     int32
		status    string
		updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&o.TemplateID, &year, &month, &status, &o.IsCleared, &updatedAt); err != nil {
		return nil, err
	}
	o.Year = int(year)
	o.Month = int(month)
	o.Status = domain.TransactionStatus(status)
	o.UpdatedAt = updatedAt.Time
	return &o, nil
}
