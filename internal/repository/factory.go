// Package repository selects and opens the configured store backend.
package repository

import (
	"context"
	"fmt"

	"github.com/dafibh/fortuna/ledger-backend/internal/config"
	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/dafibh/fortuna/ledger-backend/internal/repository/memory"
	"github.com/dafibh/fortuna/ledger-backend/internal/repository/postgres"
	"github.com/dafibh/fortuna/ledger-backend/internal/repository/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store bundles the repositories of one backend
type Store struct {
	Backend    string
	Templates  domain.TemplateRepository
	Statuses   domain.MonthlyStatusRepository
	Categories domain.CategoryRepository

	closeFn func()
}

// Close releases the backend's connections
func (s *Store) Close() {
	if s.closeFn != nil {
		s.closeFn()
	}
}

// Open connects to the backend named by cfg.StoreBackend, migrating it first when
// cfg.MigrateOnStart is set
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return OpenMemory(), nil
	case config.StorePostgres:
		return openPostgres(ctx, cfg)
	case config.StoreSQLite:
		return openSQLite(cfg)
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// OpenMemory returns a fresh in-memory store seeded with the default categories
func OpenMemory() *Store {
	db := memory.NewDB()
	return &Store{
		Backend:    config.StoreMemory,
		Templates:  memory.NewTemplateRepository(db),
		Statuses:   memory.NewMonthlyStatusRepository(db),
		Categories: memory.NewCategoryRepository(db),
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		log.Info().Msg("Database migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info().Msg("Connected to database")

	return &Store{
		Backend:    config.StorePostgres,
		Templates:  postgres.NewTemplateRepository(pool),
		Statuses:   postgres.NewMonthlyStatusRepository(pool),
		Categories: postgres.NewCategoryRepository(pool),
		closeFn:    pool.Close,
	}, nil
}

func openSQLite(cfg *config.Config) (*Store, error) {
	db, err := sqlite.Open(cfg.SQLitePath, cfg.MigrateOnStart)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.SQLitePath).Msg("Opened sqlite database")

	return &Store{
		Backend:    config.StoreSQLite,
		Templates:  sqlite.NewTemplateRepository(db),
		Statuses:   sqlite.NewMonthlyStatusRepository(db),
		Categories: sqlite.NewCategoryRepository(db),
		closeFn:    func() { db.Close() },
	}, nil
}

// Migrate applies pending migrations without opening repositories
func Migrate(cfg *config.Config) error {
	switch cfg.StoreBackend {
	case config.StorePostgres:
		return postgres.RunMigrations(cfg.DatabaseURL)
	case config.StoreSQLite:
		return sqlite.RunMigrations(cfg.SQLitePath)
	}
	return fmt.Errorf("store backend %q has no migrations", cfg.StoreBackend)
}
