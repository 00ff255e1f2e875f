package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dafibh/fortuna/ledger-backend/internal/config"
	"github.com/dafibh/fortuna/ledger-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	store, err := Open(context.Background(), &config.Config{StoreBackend: config.StoreMemory})
	require.NoError(t, err)
	defer store.Close()

	categories, err := store.Categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, len(domain.DefaultCategories))
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		StoreBackend:   config.StoreSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "nested", "ledger.db"),
		MigrateOnStart: true,
	}

	store, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, config.StoreSQLite, store.Backend)
	templates, err := store.Templates.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, templates)

	// a second run is a no-op
	assert.NoError(t, Migrate(cfg))
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{StoreBackend: "mongo"})
	assert.Error(t, err)
}

func TestMigrate_MemoryHasNoMigrations(t *testing.T) {
	assert.Error(t, Migrate(&config.Config{StoreBackend: config.StoreMemory}))
}
