package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"STORE_BACKEND", "DATABASE_URL", "SQLITE_PATH", "MIGRATE_ON_START", "PORT",
		"CORS_ORIGINS", "ENV", "RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, "data/ledger.db", cfg.SQLitePath)
	assert.True(t, cfg.MigrateOnStart)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 120, cfg.RateLimit.RequestsPerMinute)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Postgres(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/ledger")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.StoreBackend)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"postgres without url", map[string]string{"STORE_BACKEND": "postgres"}, "DATABASE_URL"},
		{"unknown backend", map[string]string{"STORE_BACKEND": "mongo"}, "STORE_BACKEND"},
		{"bad rate", map[string]string{"RATE_LIMIT_PER_MINUTE": "fast"}, "RATE_LIMIT_PER_MINUTE"},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "RATE_LIMIT_BURST"},
		{"bad bool", map[string]string{"MIGRATE_ON_START": "maybe"}, "MIGRATE_ON_START"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
