package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-krishi-portal/internal/cacheinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agriportal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
backend:
  principal: farmer-1
  admins: [admin-1, admin-2]
  seed_file: seed.json
cache:
  capacity: 64
  num_shards: 4
  ttl: 90s
  eviction_percentage: 20
offline:
  path: /tmp/offline.db
logging:
  level: debug
  development: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", cfg.Backend.Principal)
	assert.Equal(t, []string{"admin-1", "admin-2"}, cfg.Backend.Admins)
	assert.Equal(t, "seed.json", cfg.Backend.SeedFile)
	assert.Equal(t, 64, cfg.Cache.Capacity)
	assert.Equal(t, 90*time.Second, cfg.Cache.TTL)
	assert.Equal(t, "/tmp/offline.db", cfg.Offline.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AGRI_PRINCIPAL", "from-env")
	t.Setenv("AGRI_ADMINS", " a , b ,,")
	t.Setenv("AGRI_OFFLINE_PATH", "env.db")
	t.Setenv("AGRI_LOG_LEVEL", "warn")
	t.Setenv("AGRI_LOG_DEVELOPMENT", "true")
	t.Setenv("AGRI_CACHE_TTL", "2m")

	cfg, err := Load(writeFile(t, "backend:\n  principal: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Backend.Principal)
	assert.Equal(t, []string{"a", "b"}, cfg.Backend.Admins)
	assert.Equal(t, "env.db", cfg.Offline.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		env       map[string]string
		wantField string
	}{
		{name: "bad cache", body: "cache:\n  capacity: 0\n", wantField: "Capacity"},
		{name: "bad level", body: "logging:\n  level: loud\n", wantField: "Logging.Level"},
		{name: "bad ttl env", env: map[string]string{"AGRI_CACHE_TTL": "soon"}, wantField: "AGRI_CACHE_TTL"},
		{name: "bad bool env", env: map[string]string{"AGRI_LOG_DEVELOPMENT": "maybe"}, wantField: "AGRI_LOG_DEVELOPMENT"},
		{name: "empty admin", body: "backend:\n  admins: [\"\"]\n", wantField: "Backend.Admins"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeFile(t, tt.body))
			require.Error(t, err)

			var cfgErr *ConfigError
			var cacheErr *cacheinfra.ConfigError
			switch {
			case errors.As(err, &cfgErr):
				assert.Equal(t, tt.wantField, cfgErr.Field)
			case errors.As(err, &cacheErr):
				assert.Equal(t, tt.wantField, cacheErr.Field)
			default:
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeFile(t, "cache: [unterminated"))
	assert.ErrorContains(t, err, "failed to parse config")
}
