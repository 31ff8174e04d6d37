package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithEnvFile(""), WithoutSystemEnv())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, CatalogSourceSeed, cfg.Catalog.Source)
	assert.Equal(t, "default", cfg.Trip.DestinationFallback)
	assert.Equal(t, 4, cfg.Trip.DefaultDays)
	assert.Equal(t, 30, cfg.Trip.MaxDays)
	assert.Equal(t, 30*time.Minute, cfg.Trip.DraftTTL)
	assert.Nil(t, cfg.Server.CORSAllowedOrigins)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PORT=9000\nDEFAULT_DESTINATION=Rome\nLOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{
			"PORT":                 "9100",
			"CORS_ALLOWED_ORIGINS": "http://localhost:3000, https://app.example.com,",
			"DRAFT_TTL":            "5m",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.Equal(t, "Rome", cfg.Trip.DefaultDestination)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Trip.DraftTTL)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	_, err := Load(WithEnvFile(filepath.Join(t.TempDir(), "absent.env")), WithoutSystemEnv())
	require.NoError(t, err)
}

func TestLoadValidation(t *testing.T) {
	_, err := Load(WithEnvFile(""), WithoutSystemEnv(), WithEnvMap(map[string]string{
		"CATALOG_SOURCE":       "postgres",
		"MAX_TRIP_DAYS":        "0",
		"DRAFT_TTL":            "soon",
		"DESTINATION_FALLBACK": "nearest",
	}))
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.ElementsMatch(t, []string{"POSTGRES_URL", "MAX_TRIP_DAYS", "DRAFT_TTL", "DESTINATION_FALLBACK"}, vErr.Fields())
}

func TestLoadPostgresSource(t *testing.T) {
	cfg, err := Load(WithEnvFile(""), WithoutSystemEnv(), WithEnvMap(map[string]string{
		"CATALOG_SOURCE": "Postgres",
		"POSTGRES_URL":   "postgres://localhost/tripcraft",
	}))
	require.NoError(t, err)
	assert.Equal(t, CatalogSourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, "postgres://localhost/tripcraft", cfg.Catalog.PostgresURL)
}
