package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NUTRI_JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:4200", cfg.Server.CORSOrigin)
	assert.Equal(t, BackendORM, cfg.Database.Backend)
	assert.Equal(t, DialectSQLite, cfg.Database.Dialect)
	assert.Equal(t, TenancyMulti, cfg.Tenancy.Mode)
	assert.True(t, cfg.Patients.SoftDelete)
	assert.Equal(t, BMIApplication, cfg.Anthropometry.BMI)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: 8080
database:
  backend: sql
  host: db.internal
  name: clinic
tenancy:
  mode: single
patients:
  soft_delete: false
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, BackendSQL, cfg.Database.Backend)
	assert.Equal(t, TenancySingle, cfg.Tenancy.Mode)
	assert.False(t, cfg.Patients.SoftDelete)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
	assert.Contains(t, cfg.Database.DSN(), "dbname=clinic")
}

func TestConventionalEnvOverrides(t *testing.T) {
	t.Setenv("NUTRI_TENANCY_MODE", "single")
	t.Setenv("PORT", "9000")
	t.Setenv("CORS_ORIGIN", "https://app.example.com")
	t.Setenv("DATABASE_URL", "postgres://u:p@h/db")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://app.example.com", cfg.Server.CORSOrigin)
	assert.Equal(t, "postgres://u:p@h/db", cfg.Database.DSN())
}

func TestValidate(t *testing.T) {
	dir := writeConfig(t, "tenancy:\n  mode: multi\n")
	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "jwt.secret")

	dir = writeConfig(t, "tenancy:\n  mode: single\nanthropometry:\n  bmi: magic\n")
	_, err = LoadConfig(dir)
	assert.ErrorContains(t, err, "anthropometry.bmi")

	dir = writeConfig(t, "tenancy:\n  mode: single\ndatabase:\n  backend: mongo\n")
	_, err = LoadConfig(dir)
	assert.ErrorContains(t, err, "database.backend")
}
