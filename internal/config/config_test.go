package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stucom/basketball-fans-service/internal/config"
)

const minimalYAML = `
app:
  name: test-app
  port: 9090
logger:
  level: debug
postgres:
  host: 127.0.0.1
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("APP_POSTGRES_USER", "svc")
	t.Setenv("APP_POSTGRES_PASSWORD", "s3cret")
	t.Setenv("APP_POSTGRES_DB", "fans")
	t.Setenv("APP_AUTH_JWT_SECRET", "jwt-key")
}

func TestLoad_SecretsFromEnv(t *testing.T) {
	setSecrets(t)
	cfg, err := config.Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "test-app", cfg.App.Name)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "svc", cfg.Postgres.User)
	assert.Equal(t, "s3cret", cfg.Postgres.Password)
	assert.Equal(t, "fans", cfg.Postgres.DBName)
	assert.Equal(t, "jwt-key", cfg.Auth.JWTSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)
	cfg, err := config.Load(writeConfig(t, "postgres:\n  host: db\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

func TestLoad_MissingSecretsFails(t *testing.T) {
	// No APP_* secrets in the environment: validation must reject the config.
	t.Setenv("APP_POSTGRES_USER", "")
	t.Setenv("APP_POSTGRES_PASSWORD", "")
	t.Setenv("APP_POSTGRES_DB", "")
	t.Setenv("APP_AUTH_JWT_SECRET", "")

	_, err := config.Load(writeConfig(t, minimalYAML))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setSecrets(t)
	t.Setenv("APP_POSTGRES_HOST", "db.internal")

	cfg, err := config.Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
}
