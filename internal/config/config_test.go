package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom_FileWithDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 5000
  env: production
database:
  driver: sqlite
  url: file:test.db
jwt:
  secret: s3cret
cors:
  allowed_origins:
    - https://rastaka.com
contact:
  archive_after: 720h
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "0.0.0.0:5000", cfg.Address())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, []string{"https://rastaka.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 1000, cfg.Slug.MaxAttempts)
	assert.Equal(t, 720*time.Hour, cfg.Contact.ArchiveAfter)
	assert.Equal(t, time.Hour, cfg.Contact.ArchiveEvery)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 5000
database:
  url: postgres://file
jwt:
  secret: from-file
`)
	t.Setenv("SERVER_PORT", "6000")
	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFrom_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("CORS_ORIGINS", "https://a.test,https://b.test")

	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://env", cfg.Database.DSN)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Database: DatabaseConfig{Driver: "mysql", DSN: "dsn"},
		JWT:      JWTConfig{Secret: "s"},
		Slug:     SlugConfig{MaxAttempts: 10},
	}
	require.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.JWT.Secret = ""
	assert.Error(t, noSecret.Validate())

	badDriver := valid
	badDriver.Database.Driver = "oracle"
	assert.ErrorContains(t, badDriver.Validate(), "unsupported database driver")

	noAttempts := valid
	noAttempts.Slug.MaxAttempts = 0
	assert.Error(t, noAttempts.Validate())
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [unclosed")
	_, err := LoadFrom(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}
