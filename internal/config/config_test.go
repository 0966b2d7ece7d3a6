package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", "")
	t.Setenv("APP_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Redis.BookTTL)
	assert.NotEmpty(t, cfg.JWT.Key)
	assert.NotEmpty(t, cfg.Security.EncryptionKey)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: "9090"
jwt:
  key: file-jwt-key-file-jwt-key-file-jwt-key
  issuer: catalog
  audience: catalog-clients
  validate_issuer: true
security:
  encryption_key: file-encryption-key
  encryption_iv: file-iv
`), 0o600))

	t.Setenv("APP_CONFIG_FILE", path)
	t.Setenv("JWT_ISSUER", "env-issuer")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "file-jwt-key-file-jwt-key-file-jwt-key", cfg.JWT.Key)
	assert.Equal(t, "env-issuer", cfg.JWT.Issuer, "env overrides file")
	assert.Equal(t, "catalog-clients", cfg.JWT.Audience)
	assert.True(t, cfg.JWT.ValidateIssuer)
	assert.False(t, cfg.JWT.ValidateAudience)
	assert.Equal(t, "file-encryption-key", cfg.Security.EncryptionKey)
	assert.Equal(t, "file-iv", cfg.Security.EncryptionIV)
}

func TestLoad_BadFile(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt: [unclosed"), 0o600))
	t.Setenv("APP_CONFIG_FILE", path)
	_, err = Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:      AppConfig{Environment: "development"},
			JWT:      JWTConfig{Key: "k"},
			Security: SecurityConfig{EncryptionKey: "k", EncryptionIV: "iv"},
			Store:    StoreConfig{Driver: StoreDriverMemory},
		}
	}

	assert.NoError(t, valid().Validate())

	c := valid()
	c.JWT.Key = ""
	assert.ErrorContains(t, c.Validate(), "JWT_KEY")

	c = valid()
	c.Security.EncryptionKey = ""
	assert.ErrorContains(t, c.Validate(), "ENCRYPTION_KEY")

	c = valid()
	c.Store.Driver = "mongo"
	assert.ErrorContains(t, c.Validate(), "STORE_DRIVER")

	c = valid()
	c.App.Environment = "production"
	c.JWT.Key = devJWTKey
	err := c.Validate()
	assert.ErrorContains(t, err, "JWT_KEY must be set in production")
	assert.ErrorContains(t, err, "memory store is not allowed")
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("DB_RETRY_DELAY", "250ms")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, 6543, cfg.Port)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)

	t.Setenv("DB_PORT", "not-a-port")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_PORT")

	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_MIN_CONNECTIONS", "50")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_MIN_CONNECTIONS")
}
