package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "GIN_MODE", "DB_DRIVER", "DATABASE_URL", "LOG_LEVEL",
		"CORS_ORIGINS", "EDITOR_PASSWORD_HASH", "JWT_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
db_driver: postgres
database_url: postgres://directory@localhost/halal
cors_origins:
  - https://a.example
log_level: debug
`), 0o600))

	t.Setenv("PORT", "9100")
	t.Setenv("CORS_ORIGINS", " https://b.example , ,https://c.example")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, "postgres://directory@localhost/halal", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.CORSOrigins)
}

func TestLoadRejectsBadFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1, 2"), 0o600))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresSecretForEditorSignIn(t *testing.T) {
	clearEnv(t)
	t.Setenv("EDITOR_PASSWORD_HASH", "$2a$10$7EqJtq98hPqEX7fNZaFWoO5vJ9lqL3Y0sVnF8b7HhVh7xH5Pq5Kqy")

	_, err := Load("")
	assert.ErrorContains(t, err, "jwt_secret")

	t.Setenv("JWT_SECRET", "a-long-random-secret")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "a-long-random-secret", cfg.JWTSecret)
}

func TestDefaultHasNoSigningSecret(t *testing.T) {
	assert.Empty(t, Default().JWTSecret)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	bad := cfg
	bad.DBDriver = "mysql"
	assert.ErrorContains(t, bad.Validate(), "unsupported db_driver")

	bad = cfg
	bad.DatabaseURL = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.EditorPasswordHash = "$2a$10$hash"
	bad.JWTSecret = ""
	assert.ErrorContains(t, bad.Validate(), "jwt_secret")
}

func TestOpenDBMigratesSQLite(t *testing.T) {
	cfg := Default()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "directory.db")
	db, err := OpenDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })

	for _, m := range Models {
		assert.True(t, db.Migrator().HasTable(m), "%T", m)
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}
