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
	t.Setenv("DATABASE_URL", "postgres://localhost/billing")
	t.Setenv("PORT", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/billing", cfg.DatabaseURL)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, int32(4), cfg.DBMaxConns)
	assert.Equal(t, 30*time.Second, cfg.DBConnectTimeout)
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://a.test, http://b.test")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DATABASE_URL=postgres://env/file\nPORT=8081\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("PORT")
	})

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env/file", cfg.DatabaseURL)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "DATABASE_URL")
}
