package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 60*time.Second, cfg.APITimeout)
	assert.Equal(t, 3, cfg.APIMaxAttempts)
	assert.Equal(t, time.Second, cfg.APIBackoff)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.Equal(t, []byte("test-secret"), cfg.JWTSecret)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CONFIG_FILE", "")

	_, err := LoadConfig()
	assert.EqualError(t, err, "JWT_SECRET is not set in environment")
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playbox.yaml")
	content := "port: \"9090\"\nstore_backend: redis\napi_timeout: 5s\npayment_delay: 10ms\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.ServerPort, "env overrides file")
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, 10*time.Millisecond, cfg.PaymentDelay)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "s")

	t.Setenv("API_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("API_TIMEOUT", "")
	t.Setenv("STORE_BACKEND", "sqlite")
	_, err = LoadConfig()
	assert.EqualError(t, err, `unknown STORE_BACKEND "sqlite"`)
}
