package webapp

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ANALYTICA_BACKEND_URL", "http://localhost:8000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

func TestLoadConfigRequiresBackendURL(t *testing.T) {
	t.Setenv("ANALYTICA_BACKEND_URL", "")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend url is required")
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("ANALYTICA_BACKEND_URL", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen_addr: \":8080\"\nbackend_url: \"http://api.internal:8000\"\nsession_ttl: 2h\n",
	), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://api.internal:8000", cfg.BackendURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	t.Setenv("ANALYTICA_BACKEND_URL", "http://override:9000")
	t.Setenv("ANALYTICA_SESSION_TTL", "30m")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"backend_url: \"http://file:8000\"\n",
	), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://override:9000", cfg.BackendURL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("ANALYTICA_BACKEND_URL", "http://localhost:8000")
	t.Setenv("ANALYTICA_SESSION_TTL", "never")

	_, err := LoadConfig("")
	require.Error(t, err)
}
