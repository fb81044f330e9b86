package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:5000", cfg.Inference.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Inference.Timeout())
	assert.Equal(t, "guest", cfg.GuestUserID)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
listen_addr: ":9090"
inference:
  base_url: "http://inference:5000"
  timeout_seconds: 3
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "http://inference:5000", cfg.Inference.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Inference.Timeout())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched fields keep their defaults.
	assert.Equal(t, "./data", cfg.Storage.DataPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`listen_addr: ":9090"`), 0644))

	t.Setenv("MINDFULCHAT_LISTEN_ADDR", ":7070")
	t.Setenv("AI_SERVICE_URL", "http://env-inference:5000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "http://env-inference:5000", cfg.Inference.BaseURL)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
inference:
  timeout_seconds: -1
`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{ nope"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
