package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.NotEmpty(t, cfg.LLM.Model)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout())
	assert.False(t, cfg.Logging.Debug)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().LLM.Model, cfg.LLM.Model)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "llm:\n  model: gemini-2.5-pro\n  timeout: 30s\nlogging:\n  debug: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.LLM.Model)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.True(t, cfg.Logging.Debug)
	// Untouched fields keep defaults.
	assert.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [unclosed"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GLOSSA_API_KEY", "from-glossa")
	t.Setenv("GEMINI_API_KEY", "from-gemini")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-glossa", cfg.LLM.APIKey)

	t.Setenv("GLOSSA_API_KEY", "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-gemini", cfg.LLM.APIKey)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := DefaultConfig()
	cfg.LLM.Model = "gemini-2.5-flash"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", loaded.LLM.Model)
}
