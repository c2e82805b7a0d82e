package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/meain/ytcaptions/internal/youtube"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, youtube.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, youtube.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, "", cfg.Lang)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.MaxWorkers)
}

func TestLoadConfigFirstExistingFileWins(t *testing.T) {
	first := writeConfig(t, `{"lang":"fr","timeout_seconds":5}`)
	second := writeConfig(t, `{"lang":"de"}`)

	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "missing.json"), first, second)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Lang)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	// Fields absent from the file keep their defaults.
	assert.Equal(t, youtube.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, ".ytcaptionsdb", cfg.Database)
}

func TestLoadConfigInvalidFileKeepsDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(writeConfig(t, `{"lang":`))
	require.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "", cfg.Lang)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("YTCAPTIONS_LANG", "ja")
	t.Setenv("YTCAPTIONS_TIMEOUT", "90s")
	t.Setenv("YTCAPTIONS_MAX_WORKERS", "8")
	t.Setenv("YTCAPTIONS_BASE_URL", "http://127.0.0.1:9999")

	cfg, err := LoadConfigFrom(writeConfig(t, `{"lang":"fr","max_workers":2}`))
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Lang)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.MaxWorkers)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.BaseURL)
}
