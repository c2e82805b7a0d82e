package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/meain/ytcaptions/internal/youtube"
)

type Config struct {
	UserAgent string `json:"user_agent"`
	BaseURL   string `json:"base_url"`
	Lang      string `json:"lang,omitempty"` // default caption language, empty picks the first track
	Database  string `json:"database"`

	// Timeout is in seconds in the file; YTCAPTIONS_TIMEOUT takes a duration.
	TimeoutSeconds int           `json:"timeout_seconds"`
	Timeout        time.Duration `json:"-"`

	MaxWorkers        int     `json:"max_workers"`
	RequestsPerSecond float64 `json:"requests_per_second"`
}

func defaultConfig() *Config {
	return &Config{
		UserAgent:         youtube.DefaultUserAgent,
		BaseURL:           youtube.DefaultBaseURL,
		Database:          ".ytcaptionsdb",
		TimeoutSeconds:    30,
		MaxWorkers:        4,
		RequestsPerSecond: 2,
	}
}

// ConfigPaths lists the config files LoadConfig looks at, in order.
func ConfigPaths() []string {
	var paths []string
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "ytcaptions", "config.json"))
	}
	// Additional path for macOS
	return append(paths, filepath.Join(os.Getenv("HOME"), ".config", "ytcaptions", "config.json"))
}

func LoadConfig() (*Config, error) {
	return LoadConfigFrom(ConfigPaths()...)
}

// LoadConfigFrom reads the first existing file in paths over the defaults and
// applies YTCAPTIONS_* environment overrides. Unreadable or invalid files
// leave the defaults in place and are reported through the error, which the
// caller may treat as a warning.
func LoadConfigFrom(paths ...string) (*Config, error) {
	cfg := defaultConfig()

	var loadErr error
	for _, configPath := range paths {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			continue // Try next path if this file doesn't exist
		}

		data, err := os.ReadFile(configPath)
		if err != nil {
			loadErr = err
			break
		}

		fileCfg := *cfg
		if err := json.Unmarshal(data, &fileCfg); err != nil {
			loadErr = err
			break
		}
		cfg = &fileCfg

		break // Configuration loaded successfully
	}

	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	cfg.applyEnv()
	return cfg, loadErr
}

func (c *Config) applyEnv() {
	c.UserAgent = env.Str("YTCAPTIONS_USER_AGENT", c.UserAgent)
	c.BaseURL = env.Str("YTCAPTIONS_BASE_URL", c.BaseURL)
	c.Lang = env.Str("YTCAPTIONS_LANG", c.Lang)
	c.Database = env.Str("YTCAPTIONS_DATABASE", c.Database)
	c.Timeout = env.Duration("YTCAPTIONS_TIMEOUT", c.Timeout)
	c.MaxWorkers = env.Int("YTCAPTIONS_MAX_WORKERS", c.MaxWorkers)
	c.RequestsPerSecond = env.Float("YTCAPTIONS_RPS", c.RequestsPerSecond)
}
