// Package config loads and exposes application configuration (TOML).
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath     = "tripdocs.toml"
	DefaultAPIBaseURL     = "http://localhost:8000"
	DefaultTimeoutSeconds = 30
	DefaultHistoryPage    = 5

	// EnvAPIBaseURL overrides the configured API base URL when set.
	EnvAPIBaseURL = "TRIPDOCS_API_URL"
)

// DefaultExamples are the suggested questions shown when the conversation
// is empty. They are templates, never persisted server-side.
var DefaultExamples = []string{
	"What documents do I need to travel from Kenya to Ireland?",
	"Visa requirements for US citizens traveling to Japan",
	"What are the passport requirements for traveling to Dubai?",
	"Documents needed for a business trip to Germany from Nigeria",
}

// Config is the root application configuration loaded from TOML.
type Config struct {
	Log      LogConfig      `toml:"log"`
	API      APIConfig      `toml:"api"`
	History  HistoryConfig  `toml:"history"`
	Chat     ChatConfig     `toml:"chat"`
	Identity IdentityConfig `toml:"identity"`
}

// LogConfig holds logging level and format (e.g. level=info, format=text).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// APIConfig holds the remote API base URL and the per-request timeout.
type APIConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// HistoryConfig holds the history page size.
type HistoryConfig struct {
	PageSize int `toml:"page_size"`
}

// ChatConfig holds the example question templates.
type ChatConfig struct {
	Examples []string `toml:"examples"`
}

// IdentityConfig holds the path of the persisted user id state file.
// Empty means the default location under the user config dir.
type IdentityConfig struct {
	Path string `toml:"path"`
}

// Load reads and parses the TOML config file at path and applies default
// values for missing fields. A missing file is not an error. The
// TRIPDOCS_API_URL environment variable takes precedence over the
// configured base URL.
func Load(path string) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		API: APIConfig{
			BaseURL:        DefaultAPIBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		History: HistoryConfig{
			PageSize: DefaultHistoryPage,
		},
		Chat: ChatConfig{
			Examples: DefaultExamples,
		},
	}

	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}

	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.History.PageSize <= 0 {
		cfg.History.PageSize = DefaultHistoryPage
	}
	if len(cfg.Chat.Examples) == 0 {
		cfg.Chat.Examples = DefaultExamples
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if url := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); url != "" {
		cfg.API.BaseURL = url
	}
}
