package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != DefaultAPIBaseURL {
		t.Errorf("base url = %q, want %q", cfg.API.BaseURL, DefaultAPIBaseURL)
	}
	if cfg.API.TimeoutSeconds != DefaultTimeoutSeconds {
		t.Errorf("timeout = %d, want %d", cfg.API.TimeoutSeconds, DefaultTimeoutSeconds)
	}
	if cfg.History.PageSize != DefaultHistoryPage {
		t.Errorf("page size = %d, want %d", cfg.History.PageSize, DefaultHistoryPage)
	}
	if len(cfg.Chat.Examples) != len(DefaultExamples) {
		t.Errorf("examples = %d, want %d", len(cfg.Chat.Examples), len(DefaultExamples))
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripdocs.toml")
	data := `
[log]
level = "debug"
format = "json"

[api]
base_url = "http://api.example.com:9000"
timeout_seconds = 10

[history]
page_size = 20

[chat]
examples = ["Do I need a visa for France?"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.API.BaseURL != "http://api.example.com:9000" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("timeout = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.History.PageSize != 20 {
		t.Errorf("page size = %d", cfg.History.PageSize)
	}
	if len(cfg.Chat.Examples) != 1 {
		t.Errorf("examples = %v", cfg.Chat.Examples)
	}
}

func TestEnvOverridesBaseURL(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "http://127.0.0.1:8123")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8123" {
		t.Errorf("base url = %q, want env override", cfg.API.BaseURL)
	}
}
