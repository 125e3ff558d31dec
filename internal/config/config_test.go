package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"platter/internal/config"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("DISCOGS_TOKEN", "")
	t.Chdir(t.TempDir())
	return home
}

func TestLoadDefaultConfigUsesEnvToken(t *testing.T) {
	home := isolate(t)
	t.Setenv("DISCOGS_TOKEN", "env-token")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "platter", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	if cfg.Discogs.Token != "env-token" {
		t.Fatalf("expected token from env, got %q", cfg.Discogs.Token)
	}
	def := config.Default()
	if cfg.Discogs.BaseURL != def.Discogs.BaseURL {
		t.Fatalf("unexpected base url %q", cfg.Discogs.BaseURL)
	}
	if cfg.Resolution.Concurrency != 4 {
		t.Fatalf("concurrency = %d, want 4", cfg.Resolution.Concurrency)
	}
	if cfg.RequestTimeout() != 10*time.Second {
		t.Fatalf("request timeout = %s", cfg.RequestTimeout())
	}
	if cfg.RetryDelay() != 500*time.Millisecond {
		t.Fatalf("retry delay = %s", cfg.RetryDelay())
	}
	if cfg.SearchCacheTTL() != 10*time.Minute {
		t.Fatalf("search cache ttl = %s", cfg.SearchCacheTTL())
	}
	if cfg.Logging.Dir != "" {
		t.Fatalf("expected no log dir by default, got %q", cfg.Logging.Dir)
	}
}

func TestLoadFallsBackToDotEnv(t *testing.T) {
	isolate(t)
	if err := os.WriteFile(".env", []byte("DISCOGS_TOKEN=dotenv-token\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Discogs.Token != "dotenv-token" {
		t.Fatalf("expected token from .env, got %q", cfg.Discogs.Token)
	}
	if os.Getenv("DISCOGS_TOKEN") != "" {
		t.Fatal(".env must not mutate the process environment")
	}
}

func TestLoadMissingTokenFails(t *testing.T) {
	isolate(t)

	_, _, _, err := config.Load("")
	if err == nil {
		t.Fatal("expected error without token")
	}
	if !strings.Contains(err.Error(), "discogs.token") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	home := isolate(t)

	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	content := `[discogs]
token = "  file-token  "
base_url = "http://localhost:9999/"
requests_per_minute = 25

[resolution]
concurrency = 2

[logging]
format = "JSON"
level = "Debug"
dir = "~/logs"
`
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != cfgPath {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Discogs.Token != "file-token" {
		t.Fatalf("token = %q", cfg.Discogs.Token)
	}
	if cfg.Discogs.BaseURL != "http://localhost:9999" {
		t.Fatalf("base url = %q, want trailing slash trimmed", cfg.Discogs.BaseURL)
	}
	if cfg.Discogs.RequestsPerMinute != 25 {
		t.Fatalf("requests per minute = %d", cfg.Discogs.RequestsPerMinute)
	}
	if cfg.Discogs.RetryAttempts != config.Default().Discogs.RetryAttempts {
		t.Fatalf("retry attempts should keep default, got %d", cfg.Discogs.RetryAttempts)
	}
	if cfg.Resolution.Concurrency != 2 {
		t.Fatalf("concurrency = %d", cfg.Resolution.Concurrency)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if cfg.Logging.Dir != filepath.Join(home, "logs") {
		t.Fatalf("log dir = %q", cfg.Logging.Dir)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("platter.toml", []byte("[discogs]\ntoken = \"project\"\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "platter.toml" {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Discogs.Token != "project" {
		t.Fatalf("token = %q", cfg.Discogs.Token)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(cfgPath, []byte("[discogs\ntoken = "), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(cfgPath); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"timeout", func(c *config.Config) { c.Discogs.TimeoutSeconds = 0 }, "discogs.timeout_seconds"},
		{"rate", func(c *config.Config) { c.Discogs.RequestsPerMinute = -1 }, "discogs.requests_per_minute"},
		{"attempts", func(c *config.Config) { c.Discogs.RetryAttempts = 0 }, "discogs.retry_attempts"},
		{"retry delay", func(c *config.Config) { c.Discogs.RetryDelayMillis = -5 }, "discogs.retry_delay_ms"},
		{"cache ttl", func(c *config.Config) { c.Discogs.SearchCacheTTLSeconds = -1 }, "discogs.search_cache_ttl_seconds"},
		{"concurrency", func(c *config.Config) { c.Resolution.Concurrency = 0 }, "resolution.concurrency"},
		{"item timeout", func(c *config.Config) { c.Resolution.ItemTimeoutSeconds = 0 }, "resolution.item_timeout_seconds"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"log level", func(c *config.Config) { c.Logging.Level = "loud" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Discogs.Token = "token"
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateAcceptsZeroCacheTTL(t *testing.T) {
	cfg := config.Default()
	cfg.Discogs.Token = "token"
	cfg.Discogs.SearchCacheTTLSeconds = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestCreateSampleWritesParseableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var cfg config.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	def := config.Default()
	if cfg.Discogs.BaseURL != def.Discogs.BaseURL {
		t.Fatalf("sample base url %q differs from default %q", cfg.Discogs.BaseURL, def.Discogs.BaseURL)
	}
	if cfg.Discogs.RequestsPerMinute != def.Discogs.RequestsPerMinute {
		t.Fatalf("sample requests_per_minute %d differs from default", cfg.Discogs.RequestsPerMinute)
	}
	if cfg.Resolution.Concurrency != def.Resolution.Concurrency {
		t.Fatalf("sample concurrency %d differs from default", cfg.Resolution.Concurrency)
	}
}
