package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Discogs contains configuration for the Discogs database API.
type Discogs struct {
	Token                 string `toml:"token"`
	BaseURL               string `toml:"base_url"`
	UserAgent             string `toml:"user_agent"`
	TimeoutSeconds        int    `toml:"timeout_seconds"`
	RequestsPerMinute     int    `toml:"requests_per_minute"`
	RetryAttempts         int    `toml:"retry_attempts"`
	RetryDelayMillis      int    `toml:"retry_delay_ms"`
	SearchCacheTTLSeconds int    `toml:"search_cache_ttl_seconds"`
}

// Resolution contains configuration for batch resolution.
type Resolution struct {
	Concurrency        int `toml:"concurrency"`
	ItemTimeoutSeconds int `toml:"item_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Config encapsulates all configuration values for platter.
//
// Configuration sections by subsystem:
//   - Discogs: catalogue lookups, pacing, retry and search caching
//   - Resolution: batch fan-out and per-item deadlines
//   - Logging: log format, level, and optional file output
type Config struct {
	Discogs    Discogs    `toml:"discogs"`
	Resolution Resolution `toml:"resolution"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults plus environment fallbacks are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RequestTimeout returns the per-request HTTP timeout for Discogs calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Discogs.TimeoutSeconds) * time.Second
}

// RetryDelay returns the base delay between Discogs retry attempts.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Discogs.RetryDelayMillis) * time.Millisecond
}

// SearchCacheTTL returns how long search responses stay cached. Zero disables caching.
func (c *Config) SearchCacheTTL() time.Duration {
	return time.Duration(c.Discogs.SearchCacheTTLSeconds) * time.Second
}

// ItemTimeout returns the deadline applied to each batch item.
func (c *Config) ItemTimeout() time.Duration {
	return time.Duration(c.Resolution.ItemTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
