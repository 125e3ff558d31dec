package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDiscogs(); err != nil {
		return err
	}
	if err := c.validateResolution(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDiscogs() error {
	if c.Discogs.Token == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("discogs.token is required. Set %s env var, add it to .env, or edit %s (create with 'platter config init')", tokenEnvVar, defaultPath)
	}
	if c.Discogs.TimeoutSeconds <= 0 {
		return errors.New("discogs.timeout_seconds must be positive")
	}
	if c.Discogs.RequestsPerMinute <= 0 {
		return errors.New("discogs.requests_per_minute must be positive")
	}
	if c.Discogs.RetryAttempts <= 0 {
		return errors.New("discogs.retry_attempts must be positive")
	}
	if c.Discogs.RetryDelayMillis < 0 {
		return errors.New("discogs.retry_delay_ms must be non-negative")
	}
	if c.Discogs.SearchCacheTTLSeconds < 0 {
		return errors.New("discogs.search_cache_ttl_seconds must be non-negative")
	}
	return nil
}

func (c *Config) validateResolution() error {
	if c.Resolution.Concurrency <= 0 {
		return errors.New("resolution.concurrency must be positive")
	}
	if c.Resolution.ItemTimeoutSeconds <= 0 {
		return errors.New("resolution.item_timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
