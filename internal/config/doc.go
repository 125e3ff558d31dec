// Package config loads, normalizes, and validates platter configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours token fallbacks from the
// DISCOGS_TOKEN environment variable and a local .env file. The Config type
// centralizes every knob the CLI and resolver need so Discogs credentials,
// pacing, and batch limits are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized values and clear validation errors.
package config
