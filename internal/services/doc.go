// Package services defines shared utilities consumed by the resolution engine,
// the Discogs integration, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp batch item indexes, stage names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that keep the distinction
//     between an unavailable lookup and malformed catalogue metadata intact as
//     errors travel up to the caller.
//
// Use these helpers when wiring new lookup logic so failure classification
// stays uniform across commands.
package services
