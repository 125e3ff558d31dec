// Package discogs is a small client for the Discogs database API.
//
// It covers the three calls catalogue-number resolution needs: a catalogue
// number search and the release and master detail lookups. Requests carry the
// personal access token, a descriptive User-Agent, and are paced by a token
// bucket so a batch never exceeds the account's per-minute allowance.
// Transport failures, 429 and 5xx responses are retried with backoff; other
// client errors fail immediately. Search responses are cached in memory for a
// configurable TTL.
package discogs
