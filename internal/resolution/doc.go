// Package resolution turns a catalogue number into exactly one canonical
// record, or decides that no single record can be chosen.
//
// A Resolver runs the per-item pipeline: search the catalogue source, pick one
// hit with Disambiguate, fetch the selection's details and build a Record with
// Convert. Ambiguity and empty searches are outcomes reported through Result,
// never errors. Collaborator failures carry services.ErrLookupUnavailable and
// bad detail payloads carry services.ErrMalformedMetadata.
//
// ResolveAll fans independent requests out over a bounded worker group while
// keeping output order equal to input order.
package resolution
