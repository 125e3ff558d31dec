// Package catno extracts record catalogue numbers from noisy recognized text.
//
// The extractor cleans its input (NFKC folding, uppercase, typographic dashes,
// stray OCR punctuation), evaluates a fixed set of pattern rules at every token
// start, repairs common letter-for-digit confusions inside prefixed catalogue
// numbers, and returns at most one normalized Identifier. Nothing here performs
// I/O or returns errors: unrecognizable text simply yields no identifier.
package catno
