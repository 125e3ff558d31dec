// Package main hosts the platter CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into catalogue
// number extraction, single and batch Discogs resolution, and configuration
// scaffolding. It centralizes configuration loading, Discogs client wiring and
// structured logging setup so subcommands can focus on presenting results.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
