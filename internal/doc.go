// Package internal contains the core implementation packages for regen.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the regen CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - config: Configuration management with validation
//   - enumerate: Ignore-aware source file enumeration
//   - errors: Structured error types, including hash delegation failures
//   - extensions: Template extension-chain resolution and memoization
//   - hash: Content fingerprinting, local or delegated
//   - ignore: Pruning predicates from gitignore rules and glob patterns
//   - registry: Template-engine extension registry
//   - related: Alias expansion and stale-output resolution
//   - sitemap: Candidate resource manifests
//   - watcher: File system monitoring with debouncing
//
// # Design Principles
//
// The dependency-resolution core (extensions, related) is pure: it performs
// no I/O and never fails within its documented domain. Everything touching
// the file system or subprocesses lives at the edges (enumerate, hash,
// sitemap, watcher). Enumeration and resolution treat unreadable paths,
// unknown extensions, and hidden files as defined edge cases rather than
// errors; only configuration loading and hashing can fail.
//
// For detailed documentation, see the individual package documentation.
package internal
