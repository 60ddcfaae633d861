// Package model defines the core data structures used throughout descheck.
//
// This package contains the following main types:
//   - Page: A scanned HTML page that includes the shared layout
//   - Lookup: The slug-to-description table extracted from the layout template
//   - CoverageReport: The JSON report contract printed to stdout
//   - CheckResult: The full result of one check run, including metadata
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, checker, report, database) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
