package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoRoot is returned when the project root is empty.
	ErrNoRoot = errors.New("no project root specified")

	// ErrNoLayout is returned when the layout template path is empty.
	// The checker cannot run without the lookup-table source.
	ErrNoLayout = errors.New("no layout template path specified")

	// ErrNoExtensions is returned when the scanned extension list is empty.
	// With nothing to scan every run would trivially pass.
	ErrNoExtensions = errors.New("no page file extensions configured")

	// ErrConflictingReportFormats is returned when both --markdown and
	// --text are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --markdown and --text cannot be used together")
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")
