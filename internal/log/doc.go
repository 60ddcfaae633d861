// Package log provides logging helpers built on top of the standard slog
// package.
//
// The RelPathHandler rewrites absolute file paths under the project root to
// root-relative form in all log attributes, so verbose scan logs read the
// same regardless of where the project is checked out.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, projectRoot, verbose)
//	slog.SetDefault(logger)
package log
