// Package main provides the entry point for the descheck CLI.
//
// descheck is a build-time checker for static sites using a shared layout
// template. It verifies that every HTML page including the layout resolves
// to a non-empty page description, either inline at the include call site
// or through the centralized lookup table in the layout template.
//
// Usage:
//
//	descheck check [project-root]
//	descheck history [project-root]
//
// See --help for all available options.
package main

// main is the entry point for descheck.
func main() {
	Execute()
}
