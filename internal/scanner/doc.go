// Package scanner walks a project tree and extracts a page record from every
// HTML file that includes the shared layout template.
//
// Detection is regular-expression based: the include call and its
// property block are matched as text, never parsed as a real templating
// language. Files that do not contain the include call are out of scope and
// silently skipped.
package scanner
