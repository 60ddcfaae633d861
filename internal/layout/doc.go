// Package layout extracts the centralized slug-to-description lookup table
// from the shared layout template's source text.
//
// Extraction is regular-expression based, not a real template parser. The
// table is a JavaScript object literal assigned to a well-known variable
// inside the template; we locate that assignment and pull out the
// single-quoted key/value pairs. This mirrors the loosely-typed templating
// convention it checks: nested braces and escaped quotes inside entries are
// a known limitation, not a supported input.
package layout
