package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// MissingEntry identifies one page that lacks a resolvable description.
//
// Design decision: the entry serializes as a two-element JSON array
// ["<path>", "<slug>"] rather than an object. This is the documented report
// contract consumed by CI tooling, so we implement Marshaler/Unmarshaler
// instead of relying on struct field tags.
type MissingEntry struct {
	// Path is the page's file path relative to the project root.
	Path string

	// Slug is the slug the page resolved to but found no description for.
	Slug string
}

// MarshalJSON encodes the entry as ["path", "slug"].
func (e MissingEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Path, e.Slug})
}

// UnmarshalJSON decodes a ["path", "slug"] pair.
func (e *MissingEntry) UnmarshalJSON(data []byte) error {
	var pair [2]string
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("missing entry must be a [path, slug] pair: %w", err)
	}
	e.Path = pair[0]
	e.Slug = pair[1]
	return nil
}

// String returns the human-readable form used for error-stream output.
func (e MissingEntry) String() string {
	return fmt.Sprintf("Missing description for slug '%s' from %s", e.Slug, e.Path)
}

// CoverageReport is the structured report printed to stdout as JSON.
//
// Note: TotalPages counts only covered pages; pages recorded in
// MissingDescriptions are not included in the count. The name is misleading,
// but it is the documented contract relied upon by downstream consumers, so
// it is preserved verbatim. The text and Markdown writers show scanned,
// covered, and missing counts separately for human readers.
//
// Fields are declared in alphabetical key order so the stdlib encoder emits
// the keys sorted, matching the contract.
type CoverageReport struct {
	// MissingDescriptions lists every page missing a description, as
	// [path, slug] pairs sorted by path.
	MissingDescriptions []MissingEntry `json:"missing_descriptions"`

	// TotalPages is the count of covered pages (see the type comment).
	TotalPages int `json:"total_pages"`
}

// NewCoverageReport returns an empty report whose missing list serializes
// as [] rather than null.
func NewCoverageReport() CoverageReport {
	return CoverageReport{MissingDescriptions: []MissingEntry{}}
}

// HasMissing reports whether any page lacks a description.
func (r CoverageReport) HasMissing() bool {
	return len(r.MissingDescriptions) > 0
}

// CheckResult is the complete outcome of one check run. The Report field
// carries the stdout JSON contract; the remaining fields feed the
// human-readable writers and the run-history database.
type CheckResult struct {
	// Root is the project root that was scanned.
	Root string `json:"root"`

	// LayoutPath is the layout template the lookup table was loaded from.
	LayoutPath string `json:"layout_path"`

	// CheckedAt is when the check started.
	CheckedAt time.Time `json:"checked_at"`

	// Duration is how long the check took.
	Duration time.Duration `json:"duration"`

	// PagesScanned is the number of pages that include the shared layout.
	// Files without the include call are skipped and not counted.
	PagesScanned int `json:"pages_scanned"`

	// LookupEntries is the number of entries in the loaded lookup table,
	// aliases included.
	LookupEntries int `json:"lookup_entries"`

	// Pages holds every scanned page record.
	Pages []Page `json:"pages,omitempty"`

	// Report is the coverage report contract.
	Report CoverageReport `json:"report"`
}

// CoveredCount returns the number of covered pages.
func (r *CheckResult) CoveredCount() int {
	return r.Report.TotalPages
}

// MissingCount returns the number of pages missing a description.
func (r *CheckResult) MissingCount() int {
	return len(r.Report.MissingDescriptions)
}
