package model

// Page represents one scanned HTML file that includes the shared layout.
// A record is created during the scan and never mutated afterwards.
type Page struct {
	// Path is the file path of the page, relative to the project root.
	Path string `json:"path"`

	// Slug is the normalized slug resolved for the page, either from the
	// include call's properties or from the file name.
	Slug string `json:"slug"`

	// HasInlineDescription reports whether the include call supplies a
	// description directly. An inline description always counts as
	// coverage, regardless of the lookup table contents.
	HasInlineDescription bool `json:"has_inline_description"`
}

// Lookup is the slug-to-description table extracted from the layout template.
// It is built once per run and treated as read-only afterwards; callers pass
// it explicitly into classification rather than sharing it as global state.
//
// Keys are either explicit slugs from the template source or hyphen-stripped
// aliases registered at load time. Values are always non-empty.
type Lookup map[string]string

// Description returns the description for a slug and whether one exists.
func (l Lookup) Description(slug string) (string, bool) {
	desc, ok := l[slug]
	return desc, ok
}

// Covers reports whether the lookup contains a description for the slug,
// via either a primary entry or an alias.
func (l Lookup) Covers(slug string) bool {
	_, ok := l[slug]
	return ok
}
