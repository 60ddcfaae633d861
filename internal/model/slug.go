package model

import "strings"

// Slugify converts an arbitrary string into a canonical page slug.
//
// Every maximal run of characters outside [A-Za-z0-9] is collapsed to a single
// hyphen, leading and trailing hyphens are stripped, and the result is
// lowercased. The function is total and idempotent: it never fails, and
// Slugify(Slugify(s)) == Slugify(s) for any input. An empty input (or an input
// with no alphanumeric characters at all) yields the empty string.
//
// The output either is empty or matches ^[a-z0-9]+(-[a-z0-9]+)*$.
func Slugify(value string) string {
	var b strings.Builder
	b.Grow(len(value))

	pendingHyphen := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r + ('a' - 'A'))
		default:
			// Non-alphanumeric run; emit at most one hyphen, and only
			// between alphanumeric characters.
			pendingHyphen = true
		}
	}

	return b.String()
}

// CollapseAlias returns the hyphen-stripped alias form of a slug
// ("case-study" -> "casestudy"). The alias lets pages whose resolved slug
// lost its separators (typically a filename like casestudy.html) still match
// a hyphenated lookup entry.
func CollapseAlias(slug string) string {
	return strings.ReplaceAll(slug, "-", "")
}
