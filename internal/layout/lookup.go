package layout

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/lumina-web/descheck/internal/model"
)

// DefaultEntriesMarker is the variable name that introduces the description
// table in the layout template source.
const DefaultEntriesMarker = "__layoutPageDescriptionEntries"

// ErrEntriesNotFound is returned when the layout template does not contain
// the description-table declaration. This is a fatal configuration error:
// without the table the checker cannot classify any page, so the run aborts
// before scanning.
var ErrEntriesNotFound = errors.New("description entries declaration not found in layout template")

// entryPattern matches one 'key': 'value' pair inside the entries block.
// Single-quoted strings without embedded quotes are assumed; an entry with
// an empty value does not match and is therefore dropped at load time.
var entryPattern = regexp.MustCompile(`'([^']+)':\s*'([^']+)'`)

// Loader extracts the description lookup table from layout template source.
type Loader struct {
	// marker is the variable name delimiting the entries block.
	marker string

	// blockPattern matches the full entries assignment and captures the
	// object-literal body.
	blockPattern *regexp.Regexp
}

// Option configures a Loader.
type Option func(*Loader)

// WithMarker overrides the entries variable name. Useful for forks of the
// layout convention that renamed the table.
func WithMarker(marker string) Option {
	return func(l *Loader) {
		if marker != "" {
			l.marker = marker
		}
	}
}

// NewLoader creates a Loader for the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{marker: DefaultEntriesMarker}
	for _, opt := range opts {
		opt(l)
	}

	// Non-greedy body match up to the first "};" so trailing script in the
	// template cannot bleed into the block.
	l.blockPattern = regexp.MustCompile(
		`var ` + regexp.QuoteMeta(l.marker) + `\s*=\s*\{([\s\S]*?)\};`)

	return l
}

// LoadFile reads the layout template at path and extracts its lookup table.
func (l *Loader) LoadFile(path string) (model.Lookup, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Layout path comes from config and flags
	if err != nil {
		return nil, fmt.Errorf("failed to read layout template %s: %w", path, err)
	}

	lookup, err := l.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("layout template %s: %w", path, err)
	}
	return lookup, nil
}

// Parse extracts the lookup table from layout template source text.
//
// The primary mapping keeps every entry with a non-empty description. For
// each retained entry a hyphen-stripped alias is registered pointing at the
// same description, but only when the alias differs from the original key,
// is not itself an explicit key in the source block, and has not already
// been registered (first registrant wins; aliases never overwrite).
func (l *Loader) Parse(source string) (model.Lookup, error) {
	block := l.blockPattern.FindStringSubmatch(source)
	if block == nil {
		return nil, fmt.Errorf("%w (expected marker %q)", ErrEntriesNotFound, l.marker)
	}

	pairs := entryPattern.FindAllStringSubmatch(block[1], -1)

	// Collect explicit keys in source order. Duplicate keys are not
	// expected, but if present the last value wins.
	explicit := make(map[string]string, len(pairs))
	order := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		key, desc := pair[1], pair[2]
		if _, seen := explicit[key]; !seen {
			order = append(order, key)
		}
		explicit[key] = desc
	}

	lookup := make(model.Lookup, len(order)*2)
	for _, key := range order {
		desc := explicit[key]
		if desc == "" {
			continue
		}
		lookup[key] = desc

		alias := model.CollapseAlias(key)
		if alias == "" || alias == key {
			continue
		}
		if _, isExplicit := explicit[alias]; isExplicit {
			continue
		}
		if _, exists := lookup[alias]; exists {
			continue
		}
		lookup[alias] = desc
	}

	return lookup, nil
}
