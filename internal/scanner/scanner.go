package scanner

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lumina-web/descheck/internal/model"
)

// Default scanner settings. These match the layout convention the checker
// was written for; all of them can be overridden via options.
const (
	// DefaultDescriptionProperty is the property name whose presence in the
	// include call marks an inline description.
	DefaultDescriptionProperty = "pageDescription"
)

// DefaultExtensions are the file extensions scanned by default.
var DefaultExtensions = []string{".html"}

// DefaultSlugProperties is the priority-ordered list of include-call
// properties consulted when resolving a page's slug.
var DefaultSlugProperties = []string{"pageSlug", "currentPage"}

// includePattern matches a call of the form include('layout', { ... }).
// The property block capture is non-greedy up to the first "})", so nested
// object literals inside the block are a known limitation of the text-match
// approach, not supported input.
var includePattern = regexp.MustCompile(`include\((?:'|")layout(?:'|")\s*,\s*\{([\s\S]*?)\}\)`)

// propertyPattern matches one "identifier: value" property inside the block.
// The value runs to the next comma or newline.
var propertyPattern = regexp.MustCompile(`(\w+)\s*:\s*([^,\n]+)`)

// quoteParenPattern matches the quote and parenthesis characters stripped
// from raw slug values.
var quoteParenPattern = regexp.MustCompile(`['"()]`)

// Scanner finds layout-including pages under a project root.
// The scan is single-threaded and fully synchronous; each file is read,
// matched, and released before the next one is opened.
type Scanner struct {
	// extensions is the set of file extensions treated as pages.
	extensions map[string]bool

	// ignorePatterns are glob patterns; a directory or file whose base name
	// or root-relative path matches any of them is skipped.
	ignorePatterns []string

	// slugProperties is the priority-ordered property list for slug
	// resolution.
	slugProperties []string

	// descriptionProperty marks an inline description when it appears
	// anywhere inside the matched property block.
	descriptionProperty string

	// logger receives debug output for skipped and scanned files.
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExtensions overrides the scanned file extensions.
func WithExtensions(exts []string) Option {
	return func(s *Scanner) {
		if len(exts) == 0 {
			return
		}
		s.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			s.extensions[ext] = true
		}
	}
}

// WithIgnorePatterns sets glob patterns for directories and files to skip.
func WithIgnorePatterns(patterns []string) Option {
	return func(s *Scanner) {
		s.ignorePatterns = patterns
	}
}

// WithSlugProperties overrides the slug-resolution property priority list.
func WithSlugProperties(props []string) Option {
	return func(s *Scanner) {
		if len(props) > 0 {
			s.slugProperties = props
		}
	}
}

// WithDescriptionProperty overrides the inline-description property name.
func WithDescriptionProperty(name string) Option {
	return func(s *Scanner) {
		if name != "" {
			s.descriptionProperty = name
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a Scanner with the given options applied on top of the
// defaults.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		slugProperties:      DefaultSlugProperties,
		descriptionProperty: DefaultDescriptionProperty,
		logger:              slog.Default(),
	}
	WithExtensions(DefaultExtensions)(s)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan walks the project tree rooted at root and returns one page record per
// file that includes the shared layout. Paths in the returned records are
// relative to root. Traversal order is the filesystem's; callers that need a
// stable order must sort.
//
// A file that cannot be read aborts the scan: in a well-formed project
// checkout every candidate page is expected to be readable, so read failures
// are treated as fatal rather than skipped.
func (s *Scanner) Scan(root string) ([]model.Page, error) {
	var pages []model.Page

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && s.ignored(rel, d.Name()) {
				s.logger.Debug("skipping ignored directory", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}

		if !s.extensions[filepath.Ext(d.Name())] {
			return nil
		}
		if s.ignored(rel, d.Name()) {
			s.logger.Debug("skipping ignored file", "path", rel)
			return nil
		}

		page, ok, err := s.scanFile(p, rel, d.Name())
		if err != nil {
			return err
		}
		if !ok {
			s.logger.Debug("file does not include the layout", "path", rel)
			return nil
		}

		s.logger.Debug("page scanned",
			"path", page.Path,
			"slug", page.Slug,
			"inlineDescription", page.HasInlineDescription,
		)
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan failed under %s: %w", root, err)
	}

	return pages, nil
}

// scanFile reads one candidate file and extracts its page record.
// The second return value is false when the file does not include the layout.
func (s *Scanner) scanFile(fullPath, relPath, name string) (model.Page, bool, error) {
	data, err := os.ReadFile(fullPath) //nolint:gosec // Paths come from the project walk
	if err != nil {
		return model.Page{}, false, fmt.Errorf("failed to read %s: %w", relPath, err)
	}

	match := includePattern.FindSubmatch(data)
	if match == nil {
		return model.Page{}, false, nil
	}
	block := string(match[1])

	candidate := s.resolveSlugCandidate(block)
	if candidate == "" {
		// No usable slug property; fall back to the file's base name.
		candidate = strings.TrimSuffix(name, filepath.Ext(name))
	}

	return model.Page{
		Path:                 relPath,
		Slug:                 model.Slugify(candidate),
		HasInlineDescription: strings.Contains(block, s.descriptionProperty),
	}, true, nil
}

// resolveSlugCandidate extracts the raw slug candidate from the include
// call's property block, or "" when no slug property yields a value.
//
// Properties are consulted in priority order. A raw value containing the
// "||" fallback operator contributes its right-hand operand. Quote and
// parenthesis characters are stripped and the result trimmed; an empty
// result moves on to the next property.
func (s *Scanner) resolveSlugCandidate(block string) string {
	props := parseProperties(block)

	for _, key := range s.slugProperties {
		raw, ok := props[key]
		if !ok {
			continue
		}
		if parts := strings.Split(raw, "||"); len(parts) > 1 {
			raw = parts[1]
		}
		raw = quoteParenPattern.ReplaceAllString(raw, "")
		raw = strings.TrimSpace(raw)
		if raw != "" {
			return raw
		}
	}
	return ""
}

// parseProperties splits a property block into key/raw-value pairs.
// Duplicate keys keep the last value.
func parseProperties(block string) map[string]string {
	matches := propertyPattern.FindAllStringSubmatch(block, -1)
	props := make(map[string]string, len(matches))
	for _, m := range matches {
		props[m[1]] = m[2]
	}
	return props
}

// ignored reports whether the base name or root-relative path matches any
// configured ignore pattern. Malformed patterns never match.
func (s *Scanner) ignored(relPath, base string) bool {
	for _, pattern := range s.ignorePatterns {
		if ok, err := path.Match(pattern, base); err == nil && ok {
			return true
		}
		if ok, err := path.Match(pattern, relPath); err == nil && ok {
			return true
		}
	}
	return false
}
