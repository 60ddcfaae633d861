package checker

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/lumina-web/descheck/internal/layout"
	"github.com/lumina-web/descheck/internal/model"
	"github.com/lumina-web/descheck/internal/scanner"
)

// Checker runs description-coverage checks over a project tree.
type Checker struct {
	// loader extracts the lookup table from the layout template.
	loader *layout.Loader

	// scanner discovers layout-including pages.
	scanner *scanner.Scanner

	// logger receives progress output.
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithLoader replaces the default layout loader.
func WithLoader(l *layout.Loader) Option {
	return func(c *Checker) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithScanner replaces the default page scanner.
func WithScanner(s *scanner.Scanner) Option {
	return func(c *Checker) {
		if s != nil {
			c.scanner = s
		}
	}
}

// WithLogger sets the logger used for progress output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Checker with default loader and scanner.
func New(opts ...Option) *Checker {
	c := &Checker{
		loader:  layout.NewLoader(),
		scanner: scanner.NewScanner(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run performs one full check: load the lookup table from layoutPath, scan
// the tree under root, classify every page, and return the result.
//
// A missing or marker-less layout template is a fatal configuration error
// and aborts the run before any page is scanned; the error wraps
// layout.ErrEntriesNotFound when the marker is absent. Pages missing a
// description are not an error at this level: they are collected across the
// whole scan and reported through the result, and the caller decides the
// process exit status.
func (c *Checker) Run(root, layoutPath string) (*model.CheckResult, error) {
	start := time.Now()

	lookup, err := c.loader.LoadFile(layoutPath)
	if err != nil {
		return nil, err
	}
	c.logger.Info("lookup table loaded",
		"layout", layoutPath,
		"entries", len(lookup),
	)

	pages, err := c.scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("page scan: %w", err)
	}
	c.logger.Info("page scan complete", "root", root, "pages", len(pages))

	// Stable output: records sorted by path regardless of traversal order.
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })

	result := &model.CheckResult{
		Root:          root,
		LayoutPath:    layoutPath,
		CheckedAt:     start,
		PagesScanned:  len(pages),
		LookupEntries: len(lookup),
		Pages:         pages,
		Report:        Classify(pages, lookup),
	}
	result.Duration = time.Since(start)

	return result, nil
}

// Classify builds the coverage report for a set of page records against a
// lookup table. The lookup is taken as an explicit value so classification
// is deterministic and testable in isolation.
//
// A page counts as covered when it carries an inline description (always,
// regardless of the lookup) or when its slug has a lookup entry, primary or
// alias. Everything else is recorded as missing. TotalPages counts covered
// pages only; see model.CoverageReport for the naming caveat.
func Classify(pages []model.Page, lookup model.Lookup) model.CoverageReport {
	report := model.NewCoverageReport()

	for _, page := range pages {
		switch {
		case page.HasInlineDescription:
			report.TotalPages++
		case lookup.Covers(page.Slug):
			report.TotalPages++
		default:
			report.MissingDescriptions = append(report.MissingDescriptions,
				model.MissingEntry{Path: page.Path, Slug: page.Slug})
		}
	}

	sort.Slice(report.MissingDescriptions, func(i, j int) bool {
		return report.MissingDescriptions[i].Path < report.MissingDescriptions[j].Path
	})

	return report
}
