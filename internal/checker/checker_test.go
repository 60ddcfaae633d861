package checker

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/lumina-web/descheck/internal/layout"
	"github.com/lumina-web/descheck/internal/model"
)

// writeFile creates a file under dir, creating parent directories as needed.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestClassify tests coverage classification against a fixed lookup.
func TestClassify(t *testing.T) {
	t.Parallel()

	lookup := model.Lookup{
		"about-us":  "Learn about our team",
		"aboutus":   "Learn about our team",
		"casestudy": "A case study",
	}

	t.Run("inline description always covers", func(t *testing.T) {
		t.Parallel()

		pages := []model.Page{
			{Path: "team.html", Slug: "team", HasInlineDescription: true},
		}

		report := Classify(pages, lookup)
		if report.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", report.TotalPages)
		}
		if report.HasMissing() {
			t.Errorf("unexpected missing entries: %v", report.MissingDescriptions)
		}
	})

	t.Run("lookup entry covers", func(t *testing.T) {
		t.Parallel()

		pages := []model.Page{
			{Path: "about-us.html", Slug: "about-us"},
		}

		report := Classify(pages, lookup)
		if report.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", report.TotalPages)
		}
		if report.HasMissing() {
			t.Errorf("unexpected missing entries: %v", report.MissingDescriptions)
		}
	})

	t.Run("alias entry covers", func(t *testing.T) {
		t.Parallel()

		pages := []model.Page{
			{Path: "casestudy.html", Slug: "casestudy"},
		}

		report := Classify(pages, lookup)
		if report.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", report.TotalPages)
		}
	})

	t.Run("uncovered page is recorded as missing", func(t *testing.T) {
		t.Parallel()

		pages := []model.Page{
			{Path: "contact.html", Slug: "contact"},
		}

		report := Classify(pages, lookup)
		if report.TotalPages != 0 {
			t.Errorf("TotalPages = %d, want 0 (missing pages are not counted)", report.TotalPages)
		}
		if len(report.MissingDescriptions) != 1 {
			t.Fatalf("got %d missing entries, expected 1", len(report.MissingDescriptions))
		}
		entry := report.MissingDescriptions[0]
		if entry.Path != "contact.html" || entry.Slug != "contact" {
			t.Errorf("got %+v, expected contact.html/contact", entry)
		}
	})

	t.Run("adding an inline description never uncovers a page", func(t *testing.T) {
		t.Parallel()

		covered := model.Page{Path: "about-us.html", Slug: "about-us"}
		before := Classify([]model.Page{covered}, lookup)

		covered.HasInlineDescription = true
		after := Classify([]model.Page{covered}, lookup)

		if before.HasMissing() || after.HasMissing() {
			t.Error("page moved to missing after gaining an inline description")
		}
		if before.TotalPages != after.TotalPages {
			t.Errorf("covered count changed: before %d, after %d", before.TotalPages, after.TotalPages)
		}
	})

	t.Run("missing entries are sorted by path", func(t *testing.T) {
		t.Parallel()

		pages := []model.Page{
			{Path: "z.html", Slug: "z"},
			{Path: "a.html", Slug: "a"},
			{Path: "m.html", Slug: "m"},
		}

		report := Classify(pages, lookup)
		if len(report.MissingDescriptions) != 3 {
			t.Fatalf("got %d missing entries, expected 3", len(report.MissingDescriptions))
		}
		for i, want := range []string{"a.html", "m.html", "z.html"} {
			if report.MissingDescriptions[i].Path != want {
				t.Errorf("entry %d path = %q, want %q", i, report.MissingDescriptions[i].Path, want)
			}
		}
	})

	t.Run("empty scan yields an empty report", func(t *testing.T) {
		t.Parallel()

		report := Classify(nil, lookup)
		if report.TotalPages != 0 || report.HasMissing() {
			t.Errorf("got %+v, expected empty report", report)
		}
	})
}

// TestCheckerRun tests the full load-scan-classify flow on disk fixtures.
func TestCheckerRun(t *testing.T) {
	t.Parallel()

	const layoutSource = `<script>
var __layoutPageDescriptionEntries = {
	'about-us': 'Learn about our team',
	'home': 'Welcome to Lumina'
};
</script>`

	t.Run("covered project succeeds with no missing entries", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		layoutPath := writeFile(t, dir, "layout.html", layoutSource)
		writeFile(t, dir, "about-us.html", `include('layout', { pageSlug: 'about-us' })`)
		writeFile(t, dir, "index.html", `include('layout', { pageSlug: 'home' })`)

		result, err := New().Run(dir, layoutPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Report.TotalPages != 2 {
			t.Errorf("TotalPages = %d, want 2", result.Report.TotalPages)
		}
		if result.Report.HasMissing() {
			t.Errorf("unexpected missing entries: %v", result.Report.MissingDescriptions)
		}
		if result.PagesScanned != 2 {
			t.Errorf("PagesScanned = %d, want 2", result.PagesScanned)
		}
	})

	t.Run("uncovered page is reported missing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		layoutPath := writeFile(t, dir, "layout.html", layoutSource)
		writeFile(t, dir, "contact.html", `include('layout', { currentPage: 'contact' })`)

		result, err := New().Run(dir, layoutPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(result.Report.MissingDescriptions) != 1 {
			t.Fatalf("got %d missing entries, expected 1", len(result.Report.MissingDescriptions))
		}
		entry := result.Report.MissingDescriptions[0]
		if entry.Path != "contact.html" || entry.Slug != "contact" {
			t.Errorf("got %+v, expected contact.html/contact", entry)
		}
		if result.Report.TotalPages != 0 {
			t.Errorf("TotalPages = %d, want 0", result.Report.TotalPages)
		}
	})

	t.Run("inline description covers without a lookup entry", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		layoutPath := writeFile(t, dir, "layout.html", layoutSource)
		writeFile(t, dir, "team.html",
			`include('layout', { pageDescription: 'Our team', currentPage: 'team' })`)

		result, err := New().Run(dir, layoutPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if result.Report.TotalPages != 1 {
			t.Errorf("TotalPages = %d, want 1", result.Report.TotalPages)
		}
		if result.Report.HasMissing() {
			t.Errorf("unexpected missing entries: %v", result.Report.MissingDescriptions)
		}
	})

	t.Run("layout without the marker aborts before scanning", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		layoutPath := writeFile(t, dir, "layout.html", `<html>no table</html>`)
		writeFile(t, dir, "index.html", `include('layout', { pageSlug: 'home' })`)

		_, err := New().Run(dir, layoutPath)
		if !errors.Is(err, layout.ErrEntriesNotFound) {
			t.Errorf("got %v, expected ErrEntriesNotFound", err)
		}
	})

	t.Run("layout file itself is scanned but skipped without an include", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		layoutPath := writeFile(t, dir, "layout.html", layoutSource)

		result, err := New().Run(dir, layoutPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PagesScanned != 0 {
			t.Errorf("PagesScanned = %d, want 0", result.PagesScanned)
		}
	})
}
