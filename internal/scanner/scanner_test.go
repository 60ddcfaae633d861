package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/lumina-web/descheck/internal/model"
)

// writeFile creates a file under dir, creating parent directories as needed.
func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// scanSorted runs a scan and returns the records sorted by path for stable
// assertions.
func scanSorted(t *testing.T, s *Scanner, root string) []model.Page {
	t.Helper()

	pages, err := s.Scan(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Path < pages[j].Path })
	return pages
}

// TestScannerScan tests page discovery and record extraction.
func TestScannerScan(t *testing.T) {
	t.Parallel()

	t.Run("skips files without the layout include", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "plain.html", `<html><body>No include here</body></html>`)
		writeFile(t, dir, "page.html", `<html>include('layout', { pageSlug: 'page' })</html>`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Path != "page.html" {
			t.Errorf("got path %q, expected page.html", pages[0].Path)
		}
	})

	t.Run("non-html files are not candidates", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "page.txt", `include('layout', { pageSlug: 'page' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 0 {
			t.Fatalf("got %d pages, expected 0", len(pages))
		}
	})

	t.Run("pageSlug takes priority over currentPage", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "page.html",
			`include('layout', { currentPage: 'secondary', pageSlug: 'primary' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Slug != "primary" {
			t.Errorf("got slug %q, expected primary", pages[0].Slug)
		}
	})

	t.Run("currentPage is used when pageSlug is absent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "contact.html", `include('layout', { currentPage: 'contact' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Slug != "contact" {
			t.Errorf("got slug %q, expected contact", pages[0].Slug)
		}
	})

	t.Run("fallback operator takes the right-hand operand", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "page.html",
			`include('layout', { pageSlug: (someVar || 'fallback-slug') })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Slug != "fallback-slug" {
			t.Errorf("got slug %q, expected fallback-slug", pages[0].Slug)
		}
	})

	t.Run("file name is the slug of last resort", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "About Us.html", `include('layout', { pageTitle: 'About' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Slug != "about-us" {
			t.Errorf("got slug %q, expected about-us", pages[0].Slug)
		}
	})

	t.Run("empty slug property falls through to the next source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "team.html",
			`include('layout', { pageSlug: '', currentPage: 'team' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Slug != "team" {
			t.Errorf("got slug %q, expected team", pages[0].Slug)
		}
	})

	t.Run("detects inline descriptions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "with.html",
			`include('layout', { pageDescription: 'Our team', currentPage: 'team' })`)
		writeFile(t, dir, "without.html", `include('layout', { currentPage: 'team' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 2 {
			t.Fatalf("got %d pages, expected 2", len(pages))
		}
		if !pages[0].HasInlineDescription {
			t.Error("with.html should report an inline description")
		}
		if pages[1].HasInlineDescription {
			t.Error("without.html should not report an inline description")
		}
	})

	t.Run("matches a multiline property block", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "page.html", `<html>
include('layout', {
	pageTitle: 'Pricing',
	pageSlug: 'pricing',
	pageDescription: 'Plans and pricing'
})
</html>`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Slug != "pricing" {
			t.Errorf("got slug %q, expected pricing", pages[0].Slug)
		}
		if !pages[0].HasInlineDescription {
			t.Error("expected inline description to be detected")
		}
	})

	t.Run("walks nested directories and reports relative paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "index.html", `include('layout', { pageSlug: 'home' })`)
		writeFile(t, dir, filepath.Join("docs", "guide.html"),
			`include('layout', { pageSlug: 'guide' })`)

		pages := scanSorted(t, NewScanner(), dir)
		if len(pages) != 2 {
			t.Fatalf("got %d pages, expected 2", len(pages))
		}
		if pages[0].Path != "docs/guide.html" {
			t.Errorf("got path %q, expected docs/guide.html", pages[0].Path)
		}
		if pages[1].Path != "index.html" {
			t.Errorf("got path %q, expected index.html", pages[1].Path)
		}
	})

	t.Run("ignore patterns skip whole directories", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "index.html", `include('layout', { pageSlug: 'home' })`)
		writeFile(t, dir, filepath.Join("node_modules", "dep.html"),
			`include('layout', { pageSlug: 'dep' })`)

		s := NewScanner(WithIgnorePatterns([]string{"node_modules"}))
		pages := scanSorted(t, s, dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
		if pages[0].Path != "index.html" {
			t.Errorf("got path %q, expected index.html", pages[0].Path)
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "page.htm", `include('layout', { pageSlug: 'page' })`)

		s := NewScanner(WithExtensions([]string{".htm"}))
		pages := scanSorted(t, s, dir)
		if len(pages) != 1 {
			t.Fatalf("got %d pages, expected 1", len(pages))
		}
	})

	t.Run("missing root aborts the scan", func(t *testing.T) {
		t.Parallel()

		_, err := NewScanner().Scan(filepath.Join(t.TempDir(), "does-not-exist"))
		if err == nil {
			t.Error("expected error for missing root, got nil")
		}
	})
}

// TestResolveSlugCandidate tests raw slug extraction from property blocks.
func TestResolveSlugCandidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		block string
		want  string
	}{
		{
			name:  "plain quoted value",
			block: `pageSlug: 'about-us'`,
			want:  "about-us",
		},
		{
			name:  "double quoted value",
			block: `pageSlug: "about-us"`,
			want:  "about-us",
		},
		{
			name:  "fallback operator right operand",
			block: `pageSlug: (someVar || 'fallback-slug')`,
			want:  "fallback-slug",
		},
		{
			name:  "no slug properties",
			block: `pageTitle: 'About'`,
			want:  "",
		},
		{
			name:  "whitespace trimmed",
			block: `currentPage:   'contact'  `,
			want:  "contact",
		},
	}

	s := NewScanner()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := s.resolveSlugCandidate(tt.block); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
