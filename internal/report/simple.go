package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/lumina-web/descheck/internal/model"
)

// SimpleWriter outputs human-readable text reports.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose lists every scanned page, not just the missing ones.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-page detail in the output.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the check result in human-readable format.
func (w *SimpleWriter) Write(result *model.CheckResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeSummary(&sb, result)

	if result.Report.HasMissing() {
		w.writeMissing(&sb, result)
	}
	if w.verbose {
		w.writePages(&sb, result)
	}

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report title and run metadata.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.CheckResult) {
	title := "Page Description Coverage"
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	fmt.Fprintf(sb, "Project root: %s\n", result.Root)
	fmt.Fprintf(sb, "Layout:       %s\n", result.LayoutPath)
	if !result.CheckedAt.IsZero() {
		fmt.Fprintf(sb, "Checked at:   %s\n", result.CheckedAt.Format(time.RFC3339))
	}
	sb.WriteString("\n")
}

// writeSummary writes the scanned/covered/missing counts. Unlike the JSON
// contract's total_pages, these three numbers are self-explanatory.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, result *model.CheckResult) {
	fmt.Fprintf(sb, "Pages scanned:  %d\n", result.PagesScanned)
	fmt.Fprintf(sb, "Covered:        %d\n", result.CoveredCount())
	fmt.Fprintf(sb, "Missing:        %d\n", result.MissingCount())
	fmt.Fprintf(sb, "Lookup entries: %d\n\n", result.LookupEntries)

	if !result.Report.HasMissing() {
		sb.WriteString("All layout pages resolve to a description.\n")
	}
}

// writeMissing writes one line per page missing a description.
func (w *SimpleWriter) writeMissing(sb *strings.Builder, result *model.CheckResult) {
	sb.WriteString("Missing descriptions:\n")
	for _, entry := range result.Report.MissingDescriptions {
		fmt.Fprintf(sb, "  - %s (slug: %s)\n", entry.Path, entry.Slug)
	}
	sb.WriteString("\n")
}

// writePages writes the full page listing for verbose output.
func (w *SimpleWriter) writePages(sb *strings.Builder, result *model.CheckResult) {
	if len(result.Pages) == 0 {
		return
	}

	missing := make(map[string]bool, len(result.Report.MissingDescriptions))
	for _, entry := range result.Report.MissingDescriptions {
		missing[entry.Path] = true
	}

	sb.WriteString("Scanned pages:\n")
	for _, page := range result.Pages {
		var source string
		switch {
		case page.HasInlineDescription:
			source = "inline"
		case missing[page.Path]:
			source = "missing"
		default:
			source = "lookup"
		}
		fmt.Fprintf(sb, "  %-40s slug=%-24s source=%s\n", page.Path, page.Slug, source)
	}
	sb.WriteString("\n")
}
