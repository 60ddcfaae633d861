package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lumina-web/descheck/internal/model"
)

// MarkdownWriter outputs check results in Markdown format.
// This format is designed for CI job summaries and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter

	// titler humanizes slugs for display ("about-us" -> "About Us").
	titler cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		titler:     cases.Title(language.English),
	}
}

// Write outputs the check result in Markdown format.
func (w *MarkdownWriter) Write(result *model.CheckResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSummary(md, result)
	w.writeMissing(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with run information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.CheckResult) {
	md.H1("Page Description Coverage")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Project Root", "`" + result.Root + "`"},
			{"Layout Template", "`" + result.LayoutPath + "`"},
			{"Checked At", result.CheckedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", result.Duration.String()},
		},
	})
	md.PlainText("")
}

// writeSummary writes the coverage summary with a distribution chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, result *model.CheckResult) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Pages Scanned", strconv.Itoa(result.PagesScanned)},
			{"Covered", strconv.Itoa(result.CoveredCount())},
			{"Missing", strconv.Itoa(result.MissingCount())},
			{"Lookup Entries", strconv.Itoa(result.LookupEntries)},
		},
	})
	md.PlainText("")

	if result.PagesScanned > 0 {
		w.writePieChart(md, result)
	}

	switch {
	case result.Report.HasMissing():
		md.Warningf("%d page(s) are missing a description. Add an inline pageDescription or a lookup-table entry.",
			result.MissingCount())
	case result.PagesScanned == 0:
		md.Note("No pages include the shared layout under this root.")
	default:
		md.Tip("Every layout page resolves to a description.")
	}
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of covered vs missing pages.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, result *model.CheckResult) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Description Coverage"),
		piechart.WithShowData(true),
	)

	if covered := result.CoveredCount(); covered > 0 {
		chart.LabelAndIntValue("Covered", uint64(covered))
	}
	if missing := result.MissingCount(); missing > 0 {
		chart.LabelAndIntValue("Missing", uint64(missing))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeMissing writes the table of pages missing a description.
func (w *MarkdownWriter) writeMissing(md *markdown.Markdown, result *model.CheckResult) {
	md.H2("Missing Descriptions")
	md.PlainText("")

	if !result.Report.HasMissing() {
		md.PlainText("None.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, result.MissingCount())
	for _, entry := range result.Report.MissingDescriptions {
		rows = append(rows, []string{
			w.humanizeSlug(entry.Slug),
			"`" + entry.Slug + "`",
			"`" + entry.Path + "`",
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Page", "Slug", "Path"},
		Rows:   rows,
	})
	md.PlainText("")
}

// humanizeSlug renders a slug as a display title ("about-us" -> "About Us").
func (w *MarkdownWriter) humanizeSlug(slug string) string {
	return w.titler.String(strings.ReplaceAll(slug, "-", " "))
}
