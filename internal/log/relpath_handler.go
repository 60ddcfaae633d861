package log

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

// RelPathHandler wraps an slog.Handler to rewrite absolute file paths under
// the project root into root-relative form. Check runs are often executed
// from CI working directories with long absolute prefixes; stripping the
// prefix keeps log lines stable across checkouts and easy to diff.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Components only ever see a plain *slog.Logger
type RelPathHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler

	// root is the absolute project root whose prefix is stripped.
	root string
}

// NewRelPathHandler creates a RelPathHandler wrapping the given handler.
// Paths are rewritten relative to root; a root that cannot be made absolute
// disables rewriting. If handler is nil, slog.Default().Handler() is used.
func NewRelPathHandler(handler slog.Handler, root string) *RelPathHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = ""
	}
	return &RelPathHandler{handler: handler, root: absRoot}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *RelPathHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's attributes and passes it on.
func (h *RelPathHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *RelPathHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &RelPathHandler{handler: h.handler.WithAttrs(rewritten), root: h.root}
}

// WithGroup returns a new handler with the given group name.
func (h *RelPathHandler) WithGroup(name string) slog.Handler {
	return &RelPathHandler{handler: h.handler.WithGroup(name), root: h.root}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *RelPathHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() == slog.KindString {
		if rewritten, ok := h.relativize(a.Value.String()); ok {
			return slog.String(a.Key, rewritten)
		}
	}

	return a
}

// relativize converts an absolute path under the root to root-relative form.
// The second return value is false when the value is left untouched.
func (h *RelPathHandler) relativize(value string) (string, bool) {
	if h.root == "" || !filepath.IsAbs(value) {
		return "", false
	}
	rel, err := filepath.Rel(h.root, value)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// NewLogger creates a *slog.Logger writing text records to w, with path
// rewriting relative to root.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - root: The project root used for path rewriting
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, root string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewRelPathHandler(textHandler, root))
}
