package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values. These describe the layout convention the
// checker was written for; everything can be overridden via the config file
// or CLI flags.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "descheck"

	// DefaultRoot is the project root scanned when none is given. The tool
	// is a build-time check meant to run from the project checkout, so the
	// current directory is the natural default.
	DefaultRoot = "."

	// DefaultLayoutFile is the layout template file name, resolved relative
	// to the project root unless an absolute path is configured.
	DefaultLayoutFile = "layout.html"

	// DefaultEntriesMarker is the variable name introducing the
	// description table in the layout template.
	DefaultEntriesMarker = "__layoutPageDescriptionEntries"

	// DefaultDescriptionProperty is the include-call property that marks an
	// inline description.
	DefaultDescriptionProperty = "pageDescription"
)

// DefaultExtensions are the file extensions scanned by default.
var DefaultExtensions = []string{".html"}

// DefaultSlugProperties is the priority-ordered property list used for slug
// resolution.
var DefaultSlugProperties = []string{"pageSlug", "currentPage"}

// DefaultIgnorePatterns are directory names skipped during the walk. These
// are dependency and VCS trees that can contain HTML files which are not
// site pages.
var DefaultIgnorePatterns = []string{"node_modules", ".git"}

// Config holds all configuration options for a check run.
// This struct is designed to be populated from CLI flags and the project
// config file, then passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// Root is the project root directory to scan.
	Root string

	// LayoutPath is the layout template containing the description table.
	// Relative paths are resolved against Root.
	LayoutPath string

	// ConfigFilePath is the path to the project configuration file.
	// If empty, the tool searches for .descheck in the project root and
	// then in the user's home directory.
	ConfigFilePath string

	// Extensions are the file extensions treated as pages.
	Extensions []string

	// IgnorePatterns are glob patterns for directories and files to skip.
	IgnorePatterns []string

	// EntriesMarker is the variable name delimiting the description table.
	EntriesMarker string

	// SlugProperties is the priority-ordered include-call property list
	// consulted for slug resolution.
	SlugProperties []string

	// DescriptionProperty is the include-call property marking an inline
	// description.
	DescriptionProperty string

	// MarkdownReport switches stdout to Markdown instead of the JSON
	// report contract. Mutually exclusive with TextReport.
	MarkdownReport bool

	// TextReport switches stdout to the human-readable text report.
	// Mutually exclusive with MarkdownReport.
	TextReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// SaveToDB records the run in the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Root:                DefaultRoot,
		LayoutPath:          DefaultLayoutFile,
		Extensions:          DefaultExtensions,
		IgnorePatterns:      DefaultIgnorePatterns,
		EntriesMarker:       DefaultEntriesMarker,
		SlugProperties:      DefaultSlugProperties,
		DescriptionProperty: DefaultDescriptionProperty,
		SaveToDB:            true,
		DBDir:               XDGDataDir(),
	}
}

// ResolvedLayoutPath returns the layout template path resolved against the
// project root when it is relative.
func (c *Config) ResolvedLayoutPath() string {
	if c.LayoutPath == "" || filepath.IsAbs(c.LayoutPath) {
		return c.LayoutPath
	}
	return filepath.Join(c.Root, c.LayoutPath)
}

// Validate checks if the configuration is valid.
// It returns the first error found; fixing one error often makes others
// irrelevant. Called once after flag and file merging, before any scanning.
func (c *Config) Validate() error {
	if c.Root == "" {
		return ErrNoRoot
	}
	if c.LayoutPath == "" {
		return ErrNoLayout
	}
	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	if c.MarkdownReport && c.TextReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGDataDir returns the XDG data directory for descheck.
// On Linux: ~/.local/share/descheck
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for descheck.
// On Linux: ~/.config/descheck
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for descheck.
// On Linux: ~/.cache/descheck
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
