package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumina-web/descheck/internal/checker"
	"github.com/lumina-web/descheck/internal/config"
	"github.com/lumina-web/descheck/internal/database"
	"github.com/lumina-web/descheck/internal/layout"
	"github.com/lumina-web/descheck/internal/log"
	"github.com/lumina-web/descheck/internal/model"
	"github.com/lumina-web/descheck/internal/report"
	"github.com/lumina-web/descheck/internal/scanner"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [project-root]",
		Short: "Check description coverage for all layout pages",
		Long: `Check scans the project tree for HTML files that include the shared
layout template and verifies each one resolves to a non-empty page
description, either inline at the include call site or through the
lookup table in the layout template.

The report is printed to stdout as a JSON object with sorted keys:
  {"missing_descriptions": [[path, slug], ...], "total_pages": n}
Note that total_pages counts covered pages only; this is the documented
contract. One line per missing page is written to stderr, and the exit
status is 1 when any page is missing a description.

Examples:
  # Check the current directory
  descheck check

  # Check a specific checkout with a non-default layout location
  descheck check ./site --layout templates/layout.html

  # Human-readable output instead of JSON
  descheck check --text

  # Markdown output for a CI job summary
  descheck check --markdown -o coverage.md

  # Use a custom configuration file
  descheck check -c .descheck.ci

Configuration file (.descheck) example:
  layout: layout.html
  extensions: [".html"]
  ignorePatterns: ["node_modules", ".git", "dist"]
  entriesMarker: __layoutPageDescriptionEntries
  slugProperties: [pageSlug, currentPage]
  descriptionProperty: pageDescription`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCheckCmd,
	}

	// Scan configuration flags
	cmd.Flags().StringP("layout", "l", "",
		"Layout template path (default: layout.html under the project root)")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .descheck in the project root or home directory)")

	// Report flags
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report instead of JSON (mutually exclusive with --text)")
	cmd.Flags().BoolP("text", "t", false,
		"Output human-readable text report instead of JSON (mutually exclusive with --markdown)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not record this run in the history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging with project-relative paths
	logger := log.NewLogger(os.Stderr, cfg.Root, cfg.Verbose)
	slog.SetDefault(logger)

	return runCheck(cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from the project config file and cobra flags.
// Flags take precedence over file values, which take precedence over
// defaults.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	if len(args) > 0 {
		cfg.Root = args[0]
	}

	// The root doubles as the history key, so make it unambiguous.
	absRoot, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project root: %w", err)
	}
	cfg.Root = absRoot

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Merge the project config file if one is found.
	// If the user explicitly specified a path, it must exist.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath, cfg.Root)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(cf)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	layoutPath, err := cmd.Flags().GetString("layout")
	if err != nil {
		return nil, err
	}
	if layoutPath != "" {
		cfg.LayoutPath = layoutPath
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.TextReport, err = cmd.Flags().GetBool("text")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// runCheck executes one full check run and handles reporting, history, and
// the process exit contract.
func runCheck(cfg *config.Config, logger *slog.Logger) error {
	chk := checker.New(
		checker.WithLoader(layout.NewLoader(
			layout.WithMarker(cfg.EntriesMarker),
		)),
		checker.WithScanner(scanner.NewScanner(
			scanner.WithExtensions(cfg.Extensions),
			scanner.WithIgnorePatterns(cfg.IgnorePatterns),
			scanner.WithSlugProperties(cfg.SlugProperties),
			scanner.WithDescriptionProperty(cfg.DescriptionProperty),
			scanner.WithLogger(logger),
		)),
		checker.WithLogger(logger),
	)

	// A failure here is fatal configuration territory: unreadable layout,
	// missing entries marker, or an unscannable tree. No report is produced.
	result, err := chk.Run(cfg.Root, cfg.ResolvedLayoutPath())
	if err != nil {
		return err
	}

	if err := outputReport(cfg, result); err != nil {
		return err
	}

	if cfg.SaveToDB {
		if err := saveCheckResult(cfg, result, logger); err != nil {
			// History is best effort; a broken database must not flip the
			// coverage verdict.
			logger.Error("failed to save check result", "error", err)
		}
	}

	if result.Report.HasMissing() {
		for _, entry := range result.Report.MissingDescriptions {
			fmt.Fprintln(os.Stderr, entry.String())
		}
		return fmt.Errorf("%d page(s) missing a description", result.MissingCount())
	}

	return nil
}

// outputReport writes the report in the requested format.
func outputReport(cfg *config.Config, result *model.CheckResult) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.Create(cfg.ReportFile) //nolint:gosec // User-chosen report destination
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	case cfg.TextReport:
		writer = report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
	default:
		// The CI contract: pretty-printed JSON with sorted keys.
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	}

	_, err := writer.Write(result)
	return err
}

// saveCheckResult records the run in the history database.
func saveCheckResult(cfg *config.Config, result *model.CheckResult, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveResult(context.Background(), result)
	if err != nil {
		return err
	}

	logger.Info("check result saved", "id", id, "db", db.Path())
	return nil
}
