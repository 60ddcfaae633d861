package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumina-web/descheck/internal/config"
	"github.com/lumina-web/descheck/internal/database"
	"github.com/lumina-web/descheck/internal/model"
)

// NewHistoryCmd creates the history command.
// This command inspects check runs recorded in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [project-root]",
		Short: "Show recorded check runs and diff the latest two",
		Long: `History reads past check runs from the local history database.

By default it compares the two most recent runs for the project and
shows which pages became missing and which were fixed in between.
Runs are recorded automatically by 'descheck check' unless --no-save
is used.

Examples:
  # Diff the latest two runs for the current project
  descheck history

  # List recorded runs for a project
  descheck history ./site --list

  # List every project present in the database
  descheck history --projects

  # Machine-readable diff
  descheck history --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "L", false,
		"List recorded runs for the project instead of diffing")
	cmd.Flags().IntP("limit", "n", 10,
		"Maximum number of runs to list (0 for all)")
	cmd.Flags().Bool("projects", false,
		"List all projects present in the history database")
	cmd.Flags().BoolP("json", "j", false,
		"Output in JSON format")

	return cmd
}

// historyDiff is the comparison between two recorded runs.
type historyDiff struct {
	// ProjectRoot is the project both runs belong to.
	ProjectRoot string `json:"project_root"`

	// Previous and Latest identify the compared runs.
	PreviousID int64     `json:"previous_id"`
	PreviousAt time.Time `json:"previous_at"`
	LatestID   int64     `json:"latest_id"`
	LatestAt   time.Time `json:"latest_at"`

	// Regressed lists pages missing now that were covered before.
	Regressed []model.MissingEntry `json:"regressed"`

	// Fixed lists pages covered now that were missing before.
	Fixed []model.MissingEntry `json:"fixed"`

	// StillMissing lists pages missing in both runs.
	StillMissing []model.MissingEntry `json:"still_missing"`
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listProjects, err := cmd.Flags().GetBool("projects")
	if err != nil {
		return err
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listProjects {
		return printProjects(ctx, db, jsonOutput)
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	if listRuns {
		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			return err
		}
		return printRunList(ctx, db, root, limit, jsonOutput)
	}

	return printLatestDiff(ctx, db, root, jsonOutput)
}

// printProjects lists every project root present in the database.
func printProjects(ctx context.Context, db *database.RunDB, jsonOutput bool) error {
	roots, err := db.ListProjects(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(roots)
	}

	if len(roots) == 0 {
		fmt.Println("No recorded check runs.")
		return nil
	}
	for _, root := range roots {
		fmt.Println(root)
	}
	return nil
}

// printRunList lists recorded runs for one project, newest first.
func printRunList(ctx context.Context, db *database.RunDB, root string, limit int, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, root, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(runs)
	}

	if len(runs) == 0 {
		fmt.Printf("No recorded check runs for %s.\n", root)
		return nil
	}

	fmt.Printf("Check runs for %s:\n\n", root)
	fmt.Printf("%-6s %-25s %8s %8s %8s\n", "ID", "Checked at", "Scanned", "Covered", "Missing")
	for _, run := range runs {
		fmt.Printf("%-6d %-25s %8d %8d %8d\n",
			run.ID,
			run.CheckedAt.Local().Format("2006-01-02 15:04:05"),
			run.PagesScanned,
			run.Covered,
			run.Missing,
		)
	}
	return nil
}

// printLatestDiff compares the latest two runs for one project.
func printLatestDiff(ctx context.Context, db *database.RunDB, root string, jsonOutput bool) error {
	runs, err := db.ListRuns(ctx, root, 2)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return fmt.Errorf("need at least two recorded runs for %s to compare (found %d); run 'descheck check' first", root, len(runs))
	}

	diff := diffRuns(runs[1], runs[0])

	if jsonOutput {
		return printJSON(diff)
	}

	fmt.Printf("Comparing runs %d (%s) -> %d (%s) for %s\n\n",
		diff.PreviousID, diff.PreviousAt.Local().Format("2006-01-02 15:04:05"),
		diff.LatestID, diff.LatestAt.Local().Format("2006-01-02 15:04:05"),
		diff.ProjectRoot,
	)

	printEntrySection("Regressed (newly missing)", diff.Regressed)
	printEntrySection("Fixed", diff.Fixed)
	printEntrySection("Still missing", diff.StillMissing)

	if len(diff.Regressed) == 0 && len(diff.StillMissing) == 0 {
		fmt.Println("Coverage is clean in the latest run.")
	}
	return nil
}

// printEntrySection prints one titled list of entries, skipping empty lists.
func printEntrySection(title string, entries []model.MissingEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("%s:\n", title)
	for _, entry := range entries {
		fmt.Printf("  - %s (slug: %s)\n", entry.Path, entry.Slug)
	}
	fmt.Println()
}

// diffRuns classifies missing entries between a previous and a latest run.
// Entries are keyed by path: a page renamed between runs shows up as one
// regression and one fix, which matches how reviewers read the report.
func diffRuns(previous, latest database.RunSummary) historyDiff {
	diff := historyDiff{
		ProjectRoot:  latest.ProjectRoot,
		PreviousID:   previous.ID,
		PreviousAt:   previous.CheckedAt,
		LatestID:     latest.ID,
		LatestAt:     latest.CheckedAt,
		Regressed:    []model.MissingEntry{},
		Fixed:        []model.MissingEntry{},
		StillMissing: []model.MissingEntry{},
	}

	previousMissing := make(map[string]bool, len(previous.MissingEntries))
	for _, entry := range previous.MissingEntries {
		previousMissing[entry.Path] = true
	}
	latestMissing := make(map[string]bool, len(latest.MissingEntries))
	for _, entry := range latest.MissingEntries {
		latestMissing[entry.Path] = true
	}

	for _, entry := range latest.MissingEntries {
		if previousMissing[entry.Path] {
			diff.StillMissing = append(diff.StillMissing, entry)
		} else {
			diff.Regressed = append(diff.Regressed, entry)
		}
	}
	for _, entry := range previous.MissingEntries {
		if !latestMissing[entry.Path] {
			diff.Fixed = append(diff.Fixed, entry)
		}
	}

	return diff
}

// printJSON pretty-prints a value as JSON to stdout.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
