// Package main provides the entry point for the descheck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for descheck.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "descheck",
		Short: "Page description coverage checker for shared-layout static sites",
		Long: `descheck validates that every HTML page including the shared layout
template resolves to a non-empty page description. Pages can supply a
description inline at the include call site, or rely on the centralized
slug-to-description table embedded in the layout template.

Run it from CI to catch pages that would otherwise ship with silently
empty meta descriptions.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
