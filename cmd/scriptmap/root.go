package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for scriptmap.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scriptmap",
		Short: "Map and classify the JavaScript dependencies of a web page",
		Long: `scriptmap inventories the JavaScript resources referenced by a web page
or codebase and classifies them for security review.

It extracts script URLs from a static text corpus (bare URLs or HTML
<script> tags), classifies each by vendor category, labels it first- or
third-party relative to a primary domain, and generates Markdown reports
for risk discussions and CSP hardening. No network requests are made.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCompareCmd())
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
