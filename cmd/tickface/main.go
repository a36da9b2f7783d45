// Package main is the entry point for the tickface CLI.
//
// TickFace can be embedded as a library (SDK) or run as a standalone
// binary with YAML configuration. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	tickface run                    # Open a clock window with defaults
//	tickface run -c config.yaml     # Open a clock window from config
//	tickface validate -c config.yaml
//	tickface version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "tickface",
	Short: "A reactive analog clock widget",
	Long: `TickFace renders an interactive analog clock in a window.

The clock adapts its redraw cadence to its configuration: with the
second hand visible it redraws at the configured maximum refresh
interval, without it the loop throttles down automatically.

Quick start:
  1. Run: tickface run
  2. Press S to toggle the second hand, R to cycle the time rate

Example config:
  label: Wall Clock
  timezone: Europe/London
  max_refresh: 32ms
  state_file: ~/.tickface/state.json`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this tickface binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tickface %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
