// Package cli implements the amrsim command line interface. Every command
// is a thin consumer of the simulation engine's public surface: commands
// tick the fleet, read status snapshots, and invoke fleet capabilities, but
// contain no simulation logic of their own.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information injected via ldflags.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "amrsim",
	Short: "AMR fleet simulator - autonomous mobile robots on a 2D plane",
	Long: `amrsim simulates a fleet of autonomous mobile robots executing pickup,
delivery, inspection, and cleaning jobs on a bounded 2D plane, with battery
consumption, charging stations, and priority-based task dispatch.

It provides commands for running headless simulations, watching a live
fleet view, and bootstrapping configuration and scenario files.`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("amrsim %s\ncommit: %s\nbuilt:  %s\n", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
