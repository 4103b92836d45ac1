// Command pickpulse serves and runs the decision engine and the grading
// aggregator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "pickpulse",
		Short:         "Daily pick decisions and performance grading",
		Long:          `Builds ranked daily pick slates from model output and grades settled picks into performance reports.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")

	root.AddCommand(
		newServeCmd(&configFile),
		newSlateCmd(&configFile),
		newGradeCmd(&configFile),
	)
	return root
}
