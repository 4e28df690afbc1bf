package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sepulcherd",
	Short: "sepulcherd - sharded, time-windowed rate-limit counter service",
	Long: `sepulcherd serves rate-limit decisions over HTTP: GET /rate/{collection}/{key}
increments a sliding count for key within collection and reports whether it
is still within the collection's configured limit.

Collections (name, count limit, window) are defined inline or in a file and
may be hot-reloaded. An optional context-linking layer combines several
collections' totals into one decision, and an optional audit trail records
every decision for later inspection.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
