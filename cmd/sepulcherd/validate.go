package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"sepulcher/pkg/cli"
	"sepulcher/pkg/collections"
	"sepulcher/pkg/config"
)

var validateFlags struct {
	inline string
	file   string
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a collections definition",
	Long: `Parse a collections definition — either an inline string or a file, in the
same "name=count:window,..." syntax the server itself accepts — and report
any errors without starting the server.

Examples:
  # Validate an inline definition
  sepulcherd validate --collections "logins=5:1m,signups=1:1h"

  # Validate a file, printed as JSON
  sepulcherd validate --file collections.txt --format json`,
	RunE: validateCollections,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFlags.inline, "collections", "", "inline collections definition")
	validateCmd.Flags().StringVar(&validateFlags.file, "file", "", "collections definition file")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "text", "output format: text, json")
}

func validateCollections(cmd *cobra.Command, args []string) error {
	if validateFlags.inline == "" && validateFlags.file == "" {
		return cli.NewCommandError("validate", fmt.Errorf("one of --collections or --file is required"))
	}

	cfg := &config.CollectionsConfig{
		Inline: validateFlags.inline,
		File:   validateFlags.file,
	}

	set, err := loadCollections(cfg)
	if err != nil {
		return cli.NewCommandError("validate", err)
	}

	formatter := cli.NewFormatter(cli.OutputFormat(validateFlags.format))
	return formatter.FormatTo(cmd.OutOrStdout(), summarize(set))
}

type collectionSummary struct {
	Name       string `json:"name"`
	CountLimit uint64 `json:"count_limit"`
	Window     string `json:"window"`
}

func summarize(set *collections.Set) []collectionSummary {
	names := make([]string, 0, len(set.Collections))
	for name := range set.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]collectionSummary, 0, len(names))
	for _, name := range names {
		c := set.Collections[name]
		out = append(out, collectionSummary{Name: c.Name, CountLimit: c.CountLimit, Window: c.Window.String()})
	}
	return out
}
