// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paperdb CLI, which keeps an
// offline Markdown copy of a public spreadsheet.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdb/internal/config"
	"github.com/pdiddy/paperdb/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	secretsDir string
}

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "paperdb",
		Short: "Keep an offline Markdown copy of a public spreadsheet",
		Long: `paperdb fetches a public spreadsheet and writes it as a Markdown table for
offline reading.

Run init once with the sheet ID (or its sharing link), then run fetch whenever
the sheet changes:

  paperdb init 1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms --out ~/notes/PaperDB.md
  paperdb fetch`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.configPath != "" {
				return nil
			}
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			opts.configPath = path
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: <user config dir>/paperdb/config.yaml)")
	root.PersistentFlags().StringVar(&opts.secretsDir, "secrets-dir", secrets.DefaultDir, "directory holding the google-api-key file for the api backend")

	root.AddCommand(
		newInitCmd(opts),
		newFetchCmd(opts),
		newConfigCmd(opts),
		newResetCmd(opts),
		newViewCmd(opts),
		newHistoryCmd(opts),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
