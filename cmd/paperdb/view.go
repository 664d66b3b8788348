package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdb/internal/config"
	"github.com/pdiddy/paperdb/internal/output"
	"github.com/pdiddy/paperdb/internal/preview"
)

func newViewCmd(opts *rootOptions) *cobra.Command {
	var (
		style string
		width int
	)

	cmd := &cobra.Command{
		Use:   "view [path]",
		Short: "Read the Markdown file in the terminal",
		Long: `View renders the fetched Markdown document for the terminal. Without an
argument it opens the output path saved by init, else ./PaperDB.md.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var arg, configured string
			if len(args) == 1 {
				arg = args[0]
			} else {
				cfg, err := config.Load(opts.configPath)
				if err != nil && !errors.Is(err, config.ErrNotInitialized) {
					return err
				}
				configured = cfg.Out
			}

			path, err := output.Resolve(arg, configured)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}

			out, err := preview.Document(string(data), width, style)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&style, "style", "auto", "glamour style: auto, dark, light, notty, ...")
	cmd.Flags().IntVar(&width, "width", 100, "word-wrap width")

	return cmd
}
