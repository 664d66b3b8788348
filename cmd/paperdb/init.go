package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperdb/internal/pipeline"
	"github.com/pdiddy/paperdb/internal/preview"
	"github.com/pdiddy/paperdb/pkg/types"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	var (
		sheetID       string
		out           string
		gid           string
		backend       string
		fill          string
		keepUnnamed   bool
		keepBlankRows bool
		noStrip       bool
	)

	cmd := &cobra.Command{
		Use:   "init <sheet-id|link>",
		Short: "Save the spreadsheet to fetch (one-time setup)",
		Long: `Init stores the spreadsheet identifier used by fetch. It accepts the bare ID
or the full sharing link; a gid in the link selects that tab. Running init
again replaces the stored configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identifier := sheetID
			if len(args) == 1 {
				if sheetID != "" {
					return fmt.Errorf("give the sheet ID either as an argument or with --sheet-id, not both")
				}
				identifier = args[0]
			}
			if identifier == "" {
				return fmt.Errorf("provide a sheet ID or sharing link")
			}

			clean := types.DefaultCleanConfig()
			clean.StripWhitespace = !noStrip
			clean.DropUnnamed = !keepUnnamed
			clean.DropBlankRows = !keepBlankRows
			clean.Fill = fill

			cfg, err := pipeline.Init(opts.configPath, identifier, types.Config{
				Out:     out,
				GID:     gid,
				Backend: types.Backend(backend),
				Clean:   clean,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			preview.Banner(w, "paperdb init")
			fmt.Fprintf(w, "Saved config to %s:\n", opts.configPath)
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprint(w, string(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetID, "sheet-id", "", "sheet ID or sharing link (alternative to the positional argument)")
	cmd.Flags().StringVar(&out, "out", "", "default output Markdown file (default ./PaperDB.md)")
	cmd.Flags().StringVar(&gid, "gid", "", "worksheet tab gid (default: first tab)")
	cmd.Flags().StringVar(&backend, "backend", string(types.BackendCSV), "fetch backend: csv, xlsx, or api")
	cmd.Flags().StringVar(&fill, "fill", "", "text written into empty cells (e.g. \"No\")")
	cmd.Flags().BoolVar(&keepUnnamed, "keep-unnamed", false, "keep columns with a blank header")
	cmd.Flags().BoolVar(&keepBlankRows, "keep-blank-rows", false, "keep rows whose cells are all empty")
	cmd.Flags().BoolVar(&noStrip, "no-strip", false, "keep leading and trailing whitespace in cells")

	return cmd
}
