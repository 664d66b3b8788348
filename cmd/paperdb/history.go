package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdb/internal/history"
	"github.com/pdiddy/paperdb/internal/preview"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent fetches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := history.Open(history.PathFor(opts.configPath))
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			preview.History(cmd.OutOrStdout(), records)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of fetches to list")
	return cmd
}
