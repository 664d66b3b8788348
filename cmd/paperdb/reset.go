package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdb/internal/config"
)

func newResetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the stored configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.Reset(opts.configPath)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(cmd.OutOrStdout(), "Deleted config.")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No config found.")
			}
			return nil
		},
	}
}
