package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperdb/internal/config"
	"github.com/pdiddy/paperdb/internal/preview"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the stored configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}

			w := cmd.OutOrStdout()
			preview.Banner(w, "paperdb config")
			preview.Note(w, "%s", opts.configPath)
			fmt.Fprint(w, string(data))
			return nil
		},
	}
}
