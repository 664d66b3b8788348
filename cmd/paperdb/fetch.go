package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paperdb/internal/history"
	"github.com/pdiddy/paperdb/internal/pipeline"
	"github.com/pdiddy/paperdb/internal/preview"
	"github.com/pdiddy/paperdb/internal/secrets"
	"github.com/pdiddy/paperdb/internal/sheet"
	"github.com/pdiddy/paperdb/pkg/types"
)

const (
	defaultTimeout     = 60 * time.Second
	defaultUserAgent   = "paperdb/0.1"
	defaultPreviewRows = 10
)

// Endpoints used by the fetch backends. Tests point them at local servers.
var (
	exportBaseURL = sheet.DefaultBaseURL
	apiEndpoint   = ""
)

func newFetchCmd(opts *rootOptions) *cobra.Command {
	var fc types.FetchConfig
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "fetch [output-path]",
		Short: "Fetch the sheet and rewrite the Markdown file",
		Long: `Fetch loads the stored sheet ID, downloads the sheet, renders it as a
Markdown table and overwrites the output file. The output path is the
argument, else the path saved by init, else ./PaperDB.md.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				fc.OutputPath = args[0]
			}
			if fc.Timeout == 0 {
				fc.Timeout = defaultTimeout
			}
			fc.UserAgent = defaultUserAgent
			return runFetch(cmd.Context(), cmd, opts, fc, !noHistory)
		},
	}

	cmd.Flags().IntVar(&fc.PreviewRows, "preview-rows", defaultPreviewRows, "rows to preview in the terminal (0 disables)")
	cmd.Flags().BoolVar(&fc.Frontmatter, "frontmatter", false, "prepend YAML frontmatter (sheet id, shape, fetch time)")
	cmd.Flags().BoolVar(&fc.Align, "align", false, "pad cells so the table lines up as plain text")
	cmd.Flags().DurationVar(&fc.Timeout, "timeout", 0, "HTTP request timeout (default 60s)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "do not record this fetch in the local history")

	return cmd
}

func runFetch(ctx context.Context, cmd *cobra.Command, opts *rootOptions, fc types.FetchConfig, record bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()
	preview.Banner(w, "paperdb fetch")

	res, err := pipeline.Fetch(ctx, pipeline.FetchOptions{
		ConfigPath:  opts.configPath,
		OutputArg:   fc.OutputPath,
		Align:       fc.Align,
		Frontmatter: fc.Frontmatter,
		NewFetcher: func(cfg types.Config) (sheet.Fetcher, error) {
			return buildFetcher(cfg, opts, fc.HTTPConfig)
		},
	}, w)
	if err != nil {
		return err
	}

	if record {
		recordFetch(ctx, cmd, opts, res)
	}

	if fc.PreviewRows > 0 {
		fmt.Fprintln(w)
		preview.Grid(w, res.Grid, fc.PreviewRows)
	}
	return nil
}

func buildFetcher(cfg types.Config, opts *rootOptions, httpCfg types.HTTPConfig) (sheet.Fetcher, error) {
	so := sheet.Options{
		HTTP:        httpCfg,
		BaseURL:     exportBaseURL,
		APIEndpoint: apiEndpoint,
	}
	if cfg.Backend == types.BackendAPI {
		key, err := secrets.Lookup(opts.secretsDir, secrets.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		so.APIKey = key
	}
	return sheet.New(cfg.Backend, so)
}

// recordFetch appends res to the history database. Failures only warn: the
// document has already been written.
func recordFetch(ctx context.Context, cmd *cobra.Command, opts *rootOptions, res pipeline.Result) {
	store, err := history.Open(history.PathFor(opts.configPath))
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: fetch history unavailable: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(ctx, res.Record()); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}
}
