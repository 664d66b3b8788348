// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline implements the two paperdb commands as straight-line
// sequences: Init stores the spreadsheet identifier, Fetch loads it, pulls
// the sheet, renders it as Markdown and writes the file. Every error
// returns immediately; nothing is written unless rendering succeeded.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paperdb/internal/config"
	"github.com/pdiddy/paperdb/internal/output"
	"github.com/pdiddy/paperdb/internal/render"
	"github.com/pdiddy/paperdb/internal/sheet"
	"github.com/pdiddy/paperdb/pkg/types"
)

// Init saves identifier (a bare sheet ID or a sharing link) together with
// the optional settings in cfg to configPath. A gid embedded in the link is
// used unless cfg already names one. A configured output path is stored
// absolute.
func Init(configPath, identifier string, cfg types.Config) (types.Config, error) {
	id, gid, err := sheet.ParseLink(identifier)
	if err != nil {
		return types.Config{}, err
	}
	cfg.SheetID = id
	if cfg.GID == "" {
		cfg.GID = gid
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendCSV
	}
	if cfg.Out != "" {
		if cfg.Out, err = output.Resolve(cfg.Out, ""); err != nil {
			return types.Config{}, err
		}
	}

	if err := config.Save(configPath, cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// FetcherFactory builds the Fetcher for a loaded config.
type FetcherFactory func(cfg types.Config) (sheet.Fetcher, error)

// FetchOptions configures one fetch run.
type FetchOptions struct {
	ConfigPath string

	// OutputArg is the output path given on the command line, if any.
	OutputArg string

	Align       bool
	Frontmatter bool

	NewFetcher FetcherFactory

	// Now stamps the frontmatter and the result. Defaults to time.Now.
	Now func() time.Time
}

// Result describes a completed fetch.
type Result struct {
	Config     types.Config
	OutputPath string
	Backend    string

	// Grid is the cleaned grid that was rendered.
	Grid     types.Grid
	Document string

	FetchedAt time.Time
}

// Record converts r into a history entry.
func (r Result) Record() types.FetchRecord {
	rows := len(r.Grid) - 1
	if rows < 0 {
		rows = 0
	}
	return types.FetchRecord{
		SheetID:    r.Config.SheetID,
		Backend:    types.Backend(r.Backend),
		OutputPath: r.OutputPath,
		Rows:       rows,
		Columns:    r.Grid.Width(),
		Bytes:      len(r.Document),
		FetchedAt:  r.FetchedAt,
	}
}

// Fetch loads the config, fetches the sheet, renders it and writes the
// document, reporting progress to w. It fails with config.ErrNotInitialized
// before any network or file activity when init has not been run.
func Fetch(ctx context.Context, opts FetchOptions, w io.Writer) (Result, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return Result{}, err
	}

	outPath, err := output.Resolve(opts.OutputArg, cfg.Out)
	if err != nil {
		return Result{}, err
	}

	fetcher, err := opts.NewFetcher(cfg)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "Sheet ID: %s\n", cfg.SheetID)
	if cfg.GID != "" {
		fmt.Fprintf(w, "GID:      %s\n", cfg.GID)
	}
	fmt.Fprintf(w, "Output:   %s\n", outPath)
	fmt.Fprintf(w, "\nFetching sheet (%s)...\n", fetcher.Name())

	grid, err := fetcher.Fetch(ctx, cfg.SheetID, cfg.GID)
	if err != nil {
		return Result{}, fmt.Errorf("fetching sheet %s: %w", cfg.SheetID, err)
	}

	cleaned := render.Clean(grid, cfg.Clean)
	dataRows := len(cleaned) - 1
	if dataRows < 0 {
		dataRows = 0
	}
	fmt.Fprintf(w, "Fetched %d rows × %d cols\n", dataRows, cleaned.Width())

	fmt.Fprintln(w, "Rendering markdown...")
	doc := render.Render(cleaned, render.Options{Align: opts.Align})
	wantCols, wantRows := cleaned.Width(), dataRows
	if doc == "" {
		wantCols, wantRows = 0, 0
	}
	if err := render.Check(doc, wantCols, wantRows); err != nil {
		return Result{}, err
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	fetchedAt := now()

	if opts.Frontmatter {
		doc, err = render.WithFrontmatter(render.Meta{
			SheetID:   cfg.SheetID,
			GID:       cfg.GID,
			Backend:   fetcher.Name(),
			Rows:      wantRows,
			Columns:   wantCols,
			FetchedAt: fetchedAt,
		}, doc)
		if err != nil {
			return Result{}, err
		}
	}

	fmt.Fprintln(w, "Writing file...")
	if err := output.Write(outPath, doc); err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "Done. Updated: %s\n", outPath)

	return Result{
		Config:     cfg,
		OutputPath: outPath,
		Backend:    fetcher.Name(),
		Grid:       cleaned,
		Document:   doc,
		FetchedAt:  fetchedAt,
	}, nil
}
