// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/paperdb/pkg/types"
)

// XLSXFetcher reads the first worksheet of the public XLSX export. Cells
// come back as their formatted display text.
type XLSXFetcher struct {
	opts   Options
	client *http.Client
}

// Name returns "xlsx".
func (f *XLSXFetcher) Name() string { return string(types.BackendXLSX) }

// Fetch downloads the workbook and returns its first worksheet. The export
// does not carry tab gids, so a non-empty gid is rejected.
func (f *XLSXFetcher) Fetch(ctx context.Context, sheetID, gid string) (types.Grid, error) {
	if gid != "" {
		return nil, fmt.Errorf("the xlsx backend reads the first worksheet only; use the csv or api backend to select gid %s", gid)
	}

	body, err := export(ctx, f.client, f.opts, sheetID, "xlsx", "")
	if err != nil {
		return nil, err
	}
	return parseXLSX(body)
}

func parseXLSX(body []byte) (types.Grid, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("opening XLSX export: %w", err)
	}
	defer wb.Close()

	names := wb.GetSheetList()
	if len(names) == 0 {
		return types.Grid{}, nil
	}

	rows, err := wb.GetRows(names[0])
	if err != nil {
		return nil, fmt.Errorf("reading worksheet %q: %w", names[0], err)
	}

	// Blank rows between data keep their position as empty rows; trailing
	// blank rows are dropped.
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return types.Grid(rows[:end]), nil
}
