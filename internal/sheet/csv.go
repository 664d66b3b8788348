// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/pdiddy/paperdb/pkg/types"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVFetcher reads a tab through the public CSV export.
type CSVFetcher struct {
	opts   Options
	client *http.Client
}

// Name returns "csv".
func (f *CSVFetcher) Name() string { return string(types.BackendCSV) }

// Fetch downloads the CSV export of the tab and parses it. Rows keep the
// field count the service sent.
func (f *CSVFetcher) Fetch(ctx context.Context, sheetID, gid string) (types.Grid, error) {
	body, err := export(ctx, f.client, f.opts, sheetID, "csv", gid)
	if err != nil {
		return nil, err
	}
	return parseCSV(body)
}

func parseCSV(body []byte) (types.Grid, error) {
	body = bytes.TrimPrefix(body, utf8BOM)
	if len(bytes.TrimSpace(body)) == 0 {
		return types.Grid{}, nil
	}

	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV export: %w", err)
	}
	return types.Grid(records), nil
}
