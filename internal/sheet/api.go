// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pdiddy/paperdb/pkg/types"
)

// APIFetcher reads a tab through the Sheets API v4. It authenticates with
// an API key only, which is enough for publicly readable spreadsheets.
type APIFetcher struct {
	opts   Options
	client *http.Client
}

// Name returns "api".
func (f *APIFetcher) Name() string { return string(types.BackendAPI) }

// Fetch resolves the tab title from the spreadsheet metadata and then reads
// its whole used range as formatted values.
func (f *APIFetcher) Fetch(ctx context.Context, sheetID, gid string) (types.Grid, error) {
	svc, err := f.service(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := svc.Spreadsheets.Get(sheetID).Fields("sheets.properties(sheetId,title,index)").Context(ctx).Do()
	if err != nil {
		return nil, classifyAPI(sheetID, err)
	}

	title, err := selectTab(meta, gid)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %s: %v", ErrNotFound, sheetID, err)
	}
	if title == "" {
		return types.Grid{}, nil
	}

	values, err := svc.Spreadsheets.Values.Get(sheetID, quoteTitle(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, classifyAPI(sheetID, err)
	}

	grid := make(types.Grid, 0, len(values.Values))
	for _, row := range values.Values {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func (f *APIFetcher) service(ctx context.Context) (*sheets.Service, error) {
	client := *f.client
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	client.Transport = &keyTransport{key: f.opts.APIKey, base: base}

	opts := []option.ClientOption{option.WithHTTPClient(&client)}
	if f.opts.APIEndpoint != "" {
		opts = append(opts, option.WithEndpoint(f.opts.APIEndpoint))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Sheets client: %w", err)
	}
	return svc, nil
}

// selectTab returns the title of the tab with the given gid, or of the first
// tab when gid is empty. A spreadsheet without tabs yields "".
func selectTab(meta *sheets.Spreadsheet, gid string) (string, error) {
	if gid == "" {
		var first *sheets.SheetProperties
		for _, s := range meta.Sheets {
			if s.Properties == nil {
				continue
			}
			if first == nil || s.Properties.Index < first.Index {
				first = s.Properties
			}
		}
		if first == nil {
			return "", nil
		}
		return first.Title, nil
	}

	want, err := strconv.ParseInt(gid, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid gid %q", gid)
	}
	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.SheetId == want {
			return s.Properties.Title, nil
		}
	}
	return "", fmt.Errorf("no worksheet with gid %s", gid)
}

// quoteTitle turns a tab title into an A1 range covering the whole tab.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func classifyAPI(sheetID string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return fmt.Errorf("%w: sheet %s (%d %s)", ErrNotFound, sheetID, gerr.Code, gerr.Message)
		}
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// keyTransport adds the API key query parameter to every request.
type keyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *keyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	q := r.URL.Query()
	q.Set("key", t.key)
	r.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(r)
}
