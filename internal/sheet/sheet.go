// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet retrieves the default (or a selected) worksheet of a public
// spreadsheet as a grid of text cells. Backends implement Fetcher: csv and
// xlsx read the public export endpoint, api reads the Sheets API v4 with an
// API key. Every backend makes a single attempt; failures are classified as
// ErrNotFound or ErrNetwork and returned immediately.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/paperdb/internal/httputil"
	"github.com/pdiddy/paperdb/pkg/types"
)

// DefaultBaseURL is the host serving the public export endpoint.
const DefaultBaseURL = "https://docs.google.com"

var (
	// ErrNotFound means the identifier is invalid or the sheet is not
	// publicly readable.
	ErrNotFound = errors.New("spreadsheet not found or not public")

	// ErrNetwork means the service could not be reached or failed to answer.
	ErrNetwork = errors.New("network error")
)

// Fetcher retrieves one worksheet as a Grid.
type Fetcher interface {
	// Name returns the backend name (csv, xlsx, api).
	Name() string

	// Fetch returns every used row and column of the worksheet. An empty
	// gid selects the first tab.
	Fetch(ctx context.Context, sheetID, gid string) (types.Grid, error)
}

// Options configures a Fetcher.
type Options struct {
	HTTP types.HTTPConfig

	// Client overrides the HTTP client built from HTTP.
	Client *http.Client

	// BaseURL overrides DefaultBaseURL for the export backends.
	BaseURL string

	// APIKey authenticates the api backend. Public sheets still need a key.
	APIKey string

	// APIEndpoint overrides the Sheets API endpoint.
	APIEndpoint string
}

func (o Options) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return httputil.NewClient(o.HTTP)
}

func (o Options) baseURL() string {
	if o.BaseURL != "" {
		return strings.TrimRight(o.BaseURL, "/")
	}
	return DefaultBaseURL
}

// New returns the Fetcher for backend. An empty backend selects csv.
func New(backend types.Backend, opts Options) (Fetcher, error) {
	switch backend {
	case types.BackendCSV, "":
		return &CSVFetcher{opts: opts, client: opts.client()}, nil
	case types.BackendXLSX:
		return &XLSXFetcher{opts: opts, client: opts.client()}, nil
	case types.BackendAPI:
		if strings.TrimSpace(opts.APIKey) == "" {
			return nil, fmt.Errorf("the api backend needs a Google API key: set PAPERDB_GOOGLE_API_KEY or write it to .secrets/google-api-key")
		}
		return &APIFetcher{opts: opts, client: opts.client()}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want csv, xlsx or api)", backend)
	}
}

// ExportURL builds the public export URL for format ("csv" or "xlsx").
func ExportURL(baseURL, sheetID, format, gid string) string {
	q := url.Values{}
	q.Set("format", format)
	if gid != "" {
		q.Set("gid", gid)
	}
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?%s", baseURL, url.PathEscape(sheetID), q.Encode())
}

var linkPattern = regexp.MustCompile(`^https?://docs\.google\.com/spreadsheets/d/([^/?#]+)`)
var gidPattern = regexp.MustCompile(`[#?&]gid=([0-9]+)`)

// ParseLink accepts a bare sheet ID or a full sharing link and returns the
// sheet ID and, when the link carries one, the tab gid.
func ParseLink(s string) (id, gid string, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", "", fmt.Errorf("sheet id must not be empty")
	}

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return s, "", nil
	}

	match := linkPattern.FindStringSubmatch(s)
	if len(match) < 2 {
		return "", "", fmt.Errorf("invalid spreadsheet link %q: expected https://docs.google.com/spreadsheets/d/<id>/...", s)
	}
	if g := gidPattern.FindStringSubmatch(s); len(g) == 2 {
		gid = g[1]
	}
	return match[1], gid, nil
}

// classify maps an export-endpoint error onto ErrNotFound or ErrNetwork.
func classify(sheetID string, err error) error {
	var se *httputil.StatusError
	if errors.As(err, &se) {
		switch se.StatusCode {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusGone:
			return fmt.Errorf("%w: sheet %s (%s)", ErrNotFound, sheetID, se.Status)
		default:
			return fmt.Errorf("%w: %w", ErrNetwork, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// export downloads sheetID in format and rejects HTML sign-in pages.
func export(ctx context.Context, client *http.Client, opts Options, sheetID, format, gid string) ([]byte, error) {
	resp, err := httputil.Get(ctx, client, ExportURL(opts.baseURL(), sheetID, format, gid), opts.HTTP.UserAgent)
	if err != nil {
		return nil, classify(sheetID, err)
	}
	if resp.IsHTML() {
		return nil, fmt.Errorf("%w: sheet %s answered with a sign-in page", ErrNotFound, sheetID)
	}
	return resp.Body, nil
}
