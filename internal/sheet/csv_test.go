// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperdb/internal/httputil"
	"github.com/pdiddy/paperdb/pkg/types"
)

func newCSVServer(t *testing.T, handler http.HandlerFunc) (*CSVFetcher, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	f, err := New(types.BackendCSV, Options{BaseURL: ts.URL, Client: ts.Client()})
	require.NoError(t, err)
	return f.(*CSVFetcher), ts
}

func TestCSVFetch(t *testing.T) {
	var path, format, gid string
	f, _ := newCSVServer(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		format = r.URL.Query().Get("format")
		gid = r.URL.Query().Get("gid")
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Title,Author\nDune,Herbert\n\"Hello, World\",\"A \"\"quoted\"\" name\"\n"))
	})

	grid, err := f.Fetch(context.Background(), "sheet123", "42")
	require.NoError(t, err)

	assert.Equal(t, "/spreadsheets/d/sheet123/export", path)
	assert.Equal(t, "csv", format)
	assert.Equal(t, "42", gid)
	assert.Equal(t, types.Grid{
		{"Title", "Author"},
		{"Dune", "Herbert"},
		{"Hello, World", `A "quoted" name`},
	}, grid)
}

func TestCSVFetch_RaggedRowsPassThrough(t *testing.T) {
	f, _ := newCSVServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("a,b,c\n1\n1,2,3,4\n"))
	})

	grid, err := f.Fetch(context.Background(), "s", "")
	require.NoError(t, err)
	assert.Equal(t, types.Grid{{"a", "b", "c"}, {"1"}, {"1", "2", "3", "4"}}, grid)
}

func TestCSVFetch_BOMAndEmpty(t *testing.T) {
	body := "\xEF\xBB\xBFName\nx\n"
	f, _ := newCSVServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(body))
	})

	grid, err := f.Fetch(context.Background(), "s", "")
	require.NoError(t, err)
	assert.Equal(t, types.Grid{{"Name"}, {"x"}}, grid)

	body = ""
	grid, err = f.Fetch(context.Background(), "s", "")
	require.NoError(t, err)
	assert.Empty(t, grid)
}

func TestCSVFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    error
	}{
		{
			name:    "not found",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			want:    ErrNotFound,
		},
		{
			name:    "forbidden",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusForbidden) },
			want:    ErrNotFound,
		},
		{
			name: "sign-in page",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				w.Write([]byte("<!doctype html><title>Sign in</title>"))
			},
			want: ErrNotFound,
		},
		{
			name:    "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			want:    ErrNetwork,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			f, _ := newCSVServer(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				tt.handler(w, r)
			})
			_, err := f.Fetch(context.Background(), "s", "")
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retry")
		})
	}
}

func TestCSVFetch_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL
	ts.Close()

	f, err := New(types.BackendCSV, Options{BaseURL: base})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "s", "")
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestCSVFetch_OversizedBodyReturnsNoGrid(t *testing.T) {
	prev := httputil.MaxBodyBytes
	httputil.MaxBodyBytes = 30
	t.Cleanup(func() { httputil.MaxBodyBytes = prev })

	f, _ := newCSVServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Title,Author\nDune,Herbert\nEmma,Austen\n"))
	})

	grid, err := f.Fetch(context.Background(), "abc", "")
	require.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, httputil.ErrBodyTooLarge)
	assert.Nil(t, grid)
}
