// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/paperdb/pkg/types"
)

func workbook(t *testing.T, rows ...[]interface{}) []byte {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow("Sheet1", cell, &row))
	}
	_, err := wb.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, wb.SetCellValue("Second", "A1", "ignored"))

	buf, err := wb.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestXLSXFetch(t *testing.T) {
	data := workbook(t,
		[]interface{}{"Title", "Author", "Year"},
		[]interface{}{"Dune", "Herbert", 1965},
		[]interface{}{"Solaris", "Lem"},
	)

	var format string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		format = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Write(data)
	}))
	defer ts.Close()

	f, err := New(types.BackendXLSX, Options{BaseURL: ts.URL, Client: ts.Client()})
	require.NoError(t, err)

	grid, err := f.Fetch(context.Background(), "abc", "")
	require.NoError(t, err)
	assert.Equal(t, "xlsx", format)
	assert.Equal(t, types.Grid{
		{"Title", "Author", "Year"},
		{"Dune", "Herbert", "1965"},
		{"Solaris", "Lem"},
	}, grid)
}

func TestXLSXFetch_RejectsGID(t *testing.T) {
	f, err := New(types.BackendXLSX, Options{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "abc", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first worksheet")
}

func TestXLSXFetch_NotAWorkbook(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("plainly not a zip"))
	}))
	defer ts.Close()

	f, err := New(types.BackendXLSX, Options{BaseURL: ts.URL, Client: ts.Client()})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "abc", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening XLSX export")
}

func TestXLSXFetch_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	f, err := New(types.BackendXLSX, Options{BaseURL: ts.URL, Client: ts.Client()})
	require.NoError(t, err)

	_, err = f.Fetch(context.Background(), "abc", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
