// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data shared across paperdb: the persisted
// configuration, the fetched grid and fetch history records.
package types

import "time"

// Grid is the in-memory form of a fetched sheet: ordered rows of ordered
// text cells. The first row is the header. Rows may be ragged; fetchers pass
// them through as the service returns them.
type Grid [][]string

// Rows returns the number of rows, header included.
func (g Grid) Rows() int {
	return len(g)
}

// Width returns the length of the longest row.
func (g Grid) Width() int {
	w := 0
	for _, row := range g {
		if len(row) > w {
			w = len(row)
		}
	}
	return w
}

// Header returns the first row, or nil for an empty grid.
func (g Grid) Header() []string {
	if len(g) == 0 {
		return nil
	}
	return g[0]
}

// Data returns every row after the header.
func (g Grid) Data() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// FetchRecord is one entry of the local fetch history.
type FetchRecord struct {
	// ID is a random UUID assigned when the record is written.
	ID string `json:"id" yaml:"id"`

	SheetID string  `json:"sheet_id" yaml:"sheet_id"`
	Backend Backend `json:"backend" yaml:"backend"`

	// OutputPath is the absolute path of the written document.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Rows counts data rows (header excluded) after cleaning.
	Rows int `json:"rows" yaml:"rows"`

	// Columns is the rendered table width.
	Columns int `json:"columns" yaml:"columns"`

	// Bytes is the size of the written document.
	Bytes int `json:"bytes" yaml:"bytes"`

	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
