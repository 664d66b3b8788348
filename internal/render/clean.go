// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/paperdb/pkg/types"
)

// Clean returns a normalised copy of grid; the input is not modified.
// Rules are applied in order: whitespace stripping, removal of columns with
// a blank header (including cells past the end of the header), removal of
// all-empty data rows, and filling of empty data cells. When Fill is set,
// short data rows are padded to the header width first.
func Clean(grid types.Grid, cfg types.CleanConfig) types.Grid {
	if len(grid) == 0 {
		return types.Grid{}
	}

	out := make(types.Grid, len(grid))
	for i, row := range grid {
		cells := make([]string, len(row))
		for j, c := range row {
			if cfg.StripWhitespace {
				c = strings.TrimSpace(c)
			}
			cells[j] = c
		}
		out[i] = cells
	}

	if cfg.DropUnnamed {
		out = dropUnnamed(out)
	}

	if cfg.DropBlankRows {
		kept := types.Grid{out[0]}
		for _, row := range out[1:] {
			if !blank(row) {
				kept = append(kept, row)
			}
		}
		out = kept
	}

	if cfg.Fill != "" {
		width := len(out[0])
		for i := 1; i < len(out); i++ {
			row := out[i]
			for len(row) < width {
				row = append(row, "")
			}
			for j := range row {
				if row[j] == "" {
					row[j] = cfg.Fill
				}
			}
			out[i] = row
		}
	}

	return out
}

// dropUnnamed keeps only the columns whose header cell is non-blank.
func dropUnnamed(grid types.Grid) types.Grid {
	header := grid[0]
	var keep []int
	for j, h := range header {
		if strings.TrimSpace(h) != "" {
			keep = append(keep, j)
		}
	}
	if len(keep) == len(header) && grid.Width() == len(header) {
		return grid
	}

	out := make(types.Grid, len(grid))
	for i, row := range grid {
		cells := make([]string, 0, len(keep))
		for _, j := range keep {
			if j < len(row) {
				cells = append(cells, row[j])
			} else if i == 0 {
				cells = append(cells, header[j])
			} else {
				cells = append(cells, "")
			}
		}
		out[i] = cells
	}
	return out
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
