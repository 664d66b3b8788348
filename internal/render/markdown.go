// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a fetched grid into a Markdown document: an optional
// cleaning pass, the table itself, a structural check of the result, and an
// optional YAML frontmatter block.
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/paperdb/pkg/types"
)

// Options controls table layout.
type Options struct {
	// Align pads every cell to its column's display width so the table
	// lines up in a plain text editor.
	Align bool
}

// minDashes is the separator width GFM requires per column.
const minDashes = 3

var cellEscaper = strings.NewReplacer(
	"\r\n", "<br>",
	"\r", "<br>",
	"\n", "<br>",
	"|", `\|`,
)

// EscapeCell makes s safe inside a Markdown table cell. Pipes are
// backslash-escaped and line breaks become <br>.
func EscapeCell(s string) string {
	return cellEscaper.Replace(s)
}

// Render emits grid as a Markdown table. The first row is the header, followed
// by a separator row and one line per remaining row. Rows shorter than the
// widest row are padded with empty cells. An empty grid, or one whose rows
// are all empty, renders to "".
func Render(grid types.Grid, opts Options) string {
	width := grid.Width()
	if width == 0 {
		return ""
	}

	rows := make([][]string, len(grid))
	for i, row := range grid {
		cells := make([]string, width)
		for j := range cells {
			if j < len(row) {
				cells[j] = EscapeCell(row[j])
			}
		}
		rows[i] = cells
	}

	var colWidths []int
	if opts.Align {
		colWidths = make([]int, width)
		for j := range colWidths {
			colWidths[j] = minDashes
		}
		for _, cells := range rows {
			for j, c := range cells {
				if w := runewidth.StringWidth(c); w > colWidths[j] {
					colWidths[j] = w
				}
			}
		}
	}

	var b strings.Builder
	writeRow(&b, rows[0], colWidths)
	writeSeparator(&b, width, colWidths)
	for _, cells := range rows[1:] {
		writeRow(&b, cells, colWidths)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, colWidths []int) {
	b.WriteString("|")
	for j, c := range cells {
		b.WriteString(" ")
		b.WriteString(c)
		if colWidths != nil {
			b.WriteString(strings.Repeat(" ", colWidths[j]-runewidth.StringWidth(c)))
		}
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, width int, colWidths []int) {
	b.WriteString("|")
	for j := 0; j < width; j++ {
		n := minDashes
		if colWidths != nil {
			n = colWidths[j] + 2
		}
		b.WriteString(strings.Repeat("-", n))
		b.WriteString("|")
	}
	b.WriteString("\n")
}
