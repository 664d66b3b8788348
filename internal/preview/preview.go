// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview prints fetched data and written documents to the
// terminal: a bordered table of the first rows after a fetch, the fetch
// history, and a styled rendering of a Markdown file for reading.
package preview

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pdiddy/paperdb/pkg/types"
)

var (
	accent = lipgloss.Color("#94e2d5")
	muted  = lipgloss.Color("#a6adc8")
	border = lipgloss.Color("#585b70")

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)

	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	noteStyle   = lipgloss.NewStyle().Foreground(muted)
)

// Banner writes a boxed heading such as "paperdb fetch".
func Banner(w io.Writer, title string) {
	fmt.Fprintln(w, bannerStyle.Render(title))
}

// Note writes a dimmed status line.
func Note(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, noteStyle.Render(fmt.Sprintf(format, args...)))
}

// Grid writes the header and up to maxRows data rows of grid as a bordered
// table. Nothing is written when maxRows is not positive or the grid is
// empty.
func Grid(w io.Writer, grid types.Grid, maxRows int) {
	if maxRows <= 0 || len(grid) == 0 {
		return
	}

	data := grid.Data()
	shown := data
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}

	width := len(grid.Header())
	rows := make([][]string, len(shown))
	for i, r := range shown {
		rows[i] = fit(r, width)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(grid.Header()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("PaperDB preview (showing %d/%d rows)", len(shown), len(data))))
	fmt.Fprintln(w, t.Render())
}

// History writes fetch records as a table, newest first.
func History(w io.Writer, records []types.FetchRecord) {
	if len(records) == 0 {
		Note(w, "No fetches recorded yet.")
		return
	}

	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.FetchedAt.Local().Format(time.DateTime),
			r.SheetID,
			string(r.Backend),
			fmt.Sprintf("%d×%d", r.Rows, r.Columns),
			r.OutputPath,
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers("Fetched", "Sheet", "Backend", "Shape", "Output").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// Document renders Markdown for the terminal. style is a glamour standard
// style name ("dark", "light", "notty", ...); empty selects one from the
// terminal background. A leading YAML frontmatter block is not shown.
func Document(md string, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(StripFrontmatter(md))
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// StripFrontmatter removes a leading "---" delimited block from md.
func StripFrontmatter(md string) string {
	if !strings.HasPrefix(md, "---\n") {
		return md
	}
	rest := md[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return md
	}
	return strings.TrimLeft(rest[end+len("\n---\n"):], "\n")
}

func fit(row []string, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
