// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds HTTP settings used by the fetch backends.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperdb/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Backend identifies how a sheet is read from the spreadsheet service.
type Backend string

const (
	// BackendCSV downloads the public CSV export of a single tab.
	BackendCSV Backend = "csv"
	// BackendXLSX downloads the public XLSX export and reads one worksheet.
	BackendXLSX Backend = "xlsx"
	// BackendAPI reads values through the Sheets API v4 with an API key.
	BackendAPI Backend = "api"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	switch b {
	case BackendCSV, BackendXLSX, BackendAPI:
		return true
	}
	return false
}

// CleanConfig controls the normalisation applied to a fetched grid before
// rendering.
type CleanConfig struct {
	// StripWhitespace trims leading and trailing whitespace from every cell.
	StripWhitespace bool `json:"strip_whitespace" yaml:"strip_whitespace" mapstructure:"strip_whitespace"`

	// DropUnnamed removes columns whose header cell is blank.
	DropUnnamed bool `json:"drop_unnamed" yaml:"drop_unnamed" mapstructure:"drop_unnamed"`

	// DropBlankRows removes data rows whose cells are all empty.
	DropBlankRows bool `json:"drop_blank_rows" yaml:"drop_blank_rows" mapstructure:"drop_blank_rows"`

	// Fill replaces empty data cells. Empty Fill leaves them blank.
	Fill string `json:"fill,omitempty" yaml:"fill,omitempty" mapstructure:"fill"`
}

// DefaultCleanConfig returns the cleaning applied when init is given no
// cleaning flags.
func DefaultCleanConfig() CleanConfig {
	return CleanConfig{
		StripWhitespace: true,
		DropUnnamed:     true,
		DropBlankRows:   true,
	}
}

// Config is the persisted paperdb configuration written by init and read
// by fetch. SheetID is the only required field.
type Config struct {
	// SheetID is the identifier portion of the spreadsheet sharing link.
	SheetID string `json:"sheet_id" yaml:"sheet_id" mapstructure:"sheet_id"`

	// Out is the default output path for fetch.
	Out string `json:"out,omitempty" yaml:"out,omitempty" mapstructure:"out"`

	// GID selects a worksheet tab. Empty means the default (first) tab.
	GID string `json:"gid,omitempty" yaml:"gid,omitempty" mapstructure:"gid"`

	// Backend selects the fetch backend (default csv).
	Backend Backend `json:"backend,omitempty" yaml:"backend,omitempty" mapstructure:"backend"`

	// Clean controls grid normalisation.
	Clean CleanConfig `json:"clean" yaml:"clean" mapstructure:"clean"`
}

// FetchConfig holds settings for a single fetch run.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// OutputPath is the Markdown file to write.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// Align pads table cells to the column width.
	Align bool `json:"align" yaml:"align"`

	// Frontmatter prepends a YAML frontmatter block to the document.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter"`

	// PreviewRows is the number of data rows echoed to the terminal (0 disables).
	PreviewRows int `json:"preview_rows" yaml:"preview_rows"`
}
