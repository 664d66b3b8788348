// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperdb/pkg/types"
)

func TestCheck_RenderedTables(t *testing.T) {
	tests := []struct {
		name string
		grid types.Grid
		opts Options
		cols int
		rows int
	}{
		{"simple", types.Grid{{"Title", "Author"}, {"Dune", "Herbert"}}, Options{}, 2, 1},
		{"aligned", types.Grid{{"Title", "Author"}, {"Dune", "Herbert"}, {"Emma", "Austen"}}, Options{Align: true}, 2, 2},
		{"header only", types.Grid{{"a", "b", "c"}}, Options{}, 3, 0},
		{"escaped pipe", types.Grid{{"h"}, {"a|b"}, {"line\nbreak"}}, Options{}, 1, 2},
		{"wide runes", types.Grid{{"名前", "x"}, {"東京", "y"}}, Options{Align: true}, 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc := Render(tc.grid, tc.opts)
			require.NoError(t, Check(doc, tc.cols, tc.rows))
		})
	}
}

func TestCheck_Empty(t *testing.T) {
	assert.NoError(t, Check("", 0, 0))
	assert.ErrorIs(t, Check("", 2, 1), ErrMalformedTable)
}

func TestCheck_Mismatch(t *testing.T) {
	doc := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	assert.ErrorIs(t, Check(doc, 3, 1), ErrMalformedTable)
	assert.ErrorIs(t, Check(doc, 2, 2), ErrMalformedTable)
	assert.NoError(t, Check(doc, 2, 1))
}

func TestCheck_NotATable(t *testing.T) {
	err := Check("just a paragraph\n", 1, 0)
	assert.ErrorIs(t, err, ErrMalformedTable)
}
