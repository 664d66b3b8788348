// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// ErrMalformedTable is returned by Check when the rendered Markdown does not
// parse back into the expected table.
var ErrMalformedTable = errors.New("rendered markdown is not a well-formed table")

var tableParser = goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()

// Check parses doc as GitHub-flavoured Markdown and verifies it holds a table
// with wantCols columns and wantRows body rows. An empty doc passes when
// both counts are zero.
func Check(doc string, wantCols, wantRows int) error {
	src := []byte(doc)
	root := tableParser.Parse(text.NewReader(src))

	var table *east.Table
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*east.Table); ok && entering {
			table = t
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})

	if table == nil {
		if wantCols == 0 && wantRows == 0 {
			return nil
		}
		return fmt.Errorf("%w: no table found", ErrMalformedTable)
	}

	var cols, rows int
	for n := table.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *east.TableHeader:
			cols = n.ChildCount()
		case *east.TableRow:
			rows++
		}
	}

	if cols != wantCols {
		return fmt.Errorf("%w: header has %d columns, want %d", ErrMalformedTable, cols, wantCols)
	}
	if rows != wantRows {
		return fmt.Errorf("%w: body has %d rows, want %d", ErrMalformedTable, rows, wantRows)
	}
	return nil
}
