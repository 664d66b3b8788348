// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Meta describes a rendered document in its frontmatter.
type Meta struct {
	SheetID   string    `yaml:"sheet_id"`
	GID       string    `yaml:"gid,omitempty"`
	Backend   string    `yaml:"backend"`
	Rows      int       `yaml:"rows"`
	Columns   int       `yaml:"columns"`
	FetchedAt time.Time `yaml:"fetched_at"`
}

// WithFrontmatter prepends a YAML frontmatter block describing meta to body.
func WithFrontmatter(meta Meta, body string) (string, error) {
	meta.FetchedAt = meta.FetchedAt.UTC()
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(body)
	return b.String(), nil
}
