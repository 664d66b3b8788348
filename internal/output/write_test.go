// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes", "deep", "PaperDB.md")

	require.NoError(t, Write(path, "| a |\n|---|\n"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "| a |\n|---|\n", string(data))

	require.NoError(t, Write(path, "second"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestWrite_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.md")
	require.NoError(t, Write(path, ""))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestWrite_Failure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// The parent "directory" is a regular file.
	err := Write(filepath.Join(blocker, "out.md"), "doc")
	assert.ErrorIs(t, err, ErrWrite)

	// The target is an existing directory.
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, 0o644))
	err = Write(target, "doc")
	assert.ErrorIs(t, err, ErrWrite)
}

func TestResolve(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name       string
		arg        string
		configured string
		want       string
	}{
		{"argument wins", "out/a.md", "b.md", filepath.Join(wd, "out", "a.md")},
		{"configured", "", "/tmp/b.md", "/tmp/b.md"},
		{"default", "", "", filepath.Join(wd, DefaultFile)},
		{"home expansion", "~/notes/PaperDB.md", "", filepath.Join(home, "notes", "PaperDB.md")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.arg, tt.configured)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
