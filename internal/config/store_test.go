// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/paperdb/pkg/types"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ids := []string{
		"1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms",
		"abc_DEF-123",
		"x",
	}
	for _, id := range ids {
		t.Run(id, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "paperdb", "config.yaml")
			require.NoError(t, Save(path, types.Config{SheetID: id}))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, id, got.SheetID)
			assert.Equal(t, types.BackendCSV, got.Backend)
		})
	}
}

func TestSavePreservesOptionalFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := types.Config{
		SheetID: "sheet123",
		Out:     "/tmp/PaperDB.md",
		GID:     "633435137",
		Backend: types.BackendXLSX,
		Clean: types.CleanConfig{
			StripWhitespace: true,
			DropUnnamed:     false,
			Fill:            "No",
		},
	}
	require.NoError(t, Save(path, in))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, types.Config{SheetID: "first", Out: "a.md"}))
	require.NoError(t, Save(path, types.Config{SheetID: "second"}))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got.SheetID)
	assert.Empty(t, got.Out)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	for _, id := range []string{"", "   ", "\t\n"} {
		err := Save(path, types.Config{SheetID: id})
		require.Error(t, err)
	}
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing should be written for an empty id")
}

func TestSaveRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	err := Save(path, types.Config{SheetID: "abc", Backend: "ftp"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope", "config.yaml"))
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoadEmptySheetID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheet_id: \"\"\nout: x.md\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, types.Config{SheetID: "stored", Out: "stored.md"}))

	t.Setenv("PAPERDB_OUT", "override.md")

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "stored", got.SheetID)
	assert.Equal(t, "override.md", got.Out)
}

func TestReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	removed, err := Reset(path)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, Save(path, types.Config{SheetID: "abc"}))
	removed, err = Reset(path)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrNotInitialized)
}
