// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config persists the paperdb configuration: the spreadsheet
// identifier written once by init, plus the optional output path, tab and
// cleaning settings the fetch command reads back on every run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paperdb/pkg/types"
)

const (
	appDir   = "paperdb"
	fileName = "config.yaml"

	// EnvPrefix prefixes environment variables that override stored values
	// (e.g. PAPERDB_SHEET_ID, PAPERDB_OUT).
	EnvPrefix = "PAPERDB"
)

// ErrNotInitialized is returned by Load when no configuration has been saved.
var ErrNotInitialized = errors.New("paperdb is not initialized: run 'paperdb init <sheet-id>'")

// DefaultPath returns the config file location under the user config
// directory, e.g. ~/.config/paperdb/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Save writes cfg to path as YAML, replacing any existing file. The only
// validation is that the sheet ID is non-empty.
func Save(path string, cfg types.Config) error {
	cfg.SheetID = strings.TrimSpace(cfg.SheetID)
	if cfg.SheetID == "" {
		return fmt.Errorf("sheet id must not be empty")
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendCSV
	}
	if !cfg.Backend.Valid() {
		return fmt.Errorf("unknown backend %q (want csv, xlsx or api)", cfg.Backend)
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration at path. Values may be overridden by
// PAPERDB_* environment variables. A missing file, or one without a sheet
// ID, yields ErrNotInitialized.
func Load(path string) (types.Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Config{}, ErrNotInitialized
		}
		return types.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{"sheet_id", "out", "gid", "backend"} {
		if err := v.BindEnv(key); err != nil {
			return types.Config{}, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return types.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.SheetID = strings.TrimSpace(cfg.SheetID)
	if cfg.SheetID == "" {
		return types.Config{}, ErrNotInitialized
	}
	if cfg.Backend == "" {
		cfg.Backend = types.BackendCSV
	}
	return cfg, nil
}

// Reset removes the config file. It reports whether a file was removed.
func Reset(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("removing config %s: %w", path, err)
}
