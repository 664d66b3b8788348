// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes rendered documents to disk.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFile is the output file name used when neither the command line
// nor the config names one.
const DefaultFile = "PaperDB.md"

// ErrWrite is returned when the output file cannot be written.
var ErrWrite = errors.New("cannot write output")

// Write replaces path with doc. The document goes to a temporary file in the
// same directory first and is renamed into place, so a failed write never
// leaves a truncated file behind. Missing parent directories are created.
func Write(path, doc string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrWrite, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.WriteString(doc); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrWrite, path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", ErrWrite, path, err)
	}
	return nil
}

// Resolve picks the output path: the explicit argument, then the configured
// path, then DefaultFile in the working directory. A leading ~/ expands to
// the home directory and the result is made absolute.
func Resolve(arg, configured string) (string, error) {
	path := arg
	if path == "" {
		path = configured
	}
	if path == "" {
		path = DefaultFile
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", path, err)
		}
		path = filepath.Join(home, path[1:])
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}
