// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves credentials used by the api fetch backend. A
// secret is looked up first in the environment and then in a directory of
// plain-text files where the filename is the key and the trimmed contents
// are the value.
//
// Supported keys: google-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// GoogleAPIKey names the Sheets API key secret.
const GoogleAPIKey = "google-api-key"

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// EnvName returns the environment variable consulted for key,
// e.g. "google-api-key" -> "PAPERDB_GOOGLE_API_KEY".
func EnvName(key string) string {
	return "PAPERDB_" + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Lookup returns the value of key. The environment wins over dir/key. A
// missing or blank secret returns "" with no error; only an unreadable file
// is an error.
func Lookup(dir, key string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvName(key))); v != "" {
		return v, nil
	}
	if dir == "" {
		return "", nil
	}

	data, err := os.ReadFile(filepath.Join(dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading secret %s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}
