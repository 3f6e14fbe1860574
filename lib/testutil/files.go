// Copyright 2026 The Scatterpix Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// EnvironmentVariable matches config.EnvironmentVariable. It is
// duplicated so lib/config tests can use this package.
const EnvironmentVariable = "SCATTERPIX_CONFIG"

// WriteFile writes content to directory/name and returns the path.
func WriteFile(t *testing.T, directory, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(directory, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of path.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return content
}

// IsolateConfig clears SCATTERPIX_CONFIG for the duration of the test
// so commands run against built-in defaults.
func IsolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv(EnvironmentVariable, "")
}

// WriteConfig writes a YAML configuration file and points
// SCATTERPIX_CONFIG at it. It returns the path so the test can rewrite
// the file later.
func WriteConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := WriteFile(t, t.TempDir(), "config.yaml", []byte(yaml))
	t.Setenv(EnvironmentVariable, path)
	return path
}
