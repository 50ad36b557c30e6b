// Package testutil provides shared test helpers for laying out proverb directories.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// ProverbDir creates a temporary directory holding files (name to content)
// and returns its path. It is removed when the test ends.
func ProverbDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// MissingDir returns a path under a temporary directory that does not exist.
func MissingDir(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing")
}
