// Package storage enumerates proverb files in search directories and reads
// them back.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnreadable wraps any failure to open or fully read a listed file.
var ErrUnreadable = errors.New("storage: file unreadable")

// Collection is the result of Collect.
type Collection struct {
	// Files holds regular files in directory order, then listing order.
	Files []string
	// Skipped holds the errors of directories and entries that were
	// passed over. They are informational only.
	Skipped []error
}

// Collect lists every directory in dirs and keeps the entries whose
// metadata (following symlinks) says they are regular files. Directories
// that are missing or unreadable are skipped and recorded in Skipped.
func Collect(dirs []string) Collection {
	var c Collection
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			c.Skipped = append(c.Skipped, fmt.Errorf("storage: list %s: %w", dir, err))
			// ReadDir may return what it read before failing.
			if len(entries) == 0 {
				continue
			}
		}
		for _, e := range entries {
			p := filepath.Join(dir, e.Name())
			info, err := os.Stat(p)
			if err != nil {
				c.Skipped = append(c.Skipped, fmt.Errorf("storage: stat %s: %w", p, err))
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			c.Files = append(c.Files, p)
		}
	}
	return c
}

// Read returns the full text of the file at path. Invalid UTF-8 sequences
// are replaced with U+FFFD.
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrUnreadable, path, err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
