package internal

import (
	"fmt"
	"strings"
)

// NoFilesError reports that none of the searched directories held a
// readable proverb file.
type NoFilesError struct {
	Dirs []string
}

func (e *NoFilesError) Error() string {
	var b strings.Builder
	b.WriteString("No proverb files found in the following directories:")
	for _, d := range e.Dirs {
		b.WriteString("\n")
		b.WriteString(d)
	}
	return b.String()
}

// VanishedError reports that a file found while listing could not be read
// when it was opened moments later.
type VanishedError struct {
	Path string
	Err  error
}

func (e *VanishedError) Error() string {
	return fmt.Sprintf("Proverb file %s disappeared between listing and reading it.\n"+
		"(It was probably removed in the meantime; try again.)", e.Path)
}

func (e *VanishedError) Unwrap() error { return e.Err }

// NoProverbsError reports that a file parsed to zero entries.
type NoProverbsError struct {
	Path string
}

func (e *NoProverbsError) Error() string {
	return fmt.Sprintf("No proverbs found in proverb file %s", e.Path)
}
