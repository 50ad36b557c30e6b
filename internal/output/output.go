// Package output decides how a proverb is laid out on standard output.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Terminal describes the destination of the output.
type Terminal interface {
	// IsTerminal reports whether output goes to an interactive terminal.
	IsTerminal() bool
	// Width returns the current column count.
	Width() (int, error)
}

// FileTerminal is a Terminal backed by an open file, usually os.Stdout.
type FileTerminal struct {
	File *os.File
}

// IsTerminal implements Terminal.
func (t FileTerminal) IsTerminal() bool {
	fd := t.File.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Width implements Terminal.
func (t FileTerminal) Width() (int, error) {
	w, _, err := term.GetSize(int(t.File.Fd()))
	if err != nil {
		return 0, fmt.Errorf("output: terminal size: %w", err)
	}
	return w, nil
}

// WrapWidth reports the width Format wraps to. ok is false when t is not
// interactive or its width cannot be determined.
func WrapWidth(t Terminal) (width int, ok bool) {
	if !t.IsTerminal() {
		return 0, false
	}
	width, err := t.Width()
	if err != nil {
		return 0, false
	}
	return width, true
}

// Format returns s wrapped to the terminal width when t is interactive and
// its width is known. Otherwise s is returned unchanged.
func Format(s string, t Terminal) string {
	width, ok := WrapWidth(t)
	if !ok {
		return s
	}
	return Wrap(s, width)
}

// Print writes Format(s, t) and a trailing newline to w.
func Print(w io.Writer, s string, t Terminal) error {
	_, err := fmt.Fprintln(w, Format(s, t))
	return err
}

// Wrap greedily fills lines up to width display columns, breaking only at
// whitespace. Words wider than width get a line of their own and are not
// split. Existing newlines are kept, and so is a line's indentation when it
// fits alongside the first word. Runs of inner whitespace collapse to one
// space. A width below 1 disables wrapping.
func Wrap(s string, width int) string {
	if width < 1 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = fill(line, width)
	}
	return strings.Join(lines, "\n")
}

func fill(line string, width int) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	col := 0
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	if iw := runewidth.StringWidth(indent); iw+runewidth.StringWidth(words[0]) <= width {
		b.WriteString(indent)
		col = iw
	}

	for i, word := range words {
		ww := runewidth.StringWidth(word)
		if i > 0 {
			if col+1+ww > width {
				b.WriteByte('\n')
				col = 0
			} else {
				b.WriteByte(' ')
				col++
			}
		}
		b.WriteString(word)
		col += ww
	}
	return b.String()
}
