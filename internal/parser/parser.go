// Package parser splits proverb files into individual entries.
//
// A proverb file is UTF-8 text whose entries are separated by the '%'
// character, conventionally on a line of its own:
//
//	A proverb.
//	%
//	Another proverb!
//
// Every '%' is a delimiter, wherever it appears. There is no escape for a
// literal percent sign.
package parser

import "strings"

// Delimiter separates entries in a proverb file.
const Delimiter = '%'

// Parse splits content on every Delimiter, trims surrounding whitespace from
// each piece, and drops pieces that end up empty. Leading and trailing
// delimiters are therefore optional, and content without any delimiter is a
// single entry.
func Parse(content string) []string {
	var out []string
	for _, piece := range strings.Split(content, string(Delimiter)) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, piece)
	}
	return out
}

// Join renders entries back into the file format, one delimiter line between
// each pair.
func Join(entries []string) string {
	return strings.Join(entries, "\n"+string(Delimiter)+"\n")
}
