package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse_ThreeEntries(t *testing.T) {
	got := Parse("A\n%\nB\n%\nC")
	if diff := cmp.Diff([]string{"A", "B", "C"}, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_TrimsOnlyOuterWhitespace(t *testing.T) {
	got := Parse("  hello world  ")
	if diff := cmp.Diff([]string{"hello world"}, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoDelimiter(t *testing.T) {
	content := "\n  Line one.\n  Line two.\n\n"
	got := Parse(content)
	if diff := cmp.Diff([]string{"Line one.\n  Line two."}, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_LeadingAndTrailingDelimiters(t *testing.T) {
	got := Parse("%\nfirst\n%\nsecond\n%\n")
	if diff := cmp.Diff([]string{"first", "second"}, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_OnlyDelimitersAndWhitespace(t *testing.T) {
	for _, content := range []string{"", "   \n\t", "%", "%\n%\n  %  \n%%"} {
		if got := Parse(content); len(got) != 0 {
			t.Errorf("Parse(%q) = %q, want no entries", content, got)
		}
	}
}

func TestParse_MidLinePercentSplits(t *testing.T) {
	got := Parse("50% of the time it works every time")
	if diff := cmp.Diff([]string{"50", "of the time it works every time"}, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		"A\n%\nB\n%\nC",
		"%%  x  %\n\n% y\nz %",
		"no delimiters here",
		"\t%\n",
		"unicode — ünï %\n%\n 日本語 ",
	}
	for _, in := range inputs {
		first := Parse(in)
		second := Parse(Join(first))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("reparse of %q changed entries (-first +second):\n%s", in, diff)
		}
	}
}
