package xtask

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/starford/proverb/internal/parser"
	"github.com/starford/proverb/internal/searchpath"
)

const (
	roffParagraph = "\n.PP\n"
	roffLineBreak = "\n.br\n"
)

// ManPage is one rendered manual page.
type ManPage struct {
	Name    string
	Section int
	Text    string
}

// FileName is the compressed file name, e.g. proverb.6.gz.
func (p ManPage) FileName() string {
	return fmt.Sprintf("%s.%d.gz", p.Name, p.Section)
}

// InstallDir is where p goes under prefix.
func (p ManPage) InstallDir(prefix string) string {
	return filepath.Join(prefix, "share", "man", fmt.Sprintf("man%d", p.Section))
}

type roffPage struct {
	name     string
	section  int
	sections []string
}

func newRoffPage(name string, section int) *roffPage {
	return &roffPage{name: name, section: section}
}

func (p *roffPage) add(title string, content ...string) *roffPage {
	p.sections = append(p.sections,
		".SH "+strings.ToUpper(title)+"\n"+strings.Join(content, ""))
	return p
}

func (p *roffPage) render() ManPage {
	var b strings.Builder
	fmt.Fprintf(&b, ".TH %s %d\n", strings.ToUpper(escape(p.name)), p.section)
	for _, s := range p.sections {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	return ManPage{Name: p.name, Section: p.section, Text: b.String()}
}

// escape makes s safe as roff text.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\e`)
	s = strings.ReplaceAll(s, "-", `\-`)
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, ".") || strings.HasPrefix(l, "'") {
			lines[i] = `\&` + l
		}
	}
	return strings.Join(lines, "\n")
}

func bold(s string) string   { return `\fB` + escape(s) + `\fR` }
func italic(s string) string { return `\fI` + escape(s) + `\fR` }

func tagged(tag string, body ...string) string {
	return ".TP\n" + tag + "\n" + strings.Join(body, "") + "\n"
}

func example(s string) string {
	return ".EX\n" + escape(s) + "\n.EE"
}

// proverbFileGlobs lists the searched data directories as documented,
// sorted and without duplicates (prefix may well be /usr/local).
func proverbFileGlobs(prefix string) []string {
	share := "/share/" + searchpath.AppName + "/*"
	globs := []string{
		"/usr" + share,
		"/usr/local" + share,
		"$HOME/.local" + share,
		strings.TrimSuffix(filepath.ToSlash(prefix), "/") + share,
	}
	slices.Sort(globs)
	return slices.Compact(globs)
}

const copyright = "SPDX-License-Identifier: \\fBMIT\\fR OR \\fBApache\\-2.0\\fR"

// RenderManPages renders proverb(6) and proverb-files(5) for an
// installation under prefix.
func RenderManPages(prefix string) []ManPage {
	globs := proverbFileGlobs(prefix)

	var files []string
	var synopsis []string
	for _, g := range globs {
		files = append(files, tagged(italic(g), "proverb files; see ", bold("proverb-files"), "(5)."))
		synopsis = append(synopsis, italic(g))
	}

	program := newRoffPage("proverb", 6).
		add("name", escape("proverb - print a random, likely uninteresting, adage")).
		add("synopsis", bold("proverb")).
		add("description",
			bold("proverb"),
			" prints a random proverb when invoked. Proverbs are read from ",
			bold("proverb-files"), "(5).",
			roffParagraph,
			"One file is chosen at random from all regular files in the directories listed under ",
			bold("FILES"),
			", then one proverb is chosen at random from that file. ",
			"When standard output is a terminal the proverb is word wrapped to its width.").
		add("environment",
			tagged(bold(searchpath.EnvConfigFile), "Path of a YAML configuration file."),
			tagged(bold(searchpath.EnvXDGDataHome), "Base of the per-user data directory."),
			tagged(bold(searchpath.EnvPrefix)+", "+bold(searchpath.EnvGOBIN)+", "+bold(searchpath.EnvGOPATH),
				"Consulted, in that order, for the installation prefix when none was built in.")).
		add("files", files...).
		add("exit status", "0 when a proverb was printed, 1 otherwise.").
		add("copyright", copyright).
		add("see also", bold("proverb-files"), "(5)")

	sample := parser.Join([]string{
		"A proverb.",
		"\"Why am I writing a manual page at 2am?\"\n    - the author of this page",
		"Another proverb!",
	})

	format := newRoffPage("proverb-files", 5).
		add("name",
			escape("proverb files - contain various, likely uninteresting, adages for "),
			bold("proverb"), "(6)").
		add("synopsis", strings.Join(synopsis, roffLineBreak)).
		add("description",
			roffParagraph,
			bold("proverb files"),
			" store a number of proverbs. These proverbs are UTF\\-8 strings separated by ",
			"a line containing only a percent sign ('%'). In this way, they are similar to ",
			bold("strfile"),
			"(8)'s text files. However, there are some differences between the two formats:",
			roffParagraph,
			"* Leading/trailing percent signs are not required (though are accepted).",
			roffLineBreak,
			"* ", bold(".dat"), " files are not required (or used).",
			roffLineBreak,
			"* Every percent sign separates proverbs, even in the middle of a line; there is no escape.").
		add("examples", example(sample)).
		add("copyright", copyright).
		add("see also", bold("proverb"), "(6)")

	return []ManPage{program.render(), format.render()}
}

// WriteManPages renders the pages for prefix and writes them gzipped into
// dir, returning the written paths.
func WriteManPages(dir, prefix string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("xtask: mkdir %s: %w", dir, err)
	}
	var paths []string
	for _, page := range RenderManPages(prefix) {
		p := filepath.Join(dir, page.FileName())
		if err := writeGzip(p, page.Text); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeGzip(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("xtask: create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	zw, err := gzip.NewWriterLevel(bw, gzip.BestCompression)
	if err != nil {
		return fmt.Errorf("xtask: gzip: %w", err)
	}
	if _, err := zw.Write([]byte(text)); err != nil {
		return fmt.Errorf("xtask: write %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("xtask: write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("xtask: write %s: %w", path, err)
	}
	return f.Close()
}
