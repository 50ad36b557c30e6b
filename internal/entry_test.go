package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/proverb/internal/storage"
	"github.com/starford/proverb/internal/testutil"
)

type notTTY struct{}

func (notTTY) IsTerminal() bool    { return false }
func (notTTY) Width() (int, error) { return 0, errors.New("not a tty") }

type tty struct{ width int }

func (t tty) IsTerminal() bool    { return true }
func (t tty) Width() (int, error) { return t.width, nil }

// first always picks index 0.
type first struct{}

func (first) IntN(int) int { return 0 }

func run(t *testing.T, opts ...Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	base := []Option{
		WithConfig(NewDefaultConfig()),
		WithStdout(&out),
		WithTerminal(notTTY{}),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	err := Run(context.Background(), append(base, opts...)...)
	return out.String(), err
}

func TestRun_PrintsOneOfTwoProverbs(t *testing.T) {
	dirA := testutil.ProverbDir(t, map[string]string{
		"wisdom": "Look before you leap.\n%\nHaste makes waste.\n",
	})
	dirB := testutil.MissingDir(t)

	for i := 0; i < 20; i++ {
		out, err := run(t, WithSearchDirs(dirA, dirB))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if out != "Look before you leap.\n" && out != "Haste makes waste.\n" {
			t.Fatalf("unexpected output %q", out)
		}
	}
}

func TestRun_NoFiles(t *testing.T) {
	empty := testutil.ProverbDir(t, nil)
	_, err := run(t, WithSearchDirs(empty))

	var nf *NoFilesError
	if !errors.As(err, &nf) {
		t.Fatalf("Run error = %v, want NoFilesError", err)
	}
	if !strings.Contains(err.Error(), empty) {
		t.Errorf("message does not list %s:\n%s", empty, err)
	}
}

func TestRun_NoFilesListsExtraDirs(t *testing.T) {
	extra := testutil.MissingDir(t)
	cfg := NewDefaultConfig()
	cfg.Search.ExtraDirs = []string{extra}

	_, err := run(t, WithSearchDirs(), WithConfig(cfg))
	var nf *NoFilesError
	if !errors.As(err, &nf) {
		t.Fatalf("Run error = %v, want NoFilesError", err)
	}
	if len(nf.Dirs) != 1 || nf.Dirs[0] != extra {
		t.Errorf("Dirs = %v, want [%s]", nf.Dirs, extra)
	}
}

func TestRun_ExtraDirsSearched(t *testing.T) {
	extra := testutil.ProverbDir(t, map[string]string{"p": "From the extra dir."})
	cfg := NewDefaultConfig()
	cfg.Search.ExtraDirs = []string{extra}

	out, err := run(t, WithSearchDirs(testutil.MissingDir(t)), WithConfig(cfg))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "From the extra dir.\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_NoProverbs(t *testing.T) {
	dir := testutil.ProverbDir(t, map[string]string{"blank": "  %\n%\n\t\n%"})
	_, err := run(t, WithSearchDirs(dir))

	var np *NoProverbsError
	if !errors.As(err, &np) {
		t.Fatalf("Run error = %v, want NoProverbsError", err)
	}
	if want := filepath.Join(dir, "blank"); np.Path != want || !strings.Contains(err.Error(), want) {
		t.Errorf("error = %v, want mention of %s", err, want)
	}
}

// vanishing removes the chosen file before it is read.
type vanishing struct{ files []string }

func (v vanishing) IntN(int) int {
	for _, f := range v.files {
		_ = os.Remove(f)
	}
	return 0
}

func TestRun_FileRemovedAfterListing(t *testing.T) {
	dir := testutil.ProverbDir(t, map[string]string{"p": "gone soon"})
	path := filepath.Join(dir, "p")

	_, err := run(t, WithSearchDirs(dir), WithSource(vanishing{files: []string{path}}))

	var ve *VanishedError
	if !errors.As(err, &ve) {
		t.Fatalf("Run error = %v, want VanishedError", err)
	}
	if !errors.Is(err, storage.ErrUnreadable) {
		t.Errorf("error should wrap storage.ErrUnreadable: %v", err)
	}
	if ve.Path != path {
		t.Errorf("Path = %q, want %q", ve.Path, path)
	}
}

func TestRun_WrapsOnTerminal(t *testing.T) {
	dir := testutil.ProverbDir(t, map[string]string{"p": "one two three four five six"})
	out, err := run(t, WithSearchDirs(dir), WithTerminal(tty{width: 10}), WithSource(first{}))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "one two\nthree four\nfive six\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_PipeOutputUnwrapped(t *testing.T) {
	text := strings.Repeat("word ", 40) + "end"
	dir := testutil.ProverbDir(t, map[string]string{"p": text})
	out, err := run(t, WithSearchDirs(dir))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != text+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("Run without config should fail")
	}
}

func TestRun_LogsWrapDecision(t *testing.T) {
	dir := testutil.ProverbDir(t, map[string]string{"p": "short"})
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := run(t, WithSearchDirs(dir), WithTerminal(tty{width: 42}), WithLogger(logger)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(logs.String(), "wrap=true width=42") {
		t.Errorf("wrap decision not logged:\n%s", logs.String())
	}
}
