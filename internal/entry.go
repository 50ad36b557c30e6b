// Package internal wires the proverb pipeline: resolve directories, collect
// files, pick one, parse it, pick a proverb and print it.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/starford/proverb/internal/output"
	"github.com/starford/proverb/internal/parser"
	"github.com/starford/proverb/internal/pick"
	"github.com/starford/proverb/internal/searchpath"
	"github.com/starford/proverb/internal/storage"
)

// Run prints one random proverb. The returned error is one of
// *NoFilesError, *VanishedError or *NoProverbsError, or a write failure.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	app.setDefaults()

	cfg := app.config
	logger := app.logger

	dirs := slices.Concat(app.dirs(), cfg.Search.ExtraDirs)
	logger.DebugContext(ctx, "search directories resolved", slog.Any("dirs", dirs))

	collection := storage.Collect(dirs)
	for _, err := range collection.Skipped {
		logger.DebugContext(ctx, "skipped", slog.String("error", err.Error()))
	}

	file, ok := pick.Pick(app.source, collection.Files)
	if !ok {
		return &NoFilesError{Dirs: dirs}
	}
	logger.DebugContext(ctx, "proverb file chosen",
		slog.String("path", file),
		slog.Int("candidates", len(collection.Files)))

	content, err := storage.Read(file)
	if err != nil {
		return &VanishedError{Path: file, Err: err}
	}

	proverbs := parser.Parse(content)
	proverb, ok := pick.Pick(app.source, proverbs)
	if !ok {
		return &NoProverbsError{Path: file}
	}
	logger.DebugContext(ctx, "proverb chosen", slog.Int("proverbs", len(proverbs)))

	width, wrap := output.WrapWidth(app.terminal)
	logger.DebugContext(ctx, "wrap decided", slog.Bool("wrap", wrap), slog.Int("width", width))

	if err := output.Print(app.stdout, proverb, app.terminal); err != nil {
		return fmt.Errorf("write proverb: %w", err)
	}
	return nil
}

func (a *application) setDefaults() {
	if a.stdout == nil {
		a.stdout = os.Stdout
	}
	if a.terminal == nil {
		a.terminal = terminalFor(a.stdout)
	}
	if a.source == nil {
		a.source = pick.NewSource()
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: a.config.LogLevel,
		}))
	}
	if a.dirs == nil {
		a.dirs = searchpath.Default().Dirs
	}
}

// terminalFor inspects w only when it is a file; anything else is treated as
// a pipe.
func terminalFor(w io.Writer) output.Terminal {
	if f, ok := w.(*os.File); ok {
		return output.FileTerminal{File: f}
	}
	return pipe{}
}

type pipe struct{}

func (pipe) IsTerminal() bool    { return false }
func (pipe) Width() (int, error) { return 0, errors.New("output: not a terminal") }
