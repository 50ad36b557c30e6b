package internal

import (
	"io"
	"log/slog"

	"github.com/starford/proverb/internal/output"
	"github.com/starford/proverb/internal/pick"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config   *Config
	stdout   io.Writer
	terminal output.Terminal
	source   pick.Source
	logger   *slog.Logger
	dirs     func() []string
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithStdout sets where the proverb is written.
func WithStdout(w io.Writer) Option {
	return func(a *application) {
		a.stdout = w
	}
}

// WithTerminal sets the terminal used to decide on wrapping.
func WithTerminal(t output.Terminal) Option {
	return func(a *application) {
		a.terminal = t
	}
}

// WithSource sets the randomness used for both selections.
func WithSource(src pick.Source) Option {
	return func(a *application) {
		a.source = src
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *application) {
		a.logger = l
	}
}

// WithSearchDirs replaces the standard directories with dirs. Extra
// directories from the config are still appended.
func WithSearchDirs(dirs ...string) Option {
	return func(a *application) {
		a.dirs = func() []string { return dirs }
	}
}
