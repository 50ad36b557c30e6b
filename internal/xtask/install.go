package xtask

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/starford/proverb/internal/searchpath"
)

// PrefixVar is the linker symbol that receives the installation prefix.
const PrefixVar = "github.com/starford/proverb/internal/buildinfo.Prefix"

// Repository-relative paths used by the installer.
const (
	TargetDir    = "target"
	DataFilesDir = "proverb_files"
	binaryName   = searchpath.AppName
)

// ErrAborted is returned when the user declines to retry with sudo.
var ErrAborted = errors.New("xtask: installation aborted")

// Layout is where an installation puts things.
type Layout struct {
	// Prefix is baked into the binary.
	Prefix string
	// Staged is Prefix relocated under the destination directory; files are
	// copied here.
	Staged string
}

// Validate validates the layout.
func (l *Layout) Validate() error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Prefix, validation.Required, validation.By(absolute)),
		validation.Field(&l.Staged, validation.Required, validation.By(absolute)),
	)
}

func absolute(value any) error {
	s, _ := value.(string)
	if !filepath.IsAbs(s) {
		return errors.New("must be an absolute path")
	}
	return nil
}

// BinDir is the binary destination.
func (l Layout) BinDir() string { return filepath.Join(l.Staged, "bin") }

// DataDir is the proverb file destination.
func (l Layout) DataDir() string { return filepath.Join(l.Staged, "share", searchpath.AppName) }

// NewLayout makes prefix and destDir absolute (resolving symlinks where the
// paths exist) and stages prefix under destDir. An empty destDir means "/".
func NewLayout(prefix, destDir string) (Layout, error) {
	if destDir == "" {
		destDir = string(filepath.Separator)
	}
	p, err := canonical(prefix)
	if err != nil {
		return Layout{}, err
	}
	d, err := canonical(destDir)
	if err != nil {
		return Layout{}, err
	}

	// Joining two absolute paths: drop the volume and root of the prefix
	// so it nests under destDir.
	unrooted := strings.TrimLeft(p[len(filepath.VolumeName(p)):], `/\`)
	l := Layout{Prefix: p, Staged: filepath.Join(d, unrooted)}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("xtask: layout: %w", err)
	}
	return l, nil
}

func canonical(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("xtask: resolve %s: %w", p, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// InstallOptions configures Install.
type InstallOptions struct {
	// Prefix defaults to searchpath.PrefixFromEnv.
	Prefix string
	// DestDir stages the installation as if it were the root directory.
	DestDir string
	// SkipClean keeps an existing target directory.
	SkipClean bool

	// Root is the repository checkout; defaults to ".".
	Root   string
	Runner Runner
	Logger *slog.Logger
	// Stdin answers the elevation prompt; Stderr shows it.
	Stdin  io.Reader
	Stderr io.Writer

	Getenv  func(string) string
	HomeDir func() (string, error)
}

// ResolvePrefix returns the explicit prefix or the environment's.
func ResolvePrefix(explicit string, getenv func(string) string, home func() (string, error)) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p, ok := searchpath.PrefixFromEnv(getenv, home); ok {
		return p, nil
	}
	return "", errors.New("couldn't determine installation prefix")
}

// BuildCommand compiles a release binary with prefix baked in.
func BuildCommand(root, prefix string) Command {
	c := NewCommand("go", "build",
		"-trimpath",
		"-tags", "release",
		"-ldflags", "-s -w -X "+PrefixVar+"="+prefix,
		"-o", filepath.Join(TargetDir, "release", binaryName),
		"./cmd/"+binaryName,
	)
	c.Dir = root
	return c
}

// Install builds proverb, renders its manual pages and copies everything
// into place. When copying fails the user is offered one retry under sudo.
func Install(ctx context.Context, opts InstallOptions) error {
	root := opts.Root
	if root == "" {
		root = "."
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if opts.Runner == nil {
		opts.Runner = ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	}
	getenv, home := opts.Getenv, opts.HomeDir
	if getenv == nil {
		getenv = os.Getenv
	}
	if home == nil {
		home = homedir.Dir
	}

	prefix, err := ResolvePrefix(opts.Prefix, getenv, home)
	if err != nil {
		return err
	}
	layout, err := NewLayout(prefix, opts.DestDir)
	if err != nil {
		return err
	}
	logger.Info("installing",
		slog.String("prefix", layout.Prefix),
		slog.String("staged", layout.Staged))

	target := filepath.Join(root, TargetDir)
	if !opts.SkipClean {
		logger.Info("cleaning", slog.String("dir", target))
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("xtask: clean: %w", err)
		}
	}

	build := BuildCommand(root, layout.Prefix)
	logger.Info("running", slog.String("cmd", build.String()))
	if err := opts.Runner.Run(ctx, build); err != nil {
		return err
	}

	manDir := filepath.Join(target, "man_pages")
	if _, err := WriteManPages(manDir, layout.Prefix); err != nil {
		return err
	}

	dataFiles, err := listDataFiles(filepath.Join(root, DataFilesDir))
	if err != nil {
		return err
	}

	copies := []Command{
		NewCommand("install", "-m", "755", "-D", "-t", layout.BinDir(),
			filepath.Join(target, "release", binaryName)),
		NewCommand("install", "-m", "644", "-D", "-t", layout.DataDir()).Arg(dataFiles...),
	}
	for _, page := range RenderManPages(layout.Prefix) {
		copies = append(copies, NewCommand("install", "-m", "644", "-D", "-t",
			page.InstallDir(layout.Staged), filepath.Join(manDir, page.FileName())))
	}

	if runAll(ctx, opts.Runner, logger, copies) == nil {
		return nil
	}
	return retryElevated(ctx, opts, logger, layout, copies)
}

func retryElevated(ctx context.Context, opts InstallOptions, logger *slog.Logger, layout Layout, copies []Command) error {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	fmt.Fprintf(stderr, "Cannot install to `%s`. Try again with elevated permissions? [y/N] ", layout.Staged)
	answer, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && answer == "" && !errors.Is(err, io.EOF) {
		return fmt.Errorf("xtask: read answer: %w", err)
	}

	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y") {
		fmt.Fprintln(stderr, "Aborting. Please run the following commands as root:")
		printCommands(stderr, copies)
		return ErrAborted
	}

	elevated := make([]Command, len(copies))
	for i, c := range copies {
		elevated[i] = c.Prepend("sudo")
	}
	if err := runAll(ctx, opts.Runner, logger, elevated); err != nil {
		fmt.Fprintf(stderr, "Failed to either elevate permissions or install into `%s`.\n", layout.Staged)
		fmt.Fprintln(stderr, "Please run the following commands as root:")
		printCommands(stderr, copies)
		return err
	}
	return nil
}

func runAll(ctx context.Context, r Runner, logger *slog.Logger, cmds []Command) error {
	for _, c := range cmds {
		logger.Info("running", slog.String("cmd", c.String()))
		if err := r.Run(ctx, c); err != nil {
			logger.Warn("command failed", slog.String("cmd", c.String()), slog.String("error", err.Error()))
			return err
		}
	}
	return nil
}

func printCommands(w io.Writer, cmds []Command) {
	for _, c := range cmds {
		fmt.Fprintln(w, c)
	}
}

func listDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("xtask: list data files: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("xtask: no data files in %s", dir)
	}
	return files, nil
}
