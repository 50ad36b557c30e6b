package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/proverb/internal"
	"github.com/starford/proverb/internal/searchpath"
	pkgconfig "github.com/starford/proverb/pkg/config"
)

func loadConfig() (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()

	if path := os.Getenv(searchpath.EnvConfigFile); path != "" {
		if err := pkgconfig.Load(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if path := internal.DefaultConfigPath(); path != "" {
		if _, err := pkgconfig.LoadOptional(path, cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func run(ctx context.Context, _ *cli.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	return internal.Run(ctx,
		internal.WithConfig(cfg),
		internal.WithLogger(slog.Default()),
	)
}

// newCommand builds the root command. It takes no flags: anything on the
// command line, flag-like or not, is ignored.
func newCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:            "proverb",
		Usage:           "Print a random, likely uninteresting, adage",
		Action:          action,
		HideHelp:        true,
		HideVersion:     true,
		SkipFlagParsing: true,
	}
}

func main() {
	if err := newCommand(run).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
