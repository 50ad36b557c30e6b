package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/joho/godotenv/autoload"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/urfave/cli/v3"

	"github.com/starford/proverb/internal/xtask"
)

func install(ctx context.Context, cmd *cli.Command) error {
	return xtask.Install(ctx, xtask.InstallOptions{
		Prefix:    cmd.String("prefix"),
		DestDir:   cmd.String("dest-dir"),
		SkipClean: cmd.Bool("skip-clean"),
		Runner:    xtask.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
		Logger:    slog.Default(),
		Stdin:     os.Stdin,
		Stderr:    os.Stderr,
		Getenv:    os.Getenv,
		HomeDir:   homedir.Dir,
	})
}

func manPages(_ context.Context, cmd *cli.Command) error {
	prefix, err := xtask.ResolvePrefix(cmd.String("prefix"), os.Getenv, homedir.Dir)
	if err != nil {
		return err
	}
	layout, err := xtask.NewLayout(prefix, "")
	if err != nil {
		return err
	}
	paths, err := xtask.WriteManPages(filepath.Join(xtask.TargetDir, "man_pages"), layout.Prefix)
	if err != nil {
		return err
	}
	for _, p := range paths {
		slog.Info("wrote manual page", slog.String("path", p))
	}
	return nil
}

func prefixFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "prefix",
		Usage: "Installation prefix, e.g. /usr/local (default: $PREFIX, $GOBIN/.., $GOPATH or ~/go)",
	}
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{})))

	cmd := &cli.Command{
		Name:  "xtask",
		Usage: "Build, install and document proverb",
		Commands: []*cli.Command{
			{
				Name:   "install",
				Usage:  "Build a release binary and install it with its data files and manual pages",
				Action: install,
				Flags: []cli.Flag{
					prefixFlag(),
					&cli.StringFlag{
						Name:  "dest-dir",
						Usage: "Install as if this directory were /, for staging packages",
						Value: "/",
					},
					&cli.BoolFlag{
						Name:    "skip-clean",
						Aliases: []string{"s"},
						Usage:   "Keep the existing target directory",
					},
				},
			},
			{
				Name:   "man-pages",
				Usage:  "Render gzipped manual pages into target/man_pages",
				Action: manPages,
				Flags:  []cli.Flag{prefixFlag()},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("xtask error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
