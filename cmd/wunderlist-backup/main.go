package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd := newRootCommand(os.Stdout, os.Stderr)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "wunderlist-backup",
		Usage:     "Export a Wunderlist account to a single JSON document",
		UsageText: "wunderlist-backup [options]",
		Flags:     getExportFlags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, setupLogging(stderr, cmd.String("log-level"))
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return exportAction(ctx, cmd, stdout)
		},
		Commands: []*cli.Command{
			getVersionCommand(stdout),
		},
	}
}

func getVersionCommand(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "version",
		Usage:     "Show version information",
		UsageText: "wunderlist-backup version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fmt.Fprintf(w, "wunderlist-backup version %s\n", version)
			fmt.Fprintf(w, "commit: %s\n", commit)
			fmt.Fprintf(w, "built: %s\n", date)
			return nil
		},
	}
}
