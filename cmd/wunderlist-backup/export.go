package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/mholzen/wunderlist-backup/pkg/backup"
	"github.com/mholzen/wunderlist-backup/pkg/client"
	"github.com/mholzen/wunderlist-backup/pkg/wunderlist"
	"github.com/urfave/cli/v3"
)

type exportOptions struct {
	allKinds bool
}

type fetchFunc func(ctx context.Context, c wunderlist.Client, listID string) (wunderlist.Result, error)

// listStep fetches one collection of a list into kind
type listStep struct {
	label string
	kind  wunderlist.Kind
	fetch fetchFunc
}

func fetchKind(kind wunderlist.Kind) fetchFunc {
	return func(ctx context.Context, c wunderlist.Client, listID string) (wunderlist.Result, error) {
		return c.Fetch(ctx, kind, listID)
	}
}

func kindStep(kind wunderlist.Kind) listStep {
	return listStep{label: kind.Label(), kind: kind, fetch: fetchKind(kind)}
}

// listSteps returns the per-list fetches in export order. Completed tasks
// are merged into tasks right after the open ones.
func listSteps(opts exportOptions) []listStep {
	steps := []listStep{
		kindStep(wunderlist.Tasks),
		{
			label: "Completed Tasks",
			kind:  wunderlist.Tasks,
			fetch: func(ctx context.Context, c wunderlist.Client, listID string) (wunderlist.Result, error) {
				return c.CompletedTasks(ctx, listID)
			},
		},
		kindStep(wunderlist.Reminders),
		kindStep(wunderlist.Subtasks),
		kindStep(wunderlist.Notes),
		kindStep(wunderlist.TaskPositions),
		kindStep(wunderlist.SubtaskPositions),
	}
	if opts.allKinds {
		steps = append(steps, kindStep(wunderlist.TaskComments), kindStep(wunderlist.Webhooks))
	}
	return steps
}

func accountKinds(opts exportOptions) []wunderlist.Kind {
	kinds := []wunderlist.Kind{wunderlist.Lists, wunderlist.Folders}
	if opts.allKinds {
		kinds = append(kinds, wunderlist.Memberships)
	}
	return kinds
}

// runExport walks the account and returns the accumulated backup.
// Failed requests contribute nothing; transport errors abort the walk.
func runExport(ctx context.Context, c wunderlist.Client, opts exportOptions) (*backup.Backup, error) {
	userID, err := c.UserID(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve user: %w", err)
	}
	b := backup.New(userID)
	slog.Info("initialized", "user", userID)

	var lists []any
	for _, kind := range accountKinds(opts) {
		result, err := c.Fetch(ctx, kind, "")
		if err != nil {
			return nil, err
		}
		b.AddResult(kind, result)
		if kind == wunderlist.Lists && result.OK() {
			lists = backup.Normalize(result.Data)
		}
	}

	slog.Info(fmt.Sprintf("processing %d lists", len(lists)))

	steps := listSteps(opts)
	for i, item := range lists {
		list, ok := item.(map[string]any)
		if !ok || list["id"] == nil {
			slog.Warn("skipping list without id", "index", i+1)
			continue
		}
		listID := fmt.Sprint(list["id"])
		slog.Info(fmt.Sprintf("(%d/%d) %v", i+1, len(lists), list["title"]), "list_id", listID)

		for _, step := range steps {
			result, err := step.fetch(ctx, c, listID)
			if err != nil {
				return nil, err
			}
			added := b.AddResult(step.kind, result)
			slog.Info("   ... "+step.label, "count", added, "outcome", result.Outcome)
		}
	}

	hits, _ := c.CacheStats()
	slog.Info("export complete", "lists", len(lists), "cache_hits", hits, "failed_requests", c.Failures())
	return b, nil
}

func exportAction(ctx context.Context, cmd *cli.Command, stdout io.Writer) error {
	creds, err := resolveCredentials(cmd)
	if err != nil {
		return err
	}

	wc := wunderlist.NewWunderlistClient(cmd.String("base-url"), creds, client.WithTimeout(cmd.Duration("timeout")))

	b, err := runExport(ctx, wc, exportOptions{allKinds: cmd.Bool("all-kinds")})
	if err != nil {
		return err
	}

	doc := b.Document()
	pretty := cmd.Bool("pretty")

	if output := cmd.String("output"); output != "" {
		path, err := backup.WriteFile(output, doc, b.Exported(), pretty)
		if err != nil {
			return err
		}
		slog.Info("backup written", "path", path)
		return nil
	}

	if !cmd.IsSet("pretty") {
		pretty = isTerminal(stdout)
	}
	return backup.Encode(stdout, doc, pretty)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
