package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-minutes/internal/bootstrap"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/watcher"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
)

type watchFlags struct {
	processFlags
	settle   time.Duration
	backfill bool
}

func newWatchCommand(deps *commandDeps, root *rootOptions) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Generate minutes for every recording added to a directory",
		Long: `Watch a directory and generate minutes for every supported recording
created or moved into it. Recordings are processed one at a time; each
one's exports go to <out>/<recording name>/.

A failed recording is logged and skipped. Stop with Ctrl+C.

Examples:
  minutes watch ./inbox --out ./minutes --format JSON,PDF

  # Also process recordings already in the directory
  minutes watch ./inbox --backfill`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), deps, root, flags, args[0], cmd.OutOrStdout())
		},
	}
	flags.register(cmd, "minutes-out")
	cmd.Flags().DurationVar(&flags.settle, "settle", time.Second, "Wait this long after a file appears before processing it")
	cmd.Flags().BoolVar(&flags.backfill, "backfill", false, "Process recordings already present before watching")

	return cmd
}

func runWatch(ctx context.Context, deps *commandDeps, root *rootOptions, flags *watchFlags, dir string, stdout io.Writer) error {
	format, err := root.format()
	if err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	if _, err := flags.options(); err != nil {
		return err
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	log := root.logger(cfg)
	app, err := deps.NewApp(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}
	defer app.Close()

	w := watcher.New(dir, recordingHandler(app, flags, format, stdout), log, watcher.WithSettleDelay(flags.settle))
	if flags.backfill {
		if err := w.Backfill(ctx); err != nil {
			return err
		}
	}
	if format == OutputFormatText {
		fmt.Fprintf(stdout, "Watching %s (exports in %s)\n", dir, flags.outDir)
	}
	return w.Run(ctx)
}

// recordingOutput is one line of json/yaml output per processed recording
type recordingOutput struct {
	Source   string        `json:"source" yaml:"source"`
	RunID    string        `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Files    []writtenFile `json:"files,omitempty" yaml:"files,omitempty"`
	Warnings []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func recordingHandler(app *bootstrap.App, flags *watchFlags, format OutputFormat, stdout io.Writer) watcher.Handler {
	return func(ctx context.Context, path string) error {
		outDir := filepath.Join(flags.outDir, recordingName(path))
		result, files, err := processRecording(ctx, app, &flags.processFlags, path, outDir, pipeline.Nop)

		rec := recordingOutput{Source: path, Files: files}
		if result != nil {
			rec.RunID = result.RunID
			rec.Warnings = result.Warnings
		}
		if err != nil {
			rec.Error = err.Error()
		}

		switch format {
		case OutputFormatText:
			if err != nil {
				fmt.Fprintf(stdout, "✗ %s: %v\n", filepath.Base(path), err)
			} else {
				fmt.Fprintf(stdout, "✓ %s -> %s (%d files, %d warnings)\n", filepath.Base(path), outDir, len(files), len(rec.Warnings))
			}
		case OutputFormatYAML:
			fmt.Fprintln(stdout, "---")
			if werr := writeStructured(stdout, format, rec); werr != nil {
				app.Logger.Warn("failed to write output", zap.Error(werr))
			}
		default:
			if werr := writeStructured(stdout, format, rec); werr != nil {
				app.Logger.Warn("failed to write output", zap.Error(werr))
			}
		}
		return err
	}
}

// recordingName is the file name without its extension
func recordingName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
