package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/bootstrap"
	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/media"
	"github.com/johnquangdev/meeting-minutes/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-minutes/pkg/ai"
)

// processFlags are the per-run options shared by process and watch
type processFlags struct {
	title           string
	date            string
	participants    []string
	model           string
	formats         []string
	chunkLength     int
	maxSummaryWords int
	outDir          string
}

func (f *processFlags) register(cmd *cobra.Command, defaultOut string) {
	cmd.Flags().StringVar(&f.title, "title", "", "Meeting title (default \"Meeting\")")
	cmd.Flags().StringVar(&f.date, "date", "", "Meeting date, YYYY-MM-DD")
	cmd.Flags().StringSliceVarP(&f.participants, "participants", "p", nil, "Participant names, comma-separated or repeated")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "Model preset (qwen2.5-7b-instruct, llama-3.1-8b-instruct) or custom identifier")
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "Export formats: JSON, HTML, PDF, TXT (default from MINUTES_FORMATS)")
	cmd.Flags().IntVar(&f.chunkLength, "chunk-length", 0, "Audio chunk length in seconds, 10-60 (default from MINUTES_CHUNK_LENGTH)")
	cmd.Flags().IntVar(&f.maxSummaryWords, "max-summary-words", 0, "Summary word limit, 100-1000 (default from MINUTES_MAX_SUMMARY_WORDS)")
	cmd.Flags().StringVar(&f.outDir, "out", defaultOut, "Directory the export files are written to")
}

func (f *processFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Formats:         entities.ParseFormats(f.formats),
		ChunkLength:     f.chunkLength,
		MaxSummaryWords: f.maxSummaryWords,
	}
	if strings.TrimSpace(f.model) != "" {
		model, err := ai.ParseModel(f.model)
		if err != nil {
			return opts, err
		}
		opts.Model = model
	}
	return opts, nil
}

// writtenFile is one export written to disk
type writtenFile struct {
	Format string `json:"format" yaml:"format"`
	Path   string `json:"path" yaml:"path"`
	Bytes  int    `json:"bytes" yaml:"bytes"`
}

// processOutput is what process prints for json and yaml output
type processOutput struct {
	RunID                string                 `json:"run_id" yaml:"run_id"`
	Minutes              entities.MinutesRecord `json:"minutes" yaml:"minutes"`
	Speakers             []entities.SpeakerTurn `json:"speakers" yaml:"speakers"`
	AudioDurationSeconds float64                `json:"audio_duration_seconds" yaml:"audio_duration_seconds"`
	Files                []writtenFile          `json:"files" yaml:"files"`
	Warnings             []string               `json:"warnings" yaml:"warnings"`
}

func newProcessCommand(deps *commandDeps, root *rootOptions) *cobra.Command {
	flags := &processFlags{}

	cmd := &cobra.Command{
		Use:   "process <recording>",
		Short: "Generate minutes for one recording",
		Long: `Generate minutes for one recording and write the export files.

Supported inputs: ` + strings.Join(media.SupportedExtensions(), " ") + `

Examples:
  minutes process standup.mp4 --title "Daily standup" --date 2024-03-01 \
    --participants Ann,Ben --format JSON,PDF --out out

  # Machine readable result
  minutes process review.mp3 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), deps, root, flags, args[0], cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	flags.register(cmd, ".")
	return cmd
}

func runProcess(ctx context.Context, deps *commandDeps, root *rootOptions, flags *processFlags, path string, stdout, stderr io.Writer) error {
	format, err := root.format()
	if err != nil {
		return err
	}
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	app, err := deps.NewApp(ctx, cfg, root.logger(cfg))
	if err != nil {
		return fmt.Errorf("initializing pipeline: %w", err)
	}
	defer app.Close()

	var observer pipeline.Observer = pipeline.Nop
	if format == OutputFormatText {
		observer = progressPrinter(stderr)
	}

	result, files, err := processRecording(ctx, app, flags, path, flags.outDir, observer)
	if err != nil {
		return err
	}

	out := processOutput{
		RunID:                result.RunID,
		Minutes:              result.Minutes,
		Speakers:             result.Speakers,
		AudioDurationSeconds: result.AudioDurationSeconds,
		Files:                files,
		Warnings:             result.Warnings,
	}
	if format != OutputFormatText {
		return writeStructured(stdout, format, out)
	}
	printMinutesText(stdout, out)
	return nil
}

// processRecording runs the pipeline for path and writes the bundle into outDir
func processRecording(ctx context.Context, app *bootstrap.App, flags *processFlags, path, outDir string, observer pipeline.Observer) (*pipeline.Result, []writtenFile, error) {
	opts, err := flags.options()
	if err != nil {
		return nil, nil, err
	}

	result, err := app.Orchestrator.Process(ctx, pipeline.Input{
		Request: entities.NewMeetingRequest(flags.title, flags.date, flags.participants, path),
		Options: opts,
	}, observer)
	if err != nil {
		return nil, nil, err
	}

	files, err := writeBundle(outDir, result.Bundle)
	if err != nil {
		return result, nil, fmt.Errorf("writing exports: %w", err)
	}
	return result, files, nil
}

// writeBundle writes every payload as meeting_minutes.<ext> into dir
func writeBundle(dir string, bundle entities.ExportBundle) ([]writtenFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	files := make([]writtenFile, 0, len(bundle))
	for _, f := range bundle.Formats() {
		data := bundle[f]
		path := filepath.Join(dir, f.FileName())
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return files, err
		}
		files = append(files, writtenFile{Format: string(f), Path: path, Bytes: len(data)})
	}
	return files, nil
}

func progressPrinter(w io.Writer) pipeline.Observer {
	return pipeline.ObserverFuncs{
		Progress: func(stage string, percent int) {
			fmt.Fprintf(w, "[%3d%%] %s\n", percent, stage)
		},
		Warning: func(message string) {
			fmt.Fprintf(w, "  warning: %s\n", message)
		},
	}
}

func printMinutesText(w io.Writer, out processOutput) {
	info := out.Minutes.MeetingInfo
	fmt.Fprintf(w, "\n%s\n", info.Title)
	fmt.Fprintf(w, "  Run:          %s\n", out.RunID)
	if info.Date != "" {
		fmt.Fprintf(w, "  Date:         %s\n", info.Date)
	}
	fmt.Fprintf(w, "  Duration:     %s\n", info.Duration)
	if len(info.Participants) > 0 {
		fmt.Fprintf(w, "  Participants: %s\n", strings.Join(info.Participants, ", "))
	}

	fmt.Fprintf(w, "\nSummary:\n  %s\n", out.Minutes.Summary)

	printList(w, "Key decisions", out.Minutes.KeyDecisions)

	if len(out.Minutes.ActionItems) > 0 {
		fmt.Fprintf(w, "\nAction items:\n")
		for _, item := range out.Minutes.ActionItems {
			fmt.Fprintf(w, "  - %s (%s, due %s, %s)\n", item.Task, item.Assignee, item.DueDate, item.Priority)
		}
	}

	printList(w, "Next steps", out.Minutes.NextSteps)

	if len(out.Files) > 0 {
		fmt.Fprintf(w, "\nFiles:\n")
		for _, f := range out.Files {
			fmt.Fprintf(w, "  %-5s %s (%s)\n", f.Format, f.Path, humanize.Bytes(uint64(f.Bytes)))
		}
	}

	printList(w, "Warnings", out.Warnings)
}

func printList(w io.Writer, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", heading)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
