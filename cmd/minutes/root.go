package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-minutes/internal/bootstrap"
	"github.com/johnquangdev/meeting-minutes/pkg/config"
	"github.com/johnquangdev/meeting-minutes/pkg/logger"
)

// OutputFormat selects how command results are printed
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// IsValid reports whether the format is supported
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	}
	return false
}

// commandDeps holds what commands need from the outside world
type commandDeps struct {
	LoadConfig func() (*config.Config, error)
	NewApp     func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*bootstrap.App, error)
}

func defaultDeps() *commandDeps {
	return &commandDeps{
		LoadConfig: config.Load,
		NewApp: func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*bootstrap.App, error) {
			return bootstrap.New(ctx, cfg, logger)
		},
	}
}

// rootOptions are the persistent flags shared by every subcommand
type rootOptions struct {
	output  string
	verbose bool
}

func (o *rootOptions) format() (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(o.output))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid output format: %s", o.output)
	}
	return f, nil
}

func (o *rootOptions) logger(cfg *config.Config) *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	return logger.Must(cfg.Server.Environment)
}

func newRootCommand(deps *commandDeps) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "minutes",
		Short: "Generate meeting minutes from recordings",
		Long: `Generate structured meeting minutes from audio or video recordings.

The pipeline converts the recording to 16kHz mono audio, transcribes it,
extracts a summary, key decisions, action items and next steps, then writes
the requested export formats.

Configuration comes from the environment (and .env), the same as the API server.

Examples:
  # Process one recording into ./out
  minutes process standup.mp4 --title "Daily standup" --out out

  # Score a transcript and summary against references
  minutes evaluate --reference-transcript ref.txt --transcript hyp.txt \
    --reference-summary ref_summary.txt --summary summary.txt

  # Process every recording dropped into a folder
  minutes watch ./inbox --out ./minutes`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", string(OutputFormatText), "Output format: text, json, yaml")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log pipeline activity to stderr")

	cmd.AddCommand(newProcessCommand(deps, opts))
	cmd.AddCommand(newEvaluateCommand(opts))
	cmd.AddCommand(newWatchCommand(deps, opts))
	cmd.AddCommand(newModelsCommand(deps, opts))
	cmd.AddCommand(newRunsCommand(deps, opts))
	cmd.AddCommand(newMigrateCommand(deps, opts))

	return cmd
}

// writeStructured prints v as JSON or YAML
func writeStructured(w io.Writer, format OutputFormat, v interface{}) error {
	switch format {
	case OutputFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
