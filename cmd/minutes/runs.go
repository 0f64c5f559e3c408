package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

type runSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Status    string    `json:"status" yaml:"status"`
	Model     string    `json:"model" yaml:"model"`
	ErrorCode string    `json:"error_code,omitempty" yaml:"error_code,omitempty"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
}

func newRunsCommand(deps *commandDeps, root *rootOptions) *cobra.Command {
	var (
		status string
		limit  int
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted pipeline runs",
		Long: `List pipeline runs recorded in the database, oldest first.

Requires DB_ENABLED=true.

Examples:
  minutes runs --status failed
  minutes runs --status completed --limit 5 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd.Context(), deps, root, entities.RunStatus(status), limit, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&status, "status", "s", string(entities.RunStatusFailed), "Run status: processing, completed, failed")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of results")
	return cmd
}

func runRuns(ctx context.Context, deps *commandDeps, root *rootOptions, status entities.RunStatus, limit int, stdout io.Writer) error {
	format, err := root.format()
	if err != nil {
		return err
	}
	switch status {
	case entities.RunStatusProcessing, entities.RunStatusCompleted, entities.RunStatusFailed:
	default:
		return fmt.Errorf("invalid status: %s", status)
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
	if app.Runs == nil {
		return fmt.Errorf("run persistence is disabled (set DB_ENABLED=true)")
	}

	runs, err := app.Runs.ListRunsByStatus(ctx, status, limit)
	if err != nil {
		return fmt.Errorf("listing runs: %w", err)
	}

	summaries := make([]runSummary, 0, len(runs))
	for _, r := range runs {
		s := runSummary{
			ID:        r.ID.String(),
			Title:     r.Title,
			Status:    string(r.Status),
			Model:     r.Model,
			StartedAt: r.StartedAt,
		}
		if r.ErrorCode != nil {
			s.ErrorCode = *r.ErrorCode
		}
		summaries = append(summaries, s)
	}

	if format != OutputFormatText {
		return writeStructured(stdout, format, summaries)
	}

	if len(summaries) == 0 {
		fmt.Fprintf(stdout, "No %s runs found.\n", status)
		return nil
	}
	fmt.Fprintf(stdout, "Runs (%d):\n\n", len(summaries))
	for _, s := range summaries {
		title := s.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		fmt.Fprintf(stdout, "  %s  %-40s  %-10s  %s", s.ID, title, s.Status, humanize.Time(s.StartedAt))
		if s.ErrorCode != "" {
			fmt.Fprintf(stdout, "  %s", s.ErrorCode)
		}
		fmt.Fprintln(stdout)
	}
	return nil
}
