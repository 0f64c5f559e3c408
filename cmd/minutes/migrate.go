package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-minutes/internal/infrastructure/database"
)

type migrateFlags struct {
	dir    string
	down   int
	status bool
}

func newMigrateCommand(deps *commandDeps, root *rootOptions) *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long: `Apply the SQL migrations for the minutes_runs table with sql-migrate.

The migrations are compiled into the binary; --dir reads them from disk instead.
Uses the DB_* settings regardless of DB_ENABLED.

Examples:
  minutes migrate
  minutes migrate --status
  minutes migrate --down 1
  minutes migrate --dir ./migrations`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd.Context(), deps, root, flags, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&flags.dir, "dir", "", "Read migrations from this directory instead of the embedded set")
	cmd.Flags().IntVar(&flags.down, "down", 0, "Roll back this many applied migrations")
	cmd.Flags().BoolVar(&flags.status, "status", false, "List pending migrations without applying them")
	cmd.MarkFlagsMutuallyExclusive("down", "status")
	return cmd
}

func runMigrate(ctx context.Context, deps *commandDeps, root *rootOptions, flags *migrateFlags, stdout io.Writer) error {
	if flags.down < 0 {
		return fmt.Errorf("--down must be positive")
	}
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	log := root.logger(cfg)

	db, err := database.NewPostgresDB(cfg, log)
	if err != nil {
		return err
	}
	defer database.CloseDB(db)

	src := database.Source(flags.dir)
	switch {
	case flags.status:
		pending, err := database.Pending(db, src)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			fmt.Fprintln(stdout, "Schema is up to date.")
			return nil
		}
		fmt.Fprintf(stdout, "Pending migrations (%d):\n", len(pending))
		for _, id := range pending {
			fmt.Fprintf(stdout, "  %s\n", id)
		}
		return nil
	case flags.down > 0:
		n, err := database.Rollback(ctx, db, src, flags.down, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "↩️ Rolled back %d migration(s)\n", n)
		return nil
	default:
		n, err := database.Migrate(ctx, db, src, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "✅ Applied %d migration(s)\n", n)
		return nil
	}
}
