package database

import (
	"context"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/migrations"
)

const dialect = "postgres"

// Source returns the migrations compiled into the binary, or the files in
// dir when it is set
func Source(dir string) migrate.MigrationSource {
	if dir == "" {
		return migrate.EmbedFileSystemMigrationSource{FileSystem: migrations.FS, Root: "."}
	}
	return &migrate.FileMigrationSource{Dir: dir}
}

// Migrate applies every pending migration
func Migrate(ctx context.Context, db *gorm.DB, src migrate.MigrationSource, log *zap.Logger) (int, error) {
	return exec(ctx, db, src, migrate.Up, 0, log)
}

// Rollback reverts the last steps applied migrations
func Rollback(ctx context.Context, db *gorm.DB, src migrate.MigrationSource, steps int, log *zap.Logger) (int, error) {
	if steps < 1 {
		return 0, fmt.Errorf("rollback steps must be at least 1, got %d", steps)
	}
	return exec(ctx, db, src, migrate.Down, steps, log)
}

// Pending lists the ids of migrations not yet applied
func Pending(db *gorm.DB, src migrate.MigrationSource) ([]string, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}
	planned, _, err := migrate.PlanMigration(sqlDB, dialect, src, migrate.Up, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to plan migrations: %w", err)
	}
	ids := make([]string, 0, len(planned))
	for _, p := range planned {
		ids = append(ids, p.Id)
	}
	return ids, nil
}

func exec(ctx context.Context, db *gorm.DB, src migrate.MigrationSource, dir migrate.MigrationDirection, max int, log *zap.Logger) (int, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get database object: %w", err)
	}

	n, err := migrate.ExecMaxContext(ctx, sqlDB, dialect, src, dir, max)
	if err != nil {
		return n, fmt.Errorf("failed to apply migrations: %w", err)
	}
	if log != nil {
		log.Info("🔄 Migrations applied",
			zap.String("direction", direction(dir)),
			zap.Int("count", n),
		)
	}
	return n, nil
}

func direction(d migrate.MigrationDirection) string {
	if d == migrate.Down {
		return "down"
	}
	return "up"
}
