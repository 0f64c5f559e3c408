package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
)

// RunRepository defines persistence operations for pipeline runs
type RunRepository interface {
	CreateRun(ctx context.Context, run *entities.MinutesRun) error
	UpdateRun(ctx context.Context, run *entities.MinutesRun) error
	GetRunByID(ctx context.Context, id uuid.UUID) (*entities.MinutesRun, error)
	ListRunsByStatus(ctx context.Context, status entities.RunStatus, limit int) ([]entities.MinutesRun, error)
}
