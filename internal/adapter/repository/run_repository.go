package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-minutes/internal/domain/entities"
	"github.com/johnquangdev/meeting-minutes/internal/domain/repositories"
)

// RunRepository handles minutes run data operations
type RunRepository struct {
	db *gorm.DB
}

var _ repositories.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new run repository
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// CreateRun inserts a new run
func (r *RunRepository) CreateRun(ctx context.Context, run *entities.MinutesRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	return r.db.WithContext(ctx).Create(run).Error
}

// UpdateRun saves every column of the run
func (r *RunRepository) UpdateRun(ctx context.Context, run *entities.MinutesRun) error {
	if run == nil {
		return errors.New("run cannot be nil")
	}
	run.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(run).Error
}

// GetRunByID retrieves a run by ID, returning nil when it does not exist
func (r *RunRepository) GetRunByID(ctx context.Context, id uuid.UUID) (*entities.MinutesRun, error) {
	var run entities.MinutesRun
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// ListRunsByStatus retrieves runs with a specific status, oldest first
func (r *RunRepository) ListRunsByStatus(ctx context.Context, status entities.RunStatus, limit int) ([]entities.MinutesRun, error) {
	var runs []entities.MinutesRun
	if limit == 0 {
		limit = 100
	}
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// MarkStaleRunsAsFailed fails runs left in processing by a crashed process
func (r *RunRepository) MarkStaleRunsAsFailed(ctx context.Context, olderThan time.Duration) (int64, error) {
	now := time.Now()
	res := r.db.WithContext(ctx).
		Model(&entities.MinutesRun{}).
		Where("status = ? AND started_at < ?", entities.RunStatusProcessing, now.Add(-olderThan)).
		Updates(map[string]interface{}{
			"status":       entities.RunStatusFailed,
			"error_code":   "INTERNAL",
			"last_error":   "run abandoned before completion",
			"completed_at": now,
			"updated_at":   now,
		})
	return res.RowsAffected, res.Error
}
