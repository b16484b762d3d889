package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/trajectory"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormTaskQueue implements trajectory.TaskQueue using GORM
type GormTaskQueue struct {
	db *gorm.DB
}

// NewGormTaskQueue creates a new GormTaskQueue
func NewGormTaskQueue(db *gorm.DB) *GormTaskQueue {
	return &GormTaskQueue{db: db}
}

// Enqueue records a new pending task for a trajectory
func (q *GormTaskQueue) Enqueue(ctx context.Context, trajectoryID uuid.UUID, kind string) (*trajectory.Task, error) {
	now := time.Now()
	model := models.TaskModel{
		ID:           uuid.New(),
		TrajectoryID: trajectoryID,
		Kind:         kind,
		State:        trajectory.TaskPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := q.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return &trajectory.Task{
		ID:           model.ID,
		TrajectoryID: model.TrajectoryID,
		Kind:         model.Kind,
		State:        model.State,
	}, nil
}

// FindByTrajectory lists the tasks of a trajectory, oldest first
func (q *GormTaskQueue) FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]trajectory.Task, error) {
	var taskModels []models.TaskModel
	if err := q.db.WithContext(ctx).
		Where("trajectory_id = ?", trajectoryID).
		Order("created_at ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]trajectory.Task, len(taskModels))
	for i, m := range taskModels {
		tasks[i] = trajectory.Task{
			ID:           m.ID,
			TrajectoryID: m.TrajectoryID,
			Kind:         m.Kind,
			State:        m.State,
		}
	}
	return tasks, nil
}

// GetPendingCountByKind returns the number of pending tasks per kind.
// Feeds the pending task gauge.
func (q *GormTaskQueue) GetPendingCountByKind(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Kind  string
		Count int64
	}
	if err := q.db.WithContext(ctx).
		Model(&models.TaskModel{}).
		Select("kind, COUNT(*) as count").
		Where("state = ?", trajectory.TaskPending).
		Group("kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Kind] = row.Count
	}
	return counts, nil
}

// SetState moves a task to the given state
func (q *GormTaskQueue) SetState(ctx context.Context, taskID uuid.UUID, state string) error {
	result := q.db.WithContext(ctx).
		Model(&models.TaskModel{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"state":      state,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindPending lists pending tasks across all trajectories, oldest first.
// The worker drains this list.
func (q *GormTaskQueue) FindPending(ctx context.Context, limit int) ([]trajectory.Task, error) {
	var taskModels []models.TaskModel
	query := q.db.WithContext(ctx).
		Where("state = ?", trajectory.TaskPending).
		Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}

	tasks := make([]trajectory.Task, len(taskModels))
	for i, m := range taskModels {
		tasks[i] = trajectory.Task{
			ID:           m.ID,
			TrajectoryID: m.TrajectoryID,
			Kind:         m.Kind,
			State:        m.State,
		}
	}
	return tasks, nil
}
