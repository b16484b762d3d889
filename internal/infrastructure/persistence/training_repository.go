package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/training"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormTrainingRepository implements training.Repository using GORM
type GormTrainingRepository struct {
	db *gorm.DB
}

// NewGormTrainingRepository creates a new GormTrainingRepository
func NewGormTrainingRepository(db *gorm.DB) *GormTrainingRepository {
	return &GormTrainingRepository{db: db}
}

// FindByID finds an activity by its ID
func (r *GormTrainingRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Enrolments").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrajectory finds all activities of a trajectory
func (r *GormTrainingRepository) FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]training.Activity, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Enrolments").
		Where("trajectory_id = ?", trajectoryID).
		Order("created_at ASC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toActivities(activityModels), nil
}

// FindChildren finds the child activities of a parent
func (r *GormTrainingRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]training.Activity, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Enrolments").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toActivities(activityModels), nil
}

// FindPaper finds the paper activity of the given type for a trajectory
func (r *GormTrainingRepository) FindPaper(ctx context.Context, trajectoryID uuid.UUID, paperType training.PaperType) (*training.Activity, error) {
	var model models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Enrolments").
		Where("trajectory_id = ? AND category = ? AND paper_type = ?",
			trajectoryID, string(training.CategoryPaper), string(paperType)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an activity with its enrolments
func (r *GormTrainingRepository) Save(ctx context.Context, a *training.Activity) error {
	var model models.ActivityModel
	model.FromDomain(a)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Enrolments").Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", model.ID).
			Delete(&models.SessionEnrolmentModel{}).Error; err != nil {
			return err
		}
		if len(model.Enrolments) == 0 {
			return nil
		}
		return tx.Create(&model.Enrolments).Error
	})
}

// Delete removes an activity and cascades to its children
func (r *GormTrainingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).
			Delete(&models.ActivityModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.ActivityModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// SearchDTO returns the read projections of a trajectory's activities
func (r *GormTrainingRepository) SearchDTO(ctx context.Context, trajectoryID uuid.UUID) ([]training.DTO, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("trajectory_id = ?", trajectoryID).
		Order("created_at ASC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}

	dtos := make([]training.DTO, len(activityModels))
	for i := range activityModels {
		dtos[i] = activityModels[i].ToDTO()
	}
	return dtos, nil
}

func toActivities(activityModels []models.ActivityModel) []training.Activity {
	activities := make([]training.Activity, len(activityModels))
	for i := range activityModels {
		activities[i] = *activityModels[i].ToDomain()
	}
	return activities
}
