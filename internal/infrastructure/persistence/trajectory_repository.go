package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/training"
	"github.com/osis/backend/internal/domain/trajectory"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormTrajectoryRepository implements trajectory.Repository using GORM
type GormTrajectoryRepository struct {
	db *gorm.DB
}

// NewGormTrajectoryRepository creates a new GormTrajectoryRepository
func NewGormTrajectoryRepository(db *gorm.DB) *GormTrajectoryRepository {
	return &GormTrajectoryRepository{db: db}
}

// FindByID finds a trajectory by its ID
func (r *GormTrajectoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*trajectory.Trajectory, error) {
	var model models.TrajectoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByAdmission finds the trajectory created from an admission
func (r *GormTrajectoryRepository) FindByAdmission(ctx context.Context, admissionID uuid.UUID) (*trajectory.Trajectory, error) {
	var model models.TrajectoryModel
	if err := r.db.WithContext(ctx).
		Where("admission_id = ?", admissionID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStudent finds all trajectories of a student
func (r *GormTrajectoryRepository) FindByStudent(ctx context.Context, studentID uuid.UUID, filter shared.Filter) ([]trajectory.Trajectory, error) {
	var trajectoryModels []models.TrajectoryModel
	query := r.db.WithContext(ctx).
		Model(&models.TrajectoryModel{}).
		Where("student_id = ?", studentID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if year, ok := filter.Filters["training_year"]; ok {
		query = query.Where("training_year = ?", year)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("project_title ILIKE ? OR training_acronym ILIKE ?", search, search)
	}

	orderBy := ValidateSortField(filter.OrderBy, TrajectorySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&trajectoryModels).Error; err != nil {
		return nil, err
	}

	trajectories := make([]trajectory.Trajectory, len(trajectoryModels))
	for i, model := range trajectoryModels {
		trajectories[i] = *model.ToDomain()
	}
	return trajectories, nil
}

// Save creates or updates a trajectory
func (r *GormTrajectoryRepository) Save(ctx context.Context, t *trajectory.Trajectory) error {
	var model models.TrajectoryModel
	model.FromDomain(t)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SaveWithLock saves with optimistic locking. The version check catches
// concurrent status transitions on the same trajectory.
func (r *GormTrajectoryRepository) SaveWithLock(ctx context.Context, t *trajectory.Trajectory) error {
	var model models.TrajectoryModel
	currentVersion := t.Version
	t.Version++
	model.FromDomain(t)

	result := r.db.WithContext(ctx).
		Model(&models.TrajectoryModel{}).
		Where("id = ? AND version = ?", t.ID, currentVersion).
		Updates(&model)
	if result.Error != nil {
		t.Version = currentVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		t.Version = currentVersion
		return shared.NewDomainError("CONCURRENT_UPDATE", "Trajectory was modified by another request")
	}
	return nil
}

// GetDTO returns the read projection consumed by the views. The training
// figures are computed from the activity rows in the same round trip.
func (r *GormTrajectoryRepository) GetDTO(ctx context.Context, id uuid.UUID) (*trajectory.DTO, error) {
	var model models.TrajectoryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Preload("Enrolments").
		Where("trajectory_id = ?", id).
		Find(&activityModels).Error; err != nil {
		return nil, err
	}
	activities := make([]training.Activity, len(activityModels))
	for i := range activityModels {
		activities[i] = *activityModels[i].ToDomain()
	}

	t := model.ToDomain()
	ects, _ := training.ECTSEarned(activities).Float64()

	return &trajectory.DTO{
		ID:                    t.ID,
		Reference:             t.FormattedReference(),
		Status:                string(t.Status),
		Stage:                 string(t.Status.Stage()),
		StudentID:             t.StudentID,
		TrainingAcronym:       t.TrainingAcronym,
		TrainingYear:          t.TrainingYear,
		ProximityCommission:   t.ProximityCommission,
		ProjectTitle:          t.Project.Title,
		ProjectAbstract:       t.Project.Abstract,
		ThesisLanguage:        t.Project.ThesisLanguage,
		FundingType:           string(t.Funding.Type),
		CotutelleIntended:     t.Cotutelle.Intended(),
		ProposedThesisTitle:   t.ProposedThesisTitle,
		DefenceLanguage:       string(t.DefenceLanguage),
		SigningLocked:         t.SigningLocked,
		ECTSEarned:            ects,
		ComplementaryTraining: training.HasComplementaryTraining(activities),
		AdmittedAt:            t.AdmittedAt,
		CreatedAt:             t.CreatedAt,
		UpdatedAt:             t.UpdatedAt,
	}, nil
}
