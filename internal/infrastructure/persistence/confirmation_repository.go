package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/confirmation"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormConfirmationRepository implements confirmation.Repository using GORM
type GormConfirmationRepository struct {
	db *gorm.DB
}

// NewGormConfirmationRepository creates a new GormConfirmationRepository
func NewGormConfirmationRepository(db *gorm.DB) *GormConfirmationRepository {
	return &GormConfirmationRepository{db: db}
}

// FindByID finds a paper by its ID
func (r *GormConfirmationRepository) FindByID(ctx context.Context, id uuid.UUID) (*confirmation.Paper, error) {
	var model models.ConfirmationPaperModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByTrajectory finds the single active paper of a trajectory
func (r *GormConfirmationRepository) FindActiveByTrajectory(ctx context.Context, trajectoryID uuid.UUID) (*confirmation.Paper, error) {
	var model models.ConfirmationPaperModel
	if err := r.db.WithContext(ctx).
		Where("trajectory_id = ? AND active = ?", trajectoryID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrajectory finds all papers of a trajectory, newest first
func (r *GormConfirmationRepository) FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]confirmation.Paper, error) {
	var paperModels []models.ConfirmationPaperModel
	if err := r.db.WithContext(ctx).
		Where("trajectory_id = ?", trajectoryID).
		Order("created_at DESC").
		Find(&paperModels).Error; err != nil {
		return nil, err
	}

	papers := make([]confirmation.Paper, len(paperModels))
	for i, model := range paperModels {
		papers[i] = *model.ToDomain()
	}
	return papers, nil
}

// Save creates or updates a paper
func (r *GormConfirmationRepository) Save(ctx context.Context, p *confirmation.Paper) error {
	var model models.ConfirmationPaperModel
	model.FromDomain(p)
	return r.db.WithContext(ctx).Save(&model).Error
}

// SearchDTO returns the read projections of a trajectory's papers
func (r *GormConfirmationRepository) SearchDTO(ctx context.Context, trajectoryID uuid.UUID) ([]confirmation.DTO, error) {
	var paperModels []models.ConfirmationPaperModel
	if err := r.db.WithContext(ctx).
		Where("trajectory_id = ?", trajectoryID).
		Order("created_at DESC").
		Find(&paperModels).Error; err != nil {
		return nil, err
	}

	dtos := make([]confirmation.DTO, len(paperModels))
	for i := range paperModels {
		dtos[i] = paperModels[i].ToDTO()
	}
	return dtos, nil
}
