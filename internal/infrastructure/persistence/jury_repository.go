package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/jury"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormJuryRepository implements jury.Repository using GORM
type GormJuryRepository struct {
	db *gorm.DB
}

// NewGormJuryRepository creates a new GormJuryRepository
func NewGormJuryRepository(db *gorm.DB) *GormJuryRepository {
	return &GormJuryRepository{db: db}
}

// FindByTrajectory finds the jury of a trajectory
func (r *GormJuryRepository) FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) (*jury.Jury, error) {
	var model models.JuryModel
	if err := r.db.WithContext(ctx).
		Preload("Members").
		Where("trajectory_id = ?", trajectoryID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a jury with its members, replacing membership
// wholesale
func (r *GormJuryRepository) Save(ctx context.Context, j *jury.Jury) error {
	var model models.JuryModel
	model.FromDomain(j)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("jury_id = ?", model.ID).
			Delete(&models.JuryMemberModel{}).Error; err != nil {
			return err
		}
		if len(model.Members) == 0 {
			return nil
		}
		return tx.Create(&model.Members).Error
	})
}

// GetDTO returns the read projection of a trajectory's jury
func (r *GormJuryRepository) GetDTO(ctx context.Context, trajectoryID uuid.UUID) (*jury.DTO, error) {
	var model models.JuryModel
	if err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("last_name ASC, first_name ASC")
		}).
		Where("trajectory_id = ?", trajectoryID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	members := make([]jury.MemberDTO, len(model.Members))
	for i, m := range model.Members {
		members[i] = jury.MemberDTO{
			ID:              m.ID,
			Role:            m.Role,
			PromoterID:      m.PromoterID,
			PersonID:        m.PersonID,
			FirstName:       m.FirstName,
			LastName:        m.LastName,
			Email:           m.Email,
			Title:           m.Title,
			Institution:     m.Institution,
			Country:         m.Country,
			SignatureState:  m.SignatureState,
			SignedAt:        m.SignedAt,
			RejectionReason: m.RejectionReason,
		}
	}

	return &jury.DTO{
		ID:           model.ID,
		TrajectoryID: model.TrajectoryID,
		Members:      members,
	}, nil
}
