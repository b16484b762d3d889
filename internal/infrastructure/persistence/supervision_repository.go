package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormSupervisionRepository implements supervision.Repository using GORM
type GormSupervisionRepository struct {
	db *gorm.DB
}

// NewGormSupervisionRepository creates a new GormSupervisionRepository
func NewGormSupervisionRepository(db *gorm.DB) *GormSupervisionRepository {
	return &GormSupervisionRepository{db: db}
}

// FindByID finds a group by its ID
func (r *GormSupervisionRepository) FindByID(ctx context.Context, id uuid.UUID) (*supervision.Group, error) {
	var model models.SupervisionGroupModel
	if err := r.db.WithContext(ctx).
		Preload("Members").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrajectory finds the group of a trajectory
func (r *GormSupervisionRepository) FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) (*supervision.Group, error) {
	var model models.SupervisionGroupModel
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

// Save creates or updates a group with its members. Membership is
// replaced wholesale so removals are reflected.
func (r *GormSupervisionRepository) Save(ctx context.Context, g *supervision.Group) error {
	var model models.SupervisionGroupModel
	model.FromDomain(g)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Members").Save(&model).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", model.ID).
			Delete(&models.SupervisionMemberModel{}).Error; err != nil {
			return err
		}
		if len(model.Members) == 0 {
			return nil
		}
		return tx.Create(&model.Members).Error
	})
}

// GetDTO returns the read projection of a trajectory's group
func (r *GormSupervisionRepository) GetDTO(ctx context.Context, trajectoryID uuid.UUID) (*supervision.DTO, error) {
	var model models.SupervisionGroupModel
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

	members := make([]supervision.MemberDTO, len(model.Members))
	for i, m := range model.Members {
		members[i] = supervision.MemberDTO{
			ID:                  m.ID,
			Type:                m.Type,
			IsExternal:          m.ActorKind == "EXTERNAL",
			PersonID:            m.PersonID,
			FirstName:           m.FirstName,
			LastName:            m.LastName,
			Email:               m.Email,
			Institute:           m.Institute,
			City:                m.City,
			Country:             m.Country,
			IsDoctor:            m.IsDoctor,
			IsReferencePromoter: m.IsReferencePromoter,
			SignatureState:      m.SignatureState,
			SignedAt:            m.SignedAt,
			Comment:             m.Comment,
			RejectionReason:     m.RejectionReason,
		}
	}

	return &supervision.DTO{
		ID:           model.ID,
		TrajectoryID: model.TrajectoryID,
		State:        model.State,
		Members:      members,
	}, nil
}
