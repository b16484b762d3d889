package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormRoleStore implements reference.RoleStore using GORM. Ensure is
// idempotent through the unique (person, role) index.
type GormRoleStore struct {
	db *gorm.DB
}

// NewGormRoleStore creates a new GormRoleStore
func NewGormRoleStore(db *gorm.DB) *GormRoleStore {
	return &GormRoleStore{db: db}
}

// Ensure creates the role record if it does not exist yet
func (s *GormRoleStore) Ensure(ctx context.Context, personID uuid.UUID, role string) error {
	model := models.ParticipantRoleModel{
		ID:        uuid.New(),
		PersonID:  personID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "person_id"}, {Name: "role"}},
			DoNothing: true,
		}).
		Create(&model).Error
}

// Has reports whether a person holds the given role
func (s *GormRoleStore) Has(ctx context.Context, personID uuid.UUID, role string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.ParticipantRoleModel{}).
		Where("person_id = ? AND role = ?", personID, role).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
