package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// WebNotificationDTO is the read projection of one in-app notification
type WebNotificationDTO struct {
	ID        uuid.UUID  `json:"id"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// GormWebNotificationStore persists in-app notifications
type GormWebNotificationStore struct {
	db *gorm.DB
}

// NewGormWebNotificationStore creates a new GormWebNotificationStore
func NewGormWebNotificationStore(db *gorm.DB) *GormWebNotificationStore {
	return &GormWebNotificationStore{db: db}
}

// Push records one notification addressed to a person
func (s *GormWebNotificationStore) Push(ctx context.Context, personID uuid.UUID, subject, body string) error {
	model := models.WebNotificationModel{
		ID:        uuid.New(),
		PersonID:  personID,
		Subject:   subject,
		Body:      body,
		CreatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Create(&model).Error
}

// FindByPerson lists a person's notifications, newest first
func (s *GormWebNotificationStore) FindByPerson(ctx context.Context, personID uuid.UUID) ([]WebNotificationDTO, error) {
	var rows []models.WebNotificationModel
	if err := s.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	dtos := make([]WebNotificationDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, WebNotificationDTO{
			ID:        row.ID,
			Subject:   row.Subject,
			Body:      row.Body,
			ReadAt:    row.ReadAt,
			CreatedAt: row.CreatedAt,
		})
	}
	return dtos, nil
}

// MarkRead stamps a notification as read. Marking an already-read
// notification keeps the original timestamp.
func (s *GormWebNotificationStore) MarkRead(ctx context.Context, id, personID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&models.WebNotificationModel{}).
		Where("id = ? AND person_id = ? AND read_at IS NULL", id, personID).
		Update("read_at", time.Now())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).
			Model(&models.WebNotificationModel{}).
			Where("id = ? AND person_id = ?", id, personID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
	}
	return nil
}
