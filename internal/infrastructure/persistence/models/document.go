package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osis/backend/internal/domain/document"
)

// DocumentModel is the GORM model for a document bag entry
type DocumentModel struct {
	BaseModel
	TrajectoryID uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type         string         `gorm:"not null"`
	Label        string         `gorm:"not null"`
	Refs         pq.StringArray `gorm:"type:text[]"`
	UploadedBy   uuid.UUID      `gorm:"type:uuid"`
	UploadedAt   time.Time      `gorm:"not null"`
}

// TableName specifies the table name
func (DocumentModel) TableName() string {
	return "trajectory_documents"
}

// ToDomain converts the model to the domain entity
func (m *DocumentModel) ToDomain() *document.Document {
	return &document.Document{
		BaseEntity:   m.BaseModel.ToDomain(),
		TrajectoryID: m.TrajectoryID,
		Type:         document.Type(m.Type),
		Label:        m.Label,
		Refs:         refsFromArray(m.Refs),
		UploadedBy:   m.UploadedBy,
		UploadedAt:   m.UploadedAt,
	}
}

// FromDomain populates the model from the domain entity
func (m *DocumentModel) FromDomain(d *document.Document) {
	m.FromDomainBaseEntity(d.BaseEntity)
	m.TrajectoryID = d.TrajectoryID
	m.Type = string(d.Type)
	m.Label = d.Label
	m.Refs = refsToArray(d.Refs)
	m.UploadedBy = d.UploadedBy
	m.UploadedAt = d.UploadedAt
}
