package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// HistoryEntryModel is one recorded fact in a trajectory's history log
type HistoryEntryModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key"`
	TrajectoryID uuid.UUID      `gorm:"type:uuid;not null;index"`
	MessageFR    string         `gorm:"type:text;not null"`
	MessageEN    string         `gorm:"type:text;not null"`
	Author       string         `gorm:"not null"`
	Tags         pq.StringArray `gorm:"type:text[]"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

// TableName specifies the table name
func (HistoryEntryModel) TableName() string {
	return "history_entries"
}

// TaskModel is one deferred unit of work attached to a trajectory
type TaskModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	TrajectoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind         string    `gorm:"not null"`
	State        string    `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (TaskModel) TableName() string {
	return "trajectory_tasks"
}

// ParticipantRoleModel records a role granted to a person for the
// doctoral context; rows are unique per person and role
type ParticipantRoleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_participant_roles_person_role"`
	Role      string    `gorm:"not null;uniqueIndex:idx_participant_roles_person_role"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (ParticipantRoleModel) TableName() string {
	return "participant_roles"
}

// WebNotificationModel is one in-application notification addressed to a
// person; the email counterpart is sent by the mailer
type WebNotificationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	PersonID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Subject   string    `gorm:"not null"`
	Body      string    `gorm:"type:text;not null"`
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the table name
func (WebNotificationModel) TableName() string {
	return "web_notifications"
}
