package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/osis/backend/internal/domain/trajectory"
	"github.com/osis/backend/internal/infrastructure/persistence/models"
)

// GormHistorian implements trajectory.Historian using GORM. Entries are
// append-only.
type GormHistorian struct {
	db *gorm.DB
}

// NewGormHistorian creates a new GormHistorian
func NewGormHistorian(db *gorm.DB) *GormHistorian {
	return &GormHistorian{db: db}
}

// Record appends one history entry
func (r *GormHistorian) Record(ctx context.Context, entry trajectory.HistoryEntry) error {
	model := models.HistoryEntryModel{
		ID:           uuid.New(),
		TrajectoryID: entry.TrajectoryID,
		MessageFR:    entry.MessageFR,
		MessageEN:    entry.MessageEN,
		Author:       entry.Author,
		Tags:         pq.StringArray(entry.Tags),
		CreatedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).Create(&model).Error
}

// FindByTrajectory lists the history of a trajectory, newest first. Used
// by the manager views.
func (r *GormHistorian) FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]trajectory.HistoryEntry, error) {
	var entryModels []models.HistoryEntryModel
	if err := r.db.WithContext(ctx).
		Where("trajectory_id = ?", trajectoryID).
		Order("created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}

	entries := make([]trajectory.HistoryEntry, len(entryModels))
	for i, m := range entryModels {
		entries[i] = trajectory.HistoryEntry{
			TrajectoryID: m.TrajectoryID,
			MessageFR:    m.MessageFR,
			MessageEN:    m.MessageEN,
			Author:       m.Author,
			Tags:         []string(m.Tags),
		}
	}
	return entries, nil
}
