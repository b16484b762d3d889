package document

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for document bag persistence
type Repository interface {
	// FindByID finds a document by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindByTrajectory lists the document bag of a trajectory
	FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]Document, error)

	// Save creates or updates a document entry
	Save(ctx context.Context, d *Document) error

	// Delete removes a document entry
	Delete(ctx context.Context, id uuid.UUID) error
}

// DTO is the read model of a document bag entry
type DTO struct {
	ID           uuid.UUID `json:"id"`
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	Type         string    `json:"type"`
	Label        string    `json:"label"`
	Refs         []string  `json:"refs"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
	UploadedAt   time.Time `json:"uploaded_at"`
}
