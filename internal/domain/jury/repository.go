package jury

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for jury persistence
type Repository interface {
	// FindByTrajectory finds the jury of a trajectory
	FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) (*Jury, error)

	// Save creates or updates a jury with its members
	Save(ctx context.Context, j *Jury) error

	// GetDTO returns the read projection of a trajectory's jury
	GetDTO(ctx context.Context, trajectoryID uuid.UUID) (*DTO, error)
}

// MemberDTO is the read projection of one jury member
type MemberDTO struct {
	ID              uuid.UUID  `json:"id"`
	Role            string     `json:"role"`
	PromoterID      *uuid.UUID `json:"promoter_id,omitempty"`
	PersonID        *uuid.UUID `json:"person_id,omitempty"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	Title           string     `json:"title,omitempty"`
	Institution     string     `json:"institution,omitempty"`
	Country         string     `json:"country,omitempty"`
	SignatureState  string     `json:"signature_state"`
	SignedAt        *time.Time `json:"signed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
}

// DTO is the read model of a jury
type DTO struct {
	ID           uuid.UUID   `json:"id"`
	TrajectoryID uuid.UUID   `json:"trajectory_id"`
	Members      []MemberDTO `json:"members"`
}
