package supervision

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for supervision group persistence
type Repository interface {
	// FindByID finds a group by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)

	// FindByTrajectory finds the group of a trajectory
	FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) (*Group, error)

	// Save creates or updates a group with its members
	Save(ctx context.Context, g *Group) error

	// GetDTO returns the read projection of a trajectory's group
	GetDTO(ctx context.Context, trajectoryID uuid.UUID) (*DTO, error)
}

// MemberDTO is the read projection of one group member
type MemberDTO struct {
	ID                  uuid.UUID  `json:"id"`
	Type                string     `json:"type"`
	IsExternal          bool       `json:"is_external"`
	PersonID            *uuid.UUID `json:"person_id,omitempty"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Email               string     `json:"email"`
	Institute           string     `json:"institute,omitempty"`
	City                string     `json:"city,omitempty"`
	Country             string     `json:"country,omitempty"`
	IsDoctor            bool       `json:"is_doctor"`
	IsReferencePromoter bool       `json:"is_reference_promoter"`
	SignatureState      string     `json:"signature_state"`
	SignedAt            *time.Time `json:"signed_at,omitempty"`
	Comment             string     `json:"comment,omitempty"`
	RejectionReason     string     `json:"rejection_reason,omitempty"`
}

// DTO is the read model of a supervision group
type DTO struct {
	ID           uuid.UUID   `json:"id"`
	TrajectoryID uuid.UUID   `json:"trajectory_id"`
	State        string      `json:"state"`
	Members      []MemberDTO `json:"members"`
}
