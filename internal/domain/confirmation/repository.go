package confirmation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for confirmation paper persistence
type Repository interface {
	// FindByID finds a paper by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Paper, error)

	// FindActiveByTrajectory finds the single active paper of a trajectory
	FindActiveByTrajectory(ctx context.Context, trajectoryID uuid.UUID) (*Paper, error)

	// FindByTrajectory finds all papers of a trajectory, newest first
	FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]Paper, error)

	// Save creates or updates a paper
	Save(ctx context.Context, p *Paper) error

	// SearchDTO returns the read projections of a trajectory's papers
	SearchDTO(ctx context.Context, trajectoryID uuid.UUID) ([]DTO, error)
}

// DTO is the read model of a confirmation paper
type DTO struct {
	ID                       uuid.UUID  `json:"id"`
	TrajectoryID             uuid.UUID  `json:"trajectory_id"`
	Active                   bool       `json:"active"`
	DeadlineDate             time.Time  `json:"deadline_date"`
	TakenDate                *time.Time `json:"taken_date,omitempty"`
	ExtendedDeadline         *time.Time `json:"extended_deadline,omitempty"`
	BriefJustification       string     `json:"brief_justification,omitempty"`
	ResearchReport           []string   `json:"research_report,omitempty"`
	SupervisorPanelReport    []string   `json:"supervisor_panel_report,omitempty"`
	CertificateOfAchievement []string   `json:"certificate_of_achievement,omitempty"`
	CertificateOfFailure     []string   `json:"certificate_of_failure,omitempty"`
}
