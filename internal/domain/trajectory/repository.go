package trajectory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

// Repository defines the interface for trajectory persistence
type Repository interface {
	// FindByID finds a trajectory by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Trajectory, error)

	// FindByAdmission finds the trajectory created from a given admission
	FindByAdmission(ctx context.Context, admissionID uuid.UUID) (*Trajectory, error)

	// FindByStudent finds all trajectories of a student
	FindByStudent(ctx context.Context, studentID uuid.UUID, filter shared.Filter) ([]Trajectory, error)

	// Save creates or updates a trajectory
	Save(ctx context.Context, t *Trajectory) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, t *Trajectory) error

	// GetDTO returns the read projection consumed by the views
	GetDTO(ctx context.Context, id uuid.UUID) (*DTO, error)
}

// DTO is the read model of a trajectory; the shape is what the list and
// detail views consume
type DTO struct {
	ID                    uuid.UUID `json:"id"`
	Reference             string    `json:"reference"`
	Status                string    `json:"status"`
	Stage                 string    `json:"stage"`
	StudentID             uuid.UUID `json:"student_id"`
	TrainingAcronym       string    `json:"training_acronym"`
	TrainingYear          int       `json:"training_year"`
	ProximityCommission   string    `json:"proximity_commission,omitempty"`
	ProjectTitle          string    `json:"project_title"`
	ProjectAbstract       string    `json:"project_abstract"`
	ThesisLanguage        string    `json:"thesis_language,omitempty"`
	FundingType           string    `json:"funding_type,omitempty"`
	CotutelleIntended     bool      `json:"cotutelle_intended"`
	ProposedThesisTitle   string    `json:"proposed_thesis_title,omitempty"`
	DefenceLanguage       string    `json:"defence_language,omitempty"`
	SigningLocked         bool      `json:"signing_locked"`
	ECTSEarned            float64   `json:"ects_earned"`
	ComplementaryTraining bool      `json:"complementary_training_present"`
	AdmittedAt            time.Time `json:"admitted_at"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
