package training

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for training activity persistence
type Repository interface {
	// FindByID finds an activity by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Activity, error)

	// FindByTrajectory finds all activities of a trajectory
	FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]Activity, error)

	// FindChildren finds the child activities of a parent
	FindChildren(ctx context.Context, parentID uuid.UUID) ([]Activity, error)

	// FindPaper finds the PAPER activity of the given type for a
	// trajectory, or a NotFound error
	FindPaper(ctx context.Context, trajectoryID uuid.UUID, paperType PaperType) (*Activity, error)

	// Save creates or updates an activity with its enrolments
	Save(ctx context.Context, a *Activity) error

	// Delete removes an activity and cascades to its children
	Delete(ctx context.Context, id uuid.UUID) error

	// SearchDTO returns the read projections of a trajectory's activities
	SearchDTO(ctx context.Context, trajectoryID uuid.UUID) ([]DTO, error)
}

// DTO is the read model of a training activity
type DTO struct {
	ID                      uuid.UUID       `json:"id"`
	TrajectoryID            uuid.UUID       `json:"trajectory_id"`
	Context                 string          `json:"context"`
	Category                string          `json:"category"`
	Status                  string          `json:"status"`
	ParentID                *uuid.UUID      `json:"parent_id,omitempty"`
	ECTS                    decimal.Decimal `json:"ects"`
	Title                   string          `json:"title"`
	StartDate               *time.Time      `json:"start_date,omitempty"`
	EndDate                 *time.Time      `json:"end_date,omitempty"`
	City                    string          `json:"city,omitempty"`
	Country                 string          `json:"country,omitempty"`
	LearningUnitCode        string          `json:"learning_unit_code,omitempty"`
	CourseCompleted         bool            `json:"course_completed"`
	ReferencePromoterAssent *bool           `json:"reference_promoter_assent,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
}

// ECTSEarned sums the credits of accepted activities
func ECTSEarned(activities []Activity) decimal.Decimal {
	total := decimal.Zero
	for _, a := range activities {
		if a.Status == ActivityAccepted {
			total = total.Add(a.ECTS)
		}
	}
	return total
}

// HasComplementaryTraining applies the strict presence predicate: an
// accepted complementary activity counts unless it is a UCL course that
// was never completed
func HasComplementaryTraining(activities []Activity) bool {
	for i := range activities {
		if activities[i].CountsAsComplementaryTraining() {
			return true
		}
	}
	return false
}
