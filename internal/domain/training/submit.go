package training

import (
	"context"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

// SubmitService is the batch submission domain service: it validates the
// selected activities all at once and submits them together, carrying
// seminar children along with their parent.
type SubmitService struct {
	repo Repository
}

// NewSubmitService creates a new SubmitService
func NewSubmitService(repo Repository) *SubmitService {
	return &SubmitService{repo: repo}
}

// Verify loads the selected activities and collects every completeness and
// status violation. When any violation exists the whole batch is rejected
// with a BatchError listing the offending activities and nothing changes.
func (s *SubmitService) Verify(ctx context.Context, ids []uuid.UUID) ([]*Activity, error) {
	activities := make([]*Activity, 0, len(ids))
	var violations []shared.FieldViolation

	for _, id := range ids {
		a, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)

		if a.Status != ActivityNotSubmitted {
			violations = append(violations, shared.FieldViolation{
				Ref:     a.ID,
				Code:    "ALREADY_SUBMITTED",
				Message: "Activity was already submitted",
			})
			continue
		}
		violations = append(violations, Validate(a)...)

		// Seminars carry their communications: children are checked with
		// the parent even when not explicitly selected
		if a.Category == CategorySeminar {
			children, err := s.repo.FindChildren(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			for i := range children {
				violations = append(violations, Validate(&children[i])...)
			}
		}
	}

	if len(violations) > 0 {
		return nil, shared.NewBatchError("ACTIVITY_BATCH_INCOMPLETE", "Some activities are incomplete", violations)
	}
	return activities, nil
}

// Submit transitions verified activities to SUBMITTED, including seminar
// children, and persists each one
func (s *SubmitService) Submit(ctx context.Context, activities []*Activity) ([]uuid.UUID, error) {
	submitted := make([]uuid.UUID, 0, len(activities))
	for _, a := range activities {
		if err := a.Submit(); err != nil {
			return nil, err
		}
		if err := s.repo.Save(ctx, a); err != nil {
			return nil, err
		}
		submitted = append(submitted, a.ID)

		if a.Category == CategorySeminar {
			children, err := s.repo.FindChildren(ctx, a.ID)
			if err != nil {
				return nil, err
			}
			for i := range children {
				child := &children[i]
				if child.Status != ActivityNotSubmitted {
					continue
				}
				if err := child.Submit(); err != nil {
					return nil, err
				}
				if err := s.repo.Save(ctx, child); err != nil {
					return nil, err
				}
			}
		}
	}
	return submitted, nil
}
