package training

import (
	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

// Builder creates activities by category and applies the defaults:
// status NOT_SUBMITTED and the doctoral-training context unless the
// caller asks for a complementary variant.
type Builder struct {
	trajectoryID uuid.UUID
	category     Category
	context      Context
	parent       *Activity
}

// NewBuilder starts building an activity for a trajectory
func NewBuilder(trajectoryID uuid.UUID, category Category) *Builder {
	return &Builder{
		trajectoryID: trajectoryID,
		category:     category,
		context:      ContextDoctoralTraining,
	}
}

// InContext overrides the default doctoral-training context
func (b *Builder) InContext(context Context) *Builder {
	b.context = context
	return b
}

// Under nests the new activity below a parent
func (b *Builder) Under(parent *Activity) *Builder {
	b.parent = parent
	return b
}

// Build validates the category and assembles the activity
func (b *Builder) Build() (*Activity, error) {
	if b.trajectoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRAJECTORY", "Trajectory ID cannot be empty")
	}
	if !b.category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown activity category")
	}
	if !b.context.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONTEXT", "Unknown training context")
	}
	a := newActivity(b.trajectoryID, b.category, b.context)
	if b.parent != nil {
		if err := a.AttachTo(b.parent); err != nil {
			return nil, err
		}
	}
	return a, nil
}
