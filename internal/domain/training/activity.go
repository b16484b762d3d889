package training

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Activity is a formally recorded training action. Activities form a
// two-level forest: conferences, seminars and residencies may carry
// communications (and, for conferences, publications) as children.
// Category-specific data lives in optional fields validated per category;
// a flat record with one validator per category replaces the deep
// inheritance tree of older designs.
type Activity struct {
	shared.BaseAggregateRoot
	TrajectoryID uuid.UUID
	Context      Context
	Category     Category
	Status       ActivityStatus

	ParentID       *uuid.UUID
	ParentCategory *Category

	ECTS decimal.Decimal

	// Category-specific fields
	Title                 string
	Subtitle              string
	StartDate             *time.Time
	EndDate               *time.Time
	ParticipatingDays     *decimal.Decimal
	HourVolume            string
	IsOnline              bool
	City                  string
	Country               string
	OrganizingInstitution string
	Website               string
	Committee             CommitteeChoice
	AcceptationProof      valueobject.DocumentRefs
	ParticipationProof    valueobject.DocumentRefs
	Summary               valueobject.DocumentRefs
	Authors               string
	Role                  string
	KeynoteCommunication  bool
	PublicationStatus     string
	WithReadingCommittee  bool
	DialReference         string
	Comment               string

	// UCL_COURSE fields
	LearningUnitCode  string
	LearningClassCode string
	AcademicYear      int
	CourseCompleted   bool
	Mark              string
	Enrolments        []SessionEnrolment

	// PAPER field
	PaperType PaperType

	// Review trail
	ReferencePromoterAssent  *bool
	ReferencePromoterComment string
	CDDComment               string
}

// NewActivity is used by the builder; use Builder to create activities
func newActivity(trajectoryID uuid.UUID, category Category, context Context) *Activity {
	return &Activity{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrajectoryID:      trajectoryID,
		Category:          category,
		Context:           context,
		Status:            ActivityNotSubmitted,
		ECTS:              decimal.Zero,
	}
}

// AttachTo links the activity under a parent, enforcing the legal
// (parent category, child category) pairs
func (a *Activity) AttachTo(parent *Activity) error {
	if parent.TrajectoryID != a.TrajectoryID {
		return shared.NewDomainError("PARENT_MISMATCH", "Parent belongs to another trajectory")
	}
	if !parent.Category.CanParent(a.Category) {
		return shared.NewDomainError("ILLEGAL_PARENT", "This category cannot be nested under the parent category")
	}
	if parent.ParentID != nil {
		return shared.NewDomainError("TOO_DEEP", "Activities nest at most one level deep")
	}
	a.ParentID = &parent.ID
	pc := parent.Category
	a.ParentCategory = &pc
	a.UpdatedAt = time.Now()
	return nil
}

// SetECTS records the credit weight; negative values are rejected
func (a *Activity) SetECTS(ects decimal.Decimal) error {
	if ects.IsNegative() {
		return shared.NewDomainError("NEGATIVE_ECTS", "ECTS cannot be negative")
	}
	a.ECTS = ects
	a.UpdatedAt = time.Now()
	return nil
}

// Submit moves the activity to SUBMITTED; completeness is checked by the
// batch submission service beforehand
func (a *Activity) Submit() error {
	if a.Status != ActivityNotSubmitted {
		return shared.NewDomainError("ALREADY_SUBMITTED", "Only an unsubmitted activity can be submitted")
	}
	a.Status = ActivitySubmitted
	a.UpdatedAt = time.Now()
	return nil
}

// Approve moves SUBMITTED to ACCEPTED
func (a *Activity) Approve() error {
	if a.Status != ActivitySubmitted {
		return shared.ErrInvalidTransition
	}
	a.Status = ActivityAccepted
	a.UpdatedAt = time.Now()
	return nil
}

// Refuse settles a SUBMITTED activity. With withModification the activity
// goes back to the candidate as NOT_SUBMITTED instead of REFUSED. The
// manager remark is not recorded on seminar children, whose refusal is
// carried by the parent.
func (a *Activity) Refuse(reason string, withModification bool) error {
	if a.Status != ActivitySubmitted {
		return shared.ErrInvalidTransition
	}
	if reason == "" {
		return shared.NewDomainError("REASON_REQUIRED", "A refusal reason is required")
	}
	if withModification {
		a.Status = ActivityNotSubmitted
	} else {
		a.Status = ActivityRefused
	}
	if a.ParentCategory == nil || *a.ParentCategory != CategorySeminar {
		a.CDDComment = reason
	}
	a.UpdatedAt = time.Now()
	return nil
}

// Restore is the reviewer undo: ACCEPTED back to SUBMITTED
func (a *Activity) Restore() error {
	if a.Status != ActivityAccepted {
		return shared.ErrInvalidTransition
	}
	a.Status = ActivitySubmitted
	a.UpdatedAt = time.Now()
	return nil
}

// CanDelete reports whether the activity may be removed
func (a *Activity) CanDelete() bool {
	return a.Status == ActivityNotSubmitted
}

// RecordPromoterOpinion stores the reference promoter's assent on a
// submitted activity
func (a *Activity) RecordPromoterOpinion(assent bool, comment string) error {
	if a.Status != ActivitySubmitted {
		return shared.ErrInvalidTransition
	}
	a.ReferencePromoterAssent = &assent
	a.ReferencePromoterComment = comment
	a.UpdatedAt = time.Now()
	return nil
}

// EncodeMark records a course mark; a mark of 10 or more completes the
// course. Unparseable marks are kept but change nothing.
func (a *Activity) EncodeMark(mark string) {
	if a.Category != CategoryUCLCourse {
		return
	}
	a.Mark = mark
	if v, err := strconv.ParseFloat(mark, 64); err == nil && v >= 10 {
		a.CourseCompleted = true
	}
	a.UpdatedAt = time.Now()
}

// CountsAsComplementaryTraining reports whether the activity proves the
// presence of complementary training: accepted, in the complementary
// context, and not a UCL course still waiting for completion
func (a *Activity) CountsAsComplementaryTraining() bool {
	if a.Context != ContextComplementaryTraining || a.Status != ActivityAccepted {
		return false
	}
	if a.Category == CategoryUCLCourse && !a.CourseCompleted {
		return false
	}
	return true
}
