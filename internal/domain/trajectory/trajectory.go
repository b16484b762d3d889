package trajectory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

// Trajectory is the doctoral journey aggregate root. It is created from an
// approved admission, mutated by dedicated use-cases along the status
// machine, and never deleted by the domain.
type Trajectory struct {
	shared.BaseAggregateRoot
	Reference       int
	Status          Status
	StudentID       uuid.UUID
	TrainingAcronym string
	TrainingYear    int
	EntityAcronym   string
	CampusName      string

	ProximityCommission string
	Justification       string

	Project            Project
	Cotutelle          Cotutelle
	Funding            Funding
	PreviousExperience PreviousExperience

	// Jury-stage fields, written through ModifyDefence
	ProposedThesisTitle   string
	DefenceMethod         string
	DefenceIndicativeDate *time.Time
	DefenceLanguage       DefenceLanguage
	JuryComment           string
	AccountingSituation   *bool
	JuryApproval          valueobject.DocumentRefs

	// SigningLocked freezes supervision membership while signatures are
	// being collected
	SigningLocked bool

	AdmissionID uuid.UUID
	AdmittedAt  time.Time
}

// NewTrajectory creates a trajectory seeded from an approved admission
func NewTrajectory(admissionID, studentID uuid.UUID, reference int, trainingAcronym string, trainingYear int, entityAcronym, campusName string, admittedAt time.Time) (*Trajectory, error) {
	if admissionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ADMISSION", "Admission ID cannot be empty")
	}
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STUDENT", "Student ID cannot be empty")
	}
	if trainingAcronym == "" {
		return nil, shared.NewDomainError("INVALID_TRAINING", "Training acronym cannot be empty")
	}

	t := &Trajectory{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Reference:         reference,
		Status:            StatusAdmitted,
		StudentID:         studentID,
		TrainingAcronym:   trainingAcronym,
		TrainingYear:      trainingYear,
		EntityAcronym:     entityAcronym,
		CampusName:        campusName,
		AdmissionID:       admissionID,
		AdmittedAt:        admittedAt,
	}

	t.AddDomainEvent(NewTrajectoryInitialisedEvent(t))

	return t, nil
}

// FormattedReference renders the externally visible reference, e.g.
// "M-CDSS24-123456". The level prefix depends on the enrolment campus and
// the numeric part was allocated by the admission.
func (t *Trajectory) FormattedReference() string {
	return FormatReference(t.CampusName, t.EntityAcronym, t.TrainingYear, t.Reference)
}

// CanModify reports whether project-level fields may still change
func (t *Trajectory) CanModify() bool {
	return t.Status.IsActive()
}

// SetProximityCommission records the proximity commission, validating it
// against the set allowed for the training entity
func (t *Trajectory) SetProximityCommission(commission string) error {
	if commission == "" {
		t.ProximityCommission = ""
		return nil
	}
	if !IsProximityCommissionValid(t.EntityAcronym, commission) {
		return shared.NewDomainError("INVALID_PROXIMITY_COMMISSION", "Proximity commission is not valid for this training entity")
	}
	t.ProximityCommission = commission
	t.UpdatedAt = time.Now()
	return nil
}

// ModifyProject overwrites the project value object.
// Allowed in any non-terminal status.
func (t *Trajectory) ModifyProject(project Project) error {
	if !t.CanModify() {
		return shared.ErrInvalidTransition
	}
	t.Project = project
	t.UpdatedAt = time.Now()
	return nil
}

// ModifyFunding overwrites the funding value object after validation
func (t *Trajectory) ModifyFunding(funding Funding) error {
	if !t.CanModify() {
		return shared.ErrInvalidTransition
	}
	if err := funding.Validate(); err != nil {
		return err
	}
	t.Funding = funding
	t.UpdatedAt = time.Now()
	return nil
}

// ModifyCotutelle overwrites the cotutelle value object after validation
func (t *Trajectory) ModifyCotutelle(cotutelle Cotutelle) error {
	if !t.CanModify() {
		return shared.ErrInvalidTransition
	}
	if err := cotutelle.Validate(); err != nil {
		return err
	}
	t.Cotutelle = cotutelle
	t.UpdatedAt = time.Now()
	return nil
}

// ModifyDefence updates the jury-stage fields. Allowed only while the
// trajectory sits in the confirmation-succeeded or jury steps.
func (t *Trajectory) ModifyDefence(title, method string, indicativeDate *time.Time, thesisLanguage string, defenceLanguage DefenceLanguage, comment string, accountingSituation *bool) error {
	if t.Status != StatusConfirmationSucceeded && t.Status.Stage() != StageJury {
		return shared.ErrInvalidTransition
	}
	if defenceLanguage != "" && !defenceLanguage.IsValid() {
		return shared.NewDomainError("INVALID_DEFENCE_LANGUAGE", "Unknown defence language")
	}
	t.ProposedThesisTitle = title
	t.DefenceMethod = method
	t.DefenceIndicativeDate = indicativeDate
	if thesisLanguage != "" {
		t.Project.ThesisLanguage = thesisLanguage
	}
	t.DefenceLanguage = defenceLanguage
	t.JuryComment = comment
	t.AccountingSituation = accountingSituation
	t.UpdatedAt = time.Now()
	return nil
}

// VerifyProject checks the project fields required before signatures can
// be requested
func (t *Trajectory) VerifyProject() error {
	missing := t.Project.Title == "" ||
		t.Project.Abstract == "" ||
		t.Funding.Type == "" ||
		t.Funding.PlannedDuration == nil ||
		t.Funding.DedicatedTime == nil
	if missing {
		return shared.ErrProjectIncomplete
	}
	return nil
}

// LockForSigning freezes supervision membership. The caller must have
// verified the supervision group signatories beforehand.
func (t *Trajectory) LockForSigning() error {
	if err := t.VerifyProject(); err != nil {
		return err
	}
	t.SigningLocked = true
	t.UpdatedAt = time.Now()
	return nil
}

// UnlockSigning reopens supervision membership after a declined signature
func (t *Trajectory) UnlockSigning() {
	t.SigningLocked = false
	t.UpdatedAt = time.Now()
}

// TransitionTo moves the trajectory along the status table
func (t *Trajectory) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %s", target))
	}
	if !t.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot move from %s to %s", t.Status, target))
	}
	from := t.Status
	t.Status = target
	t.UpdatedAt = time.Now()

	t.AddDomainEvent(NewTrajectoryStatusChangedEvent(t, from, target))

	return nil
}

// Abandon drops the trajectory from any non-terminal status
func (t *Trajectory) Abandon() error {
	return t.TransitionTo(StatusAbandoned)
}

// IsTerminal reports whether the trajectory reached a final status
func (t *Trajectory) IsTerminal() bool {
	return t.Status.IsTerminal()
}
