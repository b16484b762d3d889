package trajectory

import (
	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

// Event types emitted by the trajectory aggregate
const (
	EventTrajectoryInitialised   = "trajectory.initialised"
	EventTrajectoryStatusChanged = "trajectory.status_changed"

	// Events consumed from the admission context
	EventAdmissionApprovedBySIC = "AdmissionDoctoraleApprouveeParSic"
	EventEnrolmentApprovedBySIC = "InscriptionDoctoraleApprouveeParSic"
)

// TrajectoryInitialisedEvent is emitted when a trajectory is created from
// an approved admission
type TrajectoryInitialisedEvent struct {
	shared.BaseDomainEvent
	Reference       string `json:"reference"`
	StudentID       string `json:"student_id"`
	TrainingAcronym string `json:"training_acronym"`
	TrainingYear    int    `json:"training_year"`
}

// NewTrajectoryInitialisedEvent creates a new TrajectoryInitialisedEvent
func NewTrajectoryInitialisedEvent(t *Trajectory) *TrajectoryInitialisedEvent {
	return &TrajectoryInitialisedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTrajectoryInitialised, "Trajectory", t.ID),
		Reference:       t.FormattedReference(),
		StudentID:       t.StudentID.String(),
		TrainingAcronym: t.TrainingAcronym,
		TrainingYear:    t.TrainingYear,
	}
}

// TrajectoryStatusChangedEvent is emitted on every status transition
type TrajectoryStatusChangedEvent struct {
	shared.BaseDomainEvent
	From Status `json:"from"`
	To   Status `json:"to"`
}

// NewTrajectoryStatusChangedEvent creates a new TrajectoryStatusChangedEvent
func NewTrajectoryStatusChangedEvent(t *Trajectory, from, to Status) *TrajectoryStatusChangedEvent {
	return &TrajectoryStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTrajectoryStatusChanged, "Trajectory", t.ID),
		From:            from,
		To:              to,
	}
}

// AdmissionApprovedEvent is the inbound event from the admission context
// that triggers trajectory initialisation. Both the admission and the
// enrolment variants carry the same payload.
type AdmissionApprovedEvent struct {
	shared.BaseDomainEvent
}

// NewAdmissionApprovedEvent creates an inbound admission-approved event;
// the aggregate ID is the admission UUID
func NewAdmissionApprovedEvent(eventType string, admissionID uuid.UUID) *AdmissionApprovedEvent {
	return &AdmissionApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "Admission", admissionID),
	}
}
