package jury

import (
	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

const (
	EventJurySignaturesRequested = "jury.signatures_requested"
	EventJuryMemberSigned        = "jury.member_signed"
)

// SignaturesRequestedEvent is raised when jury members are invited to sign
type SignaturesRequestedEvent struct {
	shared.BaseDomainEvent
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	InvitedCount int       `json:"invited_count"`
}

// NewSignaturesRequestedEvent creates a new SignaturesRequestedEvent
func NewSignaturesRequestedEvent(juryID, trajectoryID uuid.UUID, invited int) *SignaturesRequestedEvent {
	return &SignaturesRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJurySignaturesRequested, "Jury", juryID),
		TrajectoryID:    trajectoryID,
		InvitedCount:    invited,
	}
}

// MemberSignedEvent is raised when a jury member approves or refuses
type MemberSignedEvent struct {
	shared.BaseDomainEvent
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
	State        string    `json:"state"`
}

// NewMemberSignedEvent creates a new MemberSignedEvent
func NewMemberSignedEvent(juryID, trajectoryID, memberID uuid.UUID, state string) *MemberSignedEvent {
	return &MemberSignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventJuryMemberSigned, "Jury", juryID),
		TrajectoryID:    trajectoryID,
		MemberID:        memberID,
		State:           state,
	}
}
