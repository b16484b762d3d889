package supervision

import (
	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
)

// Event types emitted by the supervision group aggregate
const (
	EventSignaturesRequested = "supervision.signatures_requested"
	EventMemberSigned        = "supervision.member_signed"
	EventMemberRemoved       = "supervision.member_removed"
)

// SignaturesRequestedEvent is emitted when the signing round opens
type SignaturesRequestedEvent struct {
	shared.BaseDomainEvent
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	Invited      int       `json:"invited"`
}

// NewSignaturesRequestedEvent creates a new SignaturesRequestedEvent
func NewSignaturesRequestedEvent(g *Group, invited int) *SignaturesRequestedEvent {
	return &SignaturesRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventSignaturesRequested, "SupervisionGroup", g.ID),
		TrajectoryID:    g.TrajectoryID,
		Invited:         invited,
	}
}

// MemberSignedEvent is emitted when a member settles their signature
type MemberSignedEvent struct {
	shared.BaseDomainEvent
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
	State        string    `json:"state"`
}

// NewMemberSignedEvent creates a new MemberSignedEvent
func NewMemberSignedEvent(g *Group, memberID uuid.UUID, state string) *MemberSignedEvent {
	return &MemberSignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMemberSigned, "SupervisionGroup", g.ID),
		TrajectoryID:    g.TrajectoryID,
		MemberID:        memberID,
		State:           state,
	}
}

// MemberRemovedEvent is emitted when a member leaves the group
type MemberRemovedEvent struct {
	shared.BaseDomainEvent
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberName   string    `json:"member_name"`
}

// NewMemberRemovedEvent creates a new MemberRemovedEvent
func NewMemberRemovedEvent(g *Group, memberName string) *MemberRemovedEvent {
	return &MemberRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventMemberRemoved, "SupervisionGroup", g.ID),
		TrajectoryID:    g.TrajectoryID,
		MemberName:      memberName,
	}
}
