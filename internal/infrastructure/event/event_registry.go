package event

import (
	"github.com/osis/backend/internal/domain/jury"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/trajectory"
)

// RegisterAllEvents registers all domain event types with the serializer.
// Deserialization needs this when events are replayed from storage or
// received from the admission context.
func RegisterAllEvents(serializer *EventSerializer) {
	// Trajectory lifecycle
	serializer.Register(trajectory.EventTrajectoryInitialised, &trajectory.TrajectoryInitialisedEvent{})
	serializer.Register(trajectory.EventTrajectoryStatusChanged, &trajectory.TrajectoryStatusChangedEvent{})

	// Inbound events from the admission context
	serializer.Register(trajectory.EventAdmissionApprovedBySIC, &trajectory.AdmissionApprovedEvent{})
	serializer.Register(trajectory.EventEnrolmentApprovedBySIC, &trajectory.AdmissionApprovedEvent{})

	// Supervision panel signature round
	serializer.Register(supervision.EventSignaturesRequested, &supervision.SignaturesRequestedEvent{})
	serializer.Register(supervision.EventMemberSigned, &supervision.MemberSignedEvent{})
	serializer.Register(supervision.EventMemberRemoved, &supervision.MemberRemovedEvent{})

	// Jury approval cycle
	serializer.Register(jury.EventJurySignaturesRequested, &jury.SignaturesRequestedEvent{})
	serializer.Register(jury.EventJuryMemberSigned, &jury.MemberSignedEvent{})
}
