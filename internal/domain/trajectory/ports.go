package trajectory

import (
	"context"

	"github.com/google/uuid"
)

// Recipients selects the copy lists of a student notification
type Recipients struct {
	CCPromoters bool
	CCCAMembers bool
	CCJury      bool
}

// Notifier is the outbound notification port. Implementations double every
// message as a web notification and an email; a delivery failure is logged
// and never fails the calling command.
type Notifier interface {
	SendToStudent(ctx context.Context, trajectoryID uuid.UUID, subject, message string, rcpt Recipients) error
	SendSignatureInvitation(ctx context.Context, trajectoryID, memberID uuid.UUID) error
	ResendSignatureInvitation(ctx context.Context, trajectoryID, memberID uuid.UUID) error
	NotifyMemberRemoved(ctx context.Context, trajectoryID uuid.UUID, memberName string) error
	NotifySubmission(ctx context.Context, trajectoryID uuid.UUID) error
	NotifyPromoterCompletion(ctx context.Context, trajectoryID uuid.UUID) error
	NotifySuccess(ctx context.Context, trajectoryID uuid.UUID, subject, message string) error
	NotifyFailure(ctx context.Context, trajectoryID uuid.UUID, subject, message string) error
	NotifyRetake(ctx context.Context, trajectoryID uuid.UUID, subject, message string) error
	NotifyNewDeadline(ctx context.Context, trajectoryID uuid.UUID) error
	NotifyActivitiesApproved(ctx context.Context, trajectoryID uuid.UUID, count int) error
	NotifyActivityRefused(ctx context.Context, trajectoryID uuid.UUID, reason string) error
}

// HistoryEntry is one recorded fact, bilingual plus structured tags
type HistoryEntry struct {
	TrajectoryID uuid.UUID
	MessageFR    string
	MessageEN    string
	Author       string
	Tags         []string
}

// Historian is the history-log port; each recorded fact becomes one entry
type Historian interface {
	Record(ctx context.Context, entry HistoryEntry) error
}

// Task kinds for deferred work drained by the out-of-band worker
const (
	TaskKindSuccessAttestation = "CONFIRMATION_SUCCESS_ATTESTATION"
	TaskKindPDFArchive         = "PDF_ARCHIVE"
)

// Task states
const (
	TaskPending = "PENDING"
	TaskDone    = "DONE"
	TaskError   = "ERROR"
)

// Task is a deferred unit of work attached to a trajectory
type Task struct {
	ID           uuid.UUID
	TrajectoryID uuid.UUID
	Kind         string
	State        string
}

// TaskQueue records deferred work; the worker that drains it is outside
// the core
type TaskQueue interface {
	Enqueue(ctx context.Context, trajectoryID uuid.UUID, kind string) (*Task, error)
	FindByTrajectory(ctx context.Context, trajectoryID uuid.UUID) ([]Task, error)
	SetState(ctx context.Context, taskID uuid.UUID, state string) error
}
