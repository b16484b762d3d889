package confirmation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/confirmation"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/trajectory"
)

// AttestationData is what the success attestation shows
type AttestationData struct {
	Trajectory *trajectory.DTO
	TakenDate  *time.Time
}

// AttestationRenderer renders the success attestation into a stored PDF
// and returns the reference of the stored file
type AttestationRenderer interface {
	Render(ctx context.Context, data AttestationData) (valueobject.DocumentRef, error)
}

// AttestationService produces the certificate of achievement after a
// passed confirmation exam. Generation runs out of band; the worker
// drains the queue and calls Process.
type AttestationService struct {
	papers       confirmation.Repository
	trajectories trajectory.Repository
	tasks        trajectory.TaskQueue
	renderer     AttestationRenderer
	logger       *zap.Logger
}

// NewAttestationService creates a new AttestationService
func NewAttestationService(
	papers confirmation.Repository,
	trajectories trajectory.Repository,
	tasks trajectory.TaskQueue,
	renderer AttestationRenderer,
	logger *zap.Logger,
) *AttestationService {
	return &AttestationService{
		papers:       papers,
		trajectories: trajectories,
		tasks:        tasks,
		renderer:     renderer,
		logger:       logger,
	}
}

// Process renders the attestation for one queued task and attaches it to
// the settled paper as its certificate of achievement
func (s *AttestationService) Process(ctx context.Context, task trajectory.Task) error {
	traj, err := s.trajectories.GetDTO(ctx, task.TrajectoryID)
	if err != nil {
		return s.fail(ctx, task, err)
	}

	// The settled paper is the most recent one; it was deactivated when
	// the success decision was taken.
	papers, err := s.papers.FindByTrajectory(ctx, task.TrajectoryID)
	if err != nil {
		return s.fail(ctx, task, err)
	}
	if len(papers) == 0 {
		return s.fail(ctx, task, shared.NewDomainError("NO_CONFIRMATION_PAPER",
			"Trajectory has no confirmation paper"))
	}
	paper := &papers[0]

	ref, err := s.renderer.Render(ctx, AttestationData{
		Trajectory: traj,
		TakenDate:  paper.TakenDate,
	})
	if err != nil {
		return s.fail(ctx, task, err)
	}

	paper.RecordAchievement(valueobject.DocumentRefs{ref})
	if err := s.papers.Save(ctx, paper); err != nil {
		return s.fail(ctx, task, err)
	}

	if err := s.tasks.SetState(ctx, task.ID, trajectory.TaskDone); err != nil {
		return err
	}
	s.logger.Info("confirmation attestation generated",
		zap.String("trajectory_id", task.TrajectoryID.String()),
		zap.String("document_ref", string(ref)),
	)
	return nil
}

func (s *AttestationService) fail(ctx context.Context, task trajectory.Task, cause error) error {
	if err := s.tasks.SetState(ctx, task.ID, trajectory.TaskError); err != nil {
		s.logger.Error("task state not updated", zap.Error(err))
	}
	return cause
}
