package trajectory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/confirmation"
	"github.com/osis/backend/internal/domain/document"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/training"
	"github.com/osis/backend/internal/domain/trajectory"
)

// ArchiveData is everything the trajectory archive document shows: the
// trajectory itself plus the supervision panel, confirmation papers and
// accepted training activities
type ArchiveData struct {
	Trajectory *trajectory.DTO
	Group      *supervision.DTO
	Papers     []confirmation.DTO
	Activities []training.DTO
}

// ArchiveRenderer renders the archive data into a stored PDF and returns
// the reference of the stored file
type ArchiveRenderer interface {
	Render(ctx context.Context, data ArchiveData) (valueobject.DocumentRef, error)
}

// ArchiveService produces the PDF archive of a trajectory. Generation is
// deferred to a task so the caller returns immediately; the worker drains
// the queue and calls Process.
type ArchiveService struct {
	trajectories trajectory.Repository
	groups       supervision.Repository
	papers       confirmation.Repository
	activities   training.Repository
	documents    document.Repository
	tasks        trajectory.TaskQueue
	renderer     ArchiveRenderer
	logger       *zap.Logger
}

// NewArchiveService creates a new ArchiveService
func NewArchiveService(
	trajectories trajectory.Repository,
	groups supervision.Repository,
	papers confirmation.Repository,
	activities training.Repository,
	documents document.Repository,
	tasks trajectory.TaskQueue,
	renderer ArchiveRenderer,
	logger *zap.Logger,
) *ArchiveService {
	return &ArchiveService{
		trajectories: trajectories,
		groups:       groups,
		papers:       papers,
		activities:   activities,
		documents:    documents,
		tasks:        tasks,
		renderer:     renderer,
		logger:       logger,
	}
}

// Request enqueues the archive generation and returns the pending task
func (s *ArchiveService) Request(ctx context.Context, trajectoryID uuid.UUID) (*trajectory.Task, error) {
	if _, err := s.trajectories.FindByID(ctx, trajectoryID); err != nil {
		return nil, err
	}
	return s.tasks.Enqueue(ctx, trajectoryID, trajectory.TaskKindPDFArchive)
}

// Process renders the archive for one queued task and stores it as a
// system document on the trajectory
func (s *ArchiveService) Process(ctx context.Context, task trajectory.Task) error {
	data, err := s.collect(ctx, task.TrajectoryID)
	if err != nil {
		return s.fail(ctx, task, err)
	}

	ref, err := s.renderer.Render(ctx, *data)
	if err != nil {
		return s.fail(ctx, task, err)
	}

	doc, err := document.NewDocument(task.TrajectoryID, document.TypeSystem,
		"Archive", valueobject.DocumentRefs{ref}, uuid.Nil)
	if err != nil {
		return s.fail(ctx, task, err)
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return s.fail(ctx, task, err)
	}

	if err := s.tasks.SetState(ctx, task.ID, trajectory.TaskDone); err != nil {
		return err
	}
	s.logger.Info("trajectory archive generated",
		zap.String("trajectory_id", task.TrajectoryID.String()),
		zap.String("document_ref", string(ref)),
	)
	return nil
}

func (s *ArchiveService) collect(ctx context.Context, trajectoryID uuid.UUID) (*ArchiveData, error) {
	traj, err := s.trajectories.GetDTO(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}
	group, err := s.groups.GetDTO(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}
	papers, err := s.papers.SearchDTO(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.SearchDTO(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}
	return &ArchiveData{
		Trajectory: traj,
		Group:      group,
		Papers:     papers,
		Activities: activities,
	}, nil
}

func (s *ArchiveService) fail(ctx context.Context, task trajectory.Task, cause error) error {
	s.logger.Error("trajectory archive generation failed",
		zap.String("trajectory_id", task.TrajectoryID.String()),
		zap.Error(cause),
	)
	if err := s.tasks.SetState(ctx, task.ID, trajectory.TaskError); err != nil {
		s.logger.Error("task state not updated", zap.Error(err))
	}
	return cause
}
