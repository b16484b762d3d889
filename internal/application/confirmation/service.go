package confirmation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/confirmation"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/trajectory"
)

// SubmitRequest carries the candidate's confirmation-exam submission
type SubmitRequest struct {
	TakenDate             time.Time `json:"taken_date"`
	ResearchReport        []string  `json:"research_report"`
	SupervisorPanelReport []string  `json:"supervisor_panel_report"`
	MandateRenewalOpinion []string  `json:"mandate_renewal_opinion"`
}

// ExtensionRequest carries a deadline extension request
type ExtensionRequest struct {
	NewDeadline         time.Time `json:"new_deadline"`
	BriefJustification  string    `json:"brief_justification"`
	JustificationLetter []string  `json:"justification_letter"`
}

// CDDUpdateRequest is the free-form secretariat update
type CDDUpdateRequest struct {
	Deadline  time.Time  `json:"deadline"`
	TakenDate *time.Time `json:"taken_date"`
	Opinion   []string   `json:"opinion"`
	Canvas    []string   `json:"canvas"`
}

// Service handles the confirmation-exam use-cases: submission, deadline
// extension and the three decisions
type Service struct {
	papers       confirmation.Repository
	trajectories trajectory.Repository
	notifier     trajectory.Notifier
	historian    trajectory.Historian
	tasks        trajectory.TaskQueue
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewService creates a new confirmation Service
func NewService(
	papers confirmation.Repository,
	trajectories trajectory.Repository,
	notifier trajectory.Notifier,
	historian trajectory.Historian,
	tasks trajectory.TaskQueue,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		papers:       papers,
		trajectories: trajectories,
		notifier:     notifier,
		historian:    historian,
		tasks:        tasks,
		publisher:    publisher,
		logger:       logger,
	}
}

// List returns the read projections of a trajectory's papers
func (s *Service) List(ctx context.Context, trajectoryID uuid.UUID) ([]confirmation.DTO, error) {
	return s.papers.SearchDTO(ctx, trajectoryID)
}

// Submit records the exam and moves the trajectory to
// CONFIRMATION_SUBMITTED
func (s *Service) Submit(ctx context.Context, trajectoryID uuid.UUID, req SubmitRequest) error {
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	paper, err := s.papers.FindActiveByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}

	if err := paper.Submit(req.TakenDate,
		valueobject.DocumentRefsFromStrings(req.ResearchReport),
		valueobject.DocumentRefsFromStrings(req.SupervisorPanelReport),
		valueobject.DocumentRefsFromStrings(req.MandateRenewalOpinion)); err != nil {
		return err
	}
	if err := traj.TransitionTo(trajectory.StatusConfirmationSubmitted); err != nil {
		return err
	}

	if err := s.papers.Save(ctx, paper); err != nil {
		return err
	}
	if err := s.saveAndPublish(ctx, traj); err != nil {
		return err
	}

	if err := s.notifier.NotifySubmission(ctx, trajectoryID); err != nil {
		s.logger.Warn("submission notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"L'épreuve de confirmation a été soumise",
		"The confirmation paper was submitted")
	return nil
}

// CompleteByPromoter attaches the supervision panel documents
func (s *Service) CompleteByPromoter(ctx context.Context, trajectoryID uuid.UUID, panelReport, mandateOpinion []string) error {
	paper, err := s.papers.FindActiveByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := paper.CompleteByPromoter(
		valueobject.DocumentRefsFromStrings(panelReport),
		valueobject.DocumentRefsFromStrings(mandateOpinion)); err != nil {
		return err
	}
	if err := s.papers.Save(ctx, paper); err != nil {
		return err
	}
	s.record(ctx, trajectoryID,
		"L'épreuve de confirmation a été complétée par le promoteur",
		"The confirmation paper was completed by the promoter")
	return nil
}

// RequestExtension records a deadline extension request
func (s *Service) RequestExtension(ctx context.Context, trajectoryID uuid.UUID, req ExtensionRequest) error {
	paper, err := s.papers.FindActiveByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := paper.RequestExtension(req.NewDeadline, req.BriefJustification,
		valueobject.DocumentRefsFromStrings(req.JustificationLetter)); err != nil {
		return err
	}
	if err := s.papers.Save(ctx, paper); err != nil {
		return err
	}
	if err := s.notifier.NotifyNewDeadline(ctx, trajectoryID); err != nil {
		s.logger.Warn("deadline notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("Une prolongation jusqu'au %s a été demandée", req.NewDeadline.Format("2006-01-02")),
		fmt.Sprintf("An extension until %s was requested", req.NewDeadline.Format("2006-01-02")))
	return nil
}

// UpdateByCDD is the secretariat's free-form update
func (s *Service) UpdateByCDD(ctx context.Context, trajectoryID uuid.UUID, req CDDUpdateRequest) error {
	paper, err := s.papers.FindActiveByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	paper.ModifyByCDD(req.Deadline, req.TakenDate,
		valueobject.DocumentRefsFromStrings(req.Opinion),
		valueobject.DocumentRefsFromStrings(req.Canvas))
	return s.papers.Save(ctx, paper)
}

// ConfirmSuccess settles the exam as passed: the attestation is produced
// out of band by a queued task
func (s *Service) ConfirmSuccess(ctx context.Context, trajectoryID uuid.UUID) error {
	traj, paper, err := s.loadForDecision(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := traj.TransitionTo(trajectory.StatusConfirmationSucceeded); err != nil {
		return err
	}
	paper.Deactivate()

	if err := s.papers.Save(ctx, paper); err != nil {
		return err
	}
	if err := s.saveAndPublish(ctx, traj); err != nil {
		return err
	}

	task, err := s.tasks.Enqueue(ctx, trajectoryID, trajectory.TaskKindSuccessAttestation)
	if err != nil {
		s.logger.Warn("attestation task not enqueued", zap.Error(err))
	} else {
		s.logger.Info("attestation task enqueued", zap.String("task_id", task.ID.String()))
	}

	if err := s.notifier.NotifySuccess(ctx, trajectoryID,
		"Épreuve de confirmation réussie",
		"Votre épreuve de confirmation a été réussie."); err != nil {
		s.logger.Warn("success notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"L'épreuve de confirmation a été réussie",
		"The confirmation paper was passed")
	return nil
}

// ConfirmFailure settles the exam as failed; the trajectory ends. The
// manager writes the notification sent to the candidate.
func (s *Service) ConfirmFailure(ctx context.Context, trajectoryID uuid.UUID, subject, message string, certificate []string) error {
	traj, paper, err := s.loadForDecision(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := traj.TransitionTo(trajectory.StatusNotAuthorizedToContinue); err != nil {
		return err
	}
	paper.RecordFailure(valueobject.DocumentRefsFromStrings(certificate))
	paper.Deactivate()

	if err := s.papers.Save(ctx, paper); err != nil {
		return err
	}
	if err := s.saveAndPublish(ctx, traj); err != nil {
		return err
	}

	if err := s.notifier.NotifyFailure(ctx, trajectoryID, subject, message); err != nil {
		s.logger.Warn("failure notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"L'épreuve de confirmation a été échouée",
		"The confirmation paper was failed")
	return nil
}

// ConfirmRetake settles the exam as to be retaken: the current paper is
// closed and a fresh one opens with the new deadline. The manager writes
// the notification sent to the candidate.
func (s *Service) ConfirmRetake(ctx context.Context, trajectoryID uuid.UUID, subject, message string, newDeadline time.Time) error {
	traj, paper, err := s.loadForDecision(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if !newDeadline.After(paper.EffectiveDeadline()) {
		return shared.ErrDateOutOfRange
	}
	if err := traj.TransitionTo(trajectory.StatusConfirmationToRetake); err != nil {
		return err
	}
	paper.Deactivate()

	retake, err := confirmation.NewPaper(trajectoryID, newDeadline)
	if err != nil {
		return err
	}

	if err := s.papers.Save(ctx, paper); err != nil {
		return err
	}
	if err := s.papers.Save(ctx, retake); err != nil {
		return err
	}
	if err := s.saveAndPublish(ctx, traj); err != nil {
		return err
	}

	if err := s.notifier.NotifyRetake(ctx, trajectoryID, subject, message); err != nil {
		s.logger.Warn("retake notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"L'épreuve de confirmation est à repasser",
		"The confirmation paper is to be retaken")
	return nil
}

// loadForDecision fetches the trajectory and its active paper, and checks
// the paper holds everything a decision needs
func (s *Service) loadForDecision(ctx context.Context, trajectoryID uuid.UUID) (*trajectory.Trajectory, *confirmation.Paper, error) {
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return nil, nil, err
	}
	paper, err := s.papers.FindActiveByTrajectory(ctx, trajectoryID)
	if err != nil {
		return nil, nil, err
	}
	if err := paper.VerifyComplete(); err != nil {
		return nil, nil, err
	}
	return traj, paper, nil
}

func (s *Service) saveAndPublish(ctx context.Context, traj *trajectory.Trajectory) error {
	if err := s.trajectories.SaveWithLock(ctx, traj); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, traj.GetDomainEvents()...); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}
	traj.ClearDomainEvents()
	return nil
}

func (s *Service) record(ctx context.Context, trajectoryID uuid.UUID, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: trajectoryID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", "confirmation"},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded", zap.Error(err))
	}
}
