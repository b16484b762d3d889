package training

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/training"
	"github.com/osis/backend/internal/domain/trajectory"
)

// ActivityRequest carries the category-specific payload of an activity.
// Fields irrelevant to the category are ignored; Validate decides what
// each category requires.
type ActivityRequest struct {
	Title                 string           `json:"title"`
	Subtitle              string           `json:"subtitle"`
	StartDate             *time.Time       `json:"start_date"`
	EndDate               *time.Time       `json:"end_date"`
	ParticipatingDays     *decimal.Decimal `json:"participating_days"`
	HourVolume            string           `json:"hour_volume"`
	IsOnline              bool             `json:"is_online"`
	City                  string           `json:"city"`
	Country               string           `json:"country"`
	OrganizingInstitution string           `json:"organizing_institution"`
	Website               string           `json:"website"`
	Committee             string           `json:"committee"`
	AcceptationProof      []string         `json:"acceptation_proof"`
	ParticipationProof    []string         `json:"participation_proof"`
	Summary               []string         `json:"summary"`
	Authors               string           `json:"authors"`
	Role                  string           `json:"role"`
	KeynoteCommunication  bool             `json:"keynote_communication"`
	PublicationStatus     string           `json:"publication_status"`
	WithReadingCommittee  bool             `json:"with_reading_committee"`
	DialReference         string           `json:"dial_reference"`
	Comment               string           `json:"comment"`
	ECTS                  decimal.Decimal  `json:"ects"`

	LearningUnitCode  string `json:"learning_unit_code"`
	LearningClassCode string `json:"learning_class_code"`
	AcademicYear      int    `json:"academic_year"`

	PaperType string `json:"paper_type"`
}

// CreateActivityRequest wraps the payload with the structural choices made
// only at creation time
type CreateActivityRequest struct {
	Category string     `json:"category"`
	Context  string     `json:"context"`
	ParentID *uuid.UUID `json:"parent_id"`
	ActivityRequest
}

// Service handles the training catalogue use-cases: the activity
// lifecycle, batch submission and the session enrolments
type Service struct {
	activities   training.Repository
	trajectories trajectory.Repository
	submitter    *training.SubmitService
	notifier     trajectory.Notifier
	historian    trajectory.Historian
	logger       *zap.Logger
}

// NewService creates a new training Service
func NewService(
	activities training.Repository,
	trajectories trajectory.Repository,
	submitter *training.SubmitService,
	notifier trajectory.Notifier,
	historian trajectory.Historian,
	logger *zap.Logger,
) *Service {
	return &Service{
		activities:   activities,
		trajectories: trajectories,
		submitter:    submitter,
		notifier:     notifier,
		historian:    historian,
		logger:       logger,
	}
}

// List returns the read projections of a trajectory's activities
func (s *Service) List(ctx context.Context, trajectoryID uuid.UUID) ([]training.DTO, error) {
	return s.activities.SearchDTO(ctx, trajectoryID)
}

// Create builds a new activity, nesting it when a parent is given. A PAPER
// activity must be the only one of its type on the trajectory.
func (s *Service) Create(ctx context.Context, trajectoryID uuid.UUID, req CreateActivityRequest) (*training.Activity, error) {
	if _, err := s.trajectories.FindByID(ctx, trajectoryID); err != nil {
		return nil, err
	}

	category := training.Category(req.Category)
	builder := training.NewBuilder(trajectoryID, category)
	if req.Context != "" {
		builder.InContext(training.Context(req.Context))
	}
	if req.ParentID != nil {
		parent, err := s.activities.FindByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		builder.Under(parent)
	}

	activity, err := builder.Build()
	if err != nil {
		return nil, err
	}

	if category == training.CategoryPaper {
		paperType := training.PaperType(req.PaperType)
		if !paperType.IsValid() {
			return nil, shared.NewDomainError("INVALID_PAPER_TYPE", "Unknown paper type")
		}
		if _, err := s.activities.FindPaper(ctx, trajectoryID, paperType); err == nil {
			return nil, shared.NewDomainError("PAPER_ALREADY_EXISTS", "A paper of this type already exists")
		} else if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		activity.PaperType = paperType
	}

	if err := s.apply(activity, req.ActivityRequest); err != nil {
		return nil, err
	}
	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// Update edits an unsubmitted activity's payload
func (s *Service) Update(ctx context.Context, activityID uuid.UUID, req ActivityRequest) error {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if activity.Status != training.ActivityNotSubmitted {
		return shared.NewDomainError("ACTIVITY_FROZEN", "Only an unsubmitted activity can be edited")
	}
	if err := s.apply(activity, req); err != nil {
		return err
	}
	return s.activities.Save(ctx, activity)
}

func (s *Service) apply(a *training.Activity, req ActivityRequest) error {
	a.Title = req.Title
	a.Subtitle = req.Subtitle
	a.StartDate = req.StartDate
	a.EndDate = req.EndDate
	a.ParticipatingDays = req.ParticipatingDays
	a.HourVolume = req.HourVolume
	a.IsOnline = req.IsOnline
	a.City = req.City
	a.Country = req.Country
	a.OrganizingInstitution = req.OrganizingInstitution
	a.Website = req.Website
	a.Committee = training.CommitteeChoice(req.Committee)
	a.AcceptationProof = valueobject.DocumentRefsFromStrings(req.AcceptationProof)
	a.ParticipationProof = valueobject.DocumentRefsFromStrings(req.ParticipationProof)
	a.Summary = valueobject.DocumentRefsFromStrings(req.Summary)
	a.Authors = req.Authors
	a.Role = req.Role
	a.KeynoteCommunication = req.KeynoteCommunication
	a.PublicationStatus = req.PublicationStatus
	a.WithReadingCommittee = req.WithReadingCommittee
	a.DialReference = req.DialReference
	a.Comment = req.Comment
	a.LearningUnitCode = req.LearningUnitCode
	a.LearningClassCode = req.LearningClassCode
	a.AcademicYear = req.AcademicYear
	return a.SetECTS(req.ECTS)
}

// Delete removes an unsubmitted activity together with its children
func (s *Service) Delete(ctx context.Context, activityID uuid.UUID) error {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if !activity.CanDelete() {
		return shared.NewDomainError("ACTIVITY_FROZEN", "Only an unsubmitted activity can be deleted")
	}
	return s.activities.Delete(ctx, activityID)
}

// SubmitBatch verifies the selected activities as one batch and submits
// them together; a single incomplete activity rejects the whole batch
func (s *Service) SubmitBatch(ctx context.Context, trajectoryID uuid.UUID, activityIDs []uuid.UUID) ([]uuid.UUID, error) {
	activities, err := s.submitter.Verify(ctx, activityIDs)
	if err != nil {
		return nil, err
	}
	submitted, err := s.submitter.Submit(ctx, activities)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.NotifySubmission(ctx, trajectoryID); err != nil {
		s.logger.Warn("submission notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"Des activités de formation ont été soumises",
		"Training activities were submitted")
	return submitted, nil
}

// Approve accepts a batch of submitted activities
func (s *Service) Approve(ctx context.Context, trajectoryID uuid.UUID, activityIDs []uuid.UUID) error {
	for _, id := range activityIDs {
		activity, err := s.activities.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := activity.Approve(); err != nil {
			return err
		}
		if err := s.activities.Save(ctx, activity); err != nil {
			return err
		}
	}
	if err := s.notifier.NotifyActivitiesApproved(ctx, trajectoryID, len(activityIDs)); err != nil {
		s.logger.Warn("approval notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"Des activités de formation ont été acceptées",
		"Training activities were accepted")
	return nil
}

// Refuse settles one submitted activity; withModification hands it back to
// the candidate instead of closing it. Seminar children follow the parent.
func (s *Service) Refuse(ctx context.Context, trajectoryID, activityID uuid.UUID, reason string, withModification bool) error {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if err := activity.Refuse(reason, withModification); err != nil {
		return err
	}
	if err := s.activities.Save(ctx, activity); err != nil {
		return err
	}

	if activity.Category == training.CategorySeminar {
		children, err := s.activities.FindChildren(ctx, activityID)
		if err != nil {
			return err
		}
		for i := range children {
			child := &children[i]
			if child.Status != training.ActivitySubmitted {
				continue
			}
			if err := child.Refuse(reason, withModification); err != nil {
				return err
			}
			if err := s.activities.Save(ctx, child); err != nil {
				return err
			}
		}
	}

	if err := s.notifier.NotifyActivityRefused(ctx, trajectoryID, reason); err != nil {
		s.logger.Warn("refusal notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"Une activité de formation a été refusée",
		"A training activity was refused")
	return nil
}

// Restore is the reviewer undo on an accepted activity
func (s *Service) Restore(ctx context.Context, activityID uuid.UUID) error {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if err := activity.Restore(); err != nil {
		return err
	}
	return s.activities.Save(ctx, activity)
}

// GiveOpinion records the reference promoter's assent on a submitted
// activity
func (s *Service) GiveOpinion(ctx context.Context, activityID uuid.UUID, assent bool, comment string) error {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if err := activity.RecordPromoterOpinion(assent, comment); err != nil {
		return err
	}
	return s.activities.Save(ctx, activity)
}

// Enrol appends a session enrolment to an accepted UCL course
func (s *Service) Enrol(ctx context.Context, activityID uuid.UUID, session string, year int, late bool) (*training.SessionEnrolment, error) {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return nil, err
	}
	enrolment, err := activity.Enrol(training.Session(session), year, late)
	if err != nil {
		return nil, err
	}
	if err := s.activities.Save(ctx, activity); err != nil {
		return nil, err
	}
	return enrolment, nil
}

// CorrectMark edits a corrected mark on the latest session enrolment
func (s *Service) CorrectMark(ctx context.Context, activityID, enrolmentID uuid.UUID, mark string) error {
	activity, err := s.activities.FindByID(ctx, activityID)
	if err != nil {
		return err
	}
	if err := activity.CorrectMark(enrolmentID, mark); err != nil {
		return err
	}
	return s.activities.Save(ctx, activity)
}

func (s *Service) record(ctx context.Context, trajectoryID uuid.UUID, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: trajectoryID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", "training"},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded", zap.Error(err))
	}
}
