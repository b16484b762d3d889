package trajectory

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/trajectory"
)

// ProjectService handles the candidate-facing project mutations and the
// trajectory read operations
type ProjectService struct {
	trajectories trajectory.Repository
	historian    trajectory.Historian
	logger       *zap.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(trajectories trajectory.Repository, historian trajectory.Historian, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		trajectories: trajectories,
		historian:    historian,
		logger:       logger,
	}
}

// Get returns the read projection of a trajectory
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*trajectory.DTO, error) {
	return s.trajectories.GetDTO(ctx, id)
}

// ListByStudent returns the trajectories of a student
func (s *ProjectService) ListByStudent(ctx context.Context, studentID uuid.UUID, filter shared.Filter) ([]trajectory.Trajectory, error) {
	return s.trajectories.FindByStudent(ctx, studentID, filter)
}

// GetCotutelle returns the cotutelle block of a trajectory
func (s *ProjectService) GetCotutelle(ctx context.Context, id uuid.UUID) (*CotutelleDTO, error) {
	traj, err := s.trajectories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c := traj.Cotutelle
	return &CotutelleDTO{
		Intended:                c.Intended(),
		Motivation:              c.Motivation,
		FWBInstitution:          c.FWBInstitution,
		InstitutionID:           c.InstitutionID,
		OtherInstitutionName:    c.OtherInstitutionName,
		OtherInstitutionAddress: c.OtherInstitutionAddress,
		OpeningRequest:          c.OpeningRequest.Strings(),
		Convention:              c.Convention.Strings(),
		OtherDocuments:          c.OtherDocuments.Strings(),
	}, nil
}

// ModifyProject overwrites the research project of a trajectory
func (s *ProjectService) ModifyProject(ctx context.Context, id uuid.UUID, req ModifyProjectRequest) error {
	traj, err := s.trajectories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	project := trajectory.Project{
		Title:          req.Title,
		Abstract:       req.Abstract,
		ThesisLanguage: req.ThesisLanguage,
		InstituteID:    req.InstituteID,
		Location:       req.Location,
		AlreadyStarted: req.AlreadyStarted,
		StartInstitute: req.StartInstitute,
		StartDate:      req.StartDate,

		Documents:                    valueobject.DocumentRefsFromStrings(req.Documents),
		Gantt:                        valueobject.DocumentRefsFromStrings(req.Gantt),
		ProgramProposition:           valueobject.DocumentRefsFromStrings(req.ProgramProposition),
		ComplementaryTrainingProject: valueobject.DocumentRefsFromStrings(req.ComplementaryTrainingProject),
		RecommendationLetters:        valueobject.DocumentRefsFromStrings(req.RecommendationLetters),
	}
	if err := traj.ModifyProject(project); err != nil {
		return err
	}
	if err := traj.SetProximityCommission(req.ProximityCommission); err != nil {
		return err
	}

	if err := s.trajectories.SaveWithLock(ctx, traj); err != nil {
		return err
	}
	s.record(ctx, traj, "projet", "Le projet de recherche a été modifié", "The research project was updated")
	return nil
}

// ModifyFunding overwrites the funding of a trajectory
func (s *ProjectService) ModifyFunding(ctx context.Context, id uuid.UUID, req ModifyFundingRequest) error {
	traj, err := s.trajectories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	funding := trajectory.Funding{
		Type:               trajectory.FundingType(req.Type),
		WorkContractKind:   req.WorkContractKind,
		EFT:                req.EFT,
		ScholarshipID:      req.ScholarshipID,
		OtherScholarship:   req.OtherScholarship,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Proof:              valueobject.DocumentRefsFromStrings(req.Proof),
		PlannedDuration:    req.PlannedDuration,
		DedicatedTime:      req.DedicatedTime,
		IsFnrsFriaFreshCSC: req.IsFnrsFriaFreshCSC,
		Comment:            req.Comment,
	}
	if err := traj.ModifyFunding(funding); err != nil {
		return err
	}

	if err := s.trajectories.SaveWithLock(ctx, traj); err != nil {
		return err
	}
	s.record(ctx, traj, "financement", "Le financement a été modifié", "The funding was updated")
	return nil
}

// ModifyCotutelle overwrites the cotutelle of a trajectory
func (s *ProjectService) ModifyCotutelle(ctx context.Context, id uuid.UUID, req ModifyCotutelleRequest) error {
	traj, err := s.trajectories.FindByID(ctx, id)
	if err != nil {
		return err
	}

	cotutelle := trajectory.Cotutelle{
		Motivation:              req.Motivation,
		FWBInstitution:          req.FWBInstitution,
		InstitutionID:           req.InstitutionID,
		OtherInstitutionName:    req.OtherInstitutionName,
		OtherInstitutionAddress: req.OtherInstitutionAddress,
		OpeningRequest:          valueobject.DocumentRefsFromStrings(req.OpeningRequest),
		Convention:              valueobject.DocumentRefsFromStrings(req.Convention),
		OtherDocuments:          valueobject.DocumentRefsFromStrings(req.OtherDocuments),
	}
	if err := traj.ModifyCotutelle(cotutelle); err != nil {
		return err
	}

	if err := s.trajectories.SaveWithLock(ctx, traj); err != nil {
		return err
	}
	s.record(ctx, traj, "cotutelle", "La cotutelle a été modifiée", "The cotutelle was updated")
	return nil
}

func (s *ProjectService) record(ctx context.Context, traj *trajectory.Trajectory, tag, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: traj.ID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", tag},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded", zap.Error(err))
	}
}
