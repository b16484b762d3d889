package trajectory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/confirmation"
	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/trajectory"
)

// confirmationDeadlineMonths is the regulatory window between the CDD
// approval of an admission and the confirmation exam
const confirmationDeadlineMonths = 24

// InitService creates a doctoral trajectory when the admission context
// reports an approved admission or enrolment. It duplicates the admission
// snapshot: project, cotutelle, funding, supervision panel and documents.
type InitService struct {
	trajectories trajectory.Repository
	groups       supervision.Repository
	papers       confirmation.Repository
	admissions   reference.AdmissionTranslator
	trainings    reference.TrainingTranslator
	duplicator   reference.DocumentDuplicator
	roles        reference.RoleStore
	notifier     trajectory.Notifier
	historian    trajectory.Historian
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewInitService creates a new InitService
func NewInitService(
	trajectories trajectory.Repository,
	groups supervision.Repository,
	papers confirmation.Repository,
	admissions reference.AdmissionTranslator,
	trainings reference.TrainingTranslator,
	duplicator reference.DocumentDuplicator,
	roles reference.RoleStore,
	notifier trajectory.Notifier,
	historian trajectory.Historian,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *InitService {
	return &InitService{
		trajectories: trajectories,
		groups:       groups,
		papers:       papers,
		admissions:   admissions,
		trainings:    trainings,
		duplicator:   duplicator,
		roles:        roles,
		notifier:     notifier,
		historian:    historian,
		publisher:    publisher,
		logger:       logger,
	}
}

// EventTypes returns the inbound admission events this service reacts to
func (s *InitService) EventTypes() []string {
	return []string{
		trajectory.EventAdmissionApprovedBySIC,
		trajectory.EventEnrolmentApprovedBySIC,
	}
}

// Handle reacts to an approved admission by initialising the trajectory
func (s *InitService) Handle(ctx context.Context, event shared.DomainEvent) error {
	_, err := s.Initialise(ctx, event.AggregateID())
	return err
}

// Initialise creates (or, after a pre-admission, continues) the trajectory
// of an approved admission. The operation is idempotent: an admission that
// already produced a trajectory is left untouched.
func (s *InitService) Initialise(ctx context.Context, admissionID uuid.UUID) (*trajectory.Trajectory, error) {
	if existing, err := s.trajectories.FindByAdmission(ctx, admissionID); err == nil {
		s.logger.Info("trajectory already initialised",
			zap.String("admission_id", admissionID.String()),
			zap.String("trajectory_id", existing.ID.String()),
		)
		return existing, nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	admission, err := s.admissions.Get(ctx, admissionID)
	if err != nil {
		return nil, err
	}

	// An admission that follows a pre-admission continues the trajectory
	// the pre-admission opened instead of starting a second one
	if admission.Type == reference.AdmissionTypeAdmission && admission.PreAdmissionID != nil {
		continued, err := s.continueFromPreAdmission(ctx, admission)
		if err != nil {
			return nil, err
		}
		if continued != nil {
			return continued, nil
		}
	}

	return s.create(ctx, admission)
}

func (s *InitService) continueFromPreAdmission(ctx context.Context, admission *reference.AdmissionDTO) (*trajectory.Trajectory, error) {
	trajectoryID, err := s.admissions.TrajectoryForPreAdmission(ctx, *admission.PreAdmissionID)
	if err != nil {
		return nil, err
	}
	if trajectoryID == uuid.Nil {
		return nil, nil
	}

	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}

	// The confirmed admission supersedes the pre-admission snapshot:
	// project, cotutelle and funding are overwritten, the documents and
	// the supervision panel are duplicated again, and the trajectory
	// restarts at ADMITTED with its first confirmation paper. The
	// jury-stage fields written through ModifyDefence are preserved.
	traj.AdmissionID = admission.ID
	traj.Reference = admission.Reference
	traj.AdmittedAt = admission.ApprovedByCDDAt
	traj.Status = trajectory.StatusAdmitted
	if err := traj.SetProximityCommission(admission.ProximityCommission); err != nil {
		return nil, err
	}
	if err := s.copySnapshot(ctx, traj, admission); err != nil {
		return nil, err
	}
	if err := s.trajectories.Save(ctx, traj); err != nil {
		return nil, err
	}
	if err := s.duplicateSupervision(ctx, traj, admission); err != nil {
		return nil, err
	}
	if err := s.openConfirmationPaper(ctx, traj, admission); err != nil {
		return nil, err
	}

	s.recordHistory(ctx, traj, "admission confirmée",
		fmt.Sprintf("L'admission confirme la pré-admission du parcours %s", traj.FormattedReference()),
		fmt.Sprintf("The admission confirms the pre-admission of trajectory %s", traj.FormattedReference()))
	return traj, nil
}

func (s *InitService) create(ctx context.Context, admission *reference.AdmissionDTO) (*trajectory.Trajectory, error) {
	entity, campus, err := s.resolveTraining(ctx, admission)
	if err != nil {
		return nil, err
	}

	traj, err := trajectory.NewTrajectory(
		admission.ID,
		admission.StudentID,
		admission.Reference,
		admission.TrainingAcronym,
		admission.TrainingYear,
		entity,
		campus,
		admission.ApprovedByCDDAt,
	)
	if err != nil {
		return nil, err
	}
	if admission.ProximityCommission != "" {
		if err := traj.SetProximityCommission(admission.ProximityCommission); err != nil {
			return nil, err
		}
	}

	if err := s.copySnapshot(ctx, traj, admission); err != nil {
		return nil, err
	}

	if err := s.trajectories.Save(ctx, traj); err != nil {
		return nil, err
	}

	if err := s.duplicateSupervision(ctx, traj, admission); err != nil {
		return nil, err
	}

	// A pre-admission opens no confirmation paper; the clock only starts
	// when the confirmed admission arrives
	if admission.Type != reference.AdmissionTypePreAdmission {
		if err := s.openConfirmationPaper(ctx, traj, admission); err != nil {
			return nil, err
		}
	}

	if err := s.roles.Ensure(ctx, admission.StudentID, reference.RoleStudent); err != nil {
		s.logger.Warn("student role not ensured", zap.Error(err))
	}

	s.recordHistory(ctx, traj, "initialisation",
		fmt.Sprintf("Le parcours doctoral %s a été initialisé", traj.FormattedReference()),
		fmt.Sprintf("Doctoral trajectory %s was initialised", traj.FormattedReference()))

	if err := s.notifier.SendToStudent(ctx, traj.ID,
		"Votre parcours doctoral a été créé",
		fmt.Sprintf("Votre parcours doctoral %s a été créé suite à l'approbation de votre admission.", traj.FormattedReference()),
		trajectory.Recipients{}); err != nil {
		s.logger.Warn("student notification failed", zap.Error(err))
	}

	if err := s.publisher.Publish(ctx, traj.GetDomainEvents()...); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}
	traj.ClearDomainEvents()

	return traj, nil
}

func (s *InitService) openConfirmationPaper(ctx context.Context, traj *trajectory.Trajectory, admission *reference.AdmissionDTO) error {
	deadline := admission.ApprovedByCDDAt.AddDate(0, confirmationDeadlineMonths, 0)
	paper, err := confirmation.NewPaper(traj.ID, deadline)
	if err != nil {
		return err
	}
	return s.papers.Save(ctx, paper)
}

// resolveTraining denormalises the managing entity and enrolment campus
// onto the trajectory so reference formatting never needs the catalogue
// again
func (s *InitService) resolveTraining(ctx context.Context, admission *reference.AdmissionDTO) (entityAcronym, campusName string, err error) {
	training, err := s.trainings.Get(ctx, admission.TrainingAcronym, admission.TrainingYear)
	if err != nil {
		return "", "", err
	}
	return training.EntityAcronym, training.CampusName, nil
}

func (s *InitService) copySnapshot(ctx context.Context, traj *trajectory.Trajectory, admission *reference.AdmissionDTO) error {
	dup := func(refs []string) (valueobject.DocumentRefs, error) {
		if len(refs) == 0 {
			return nil, nil
		}
		copied, err := s.duplicator.Duplicate(ctx, traj.ID, refs)
		if err != nil {
			return nil, err
		}
		return valueobject.DocumentRefsFromStrings(copied), nil
	}

	var err error
	project := trajectory.Project{
		Title:          admission.ProjectTitle,
		Abstract:       admission.ProjectAbstract,
		ThesisLanguage: admission.ThesisLanguage,
		InstituteID:    admission.InstituteID,
		Location:       admission.Location,
		AlreadyStarted: admission.AlreadyStarted,
		StartInstitute: admission.StartInstitute,
		StartDate:      admission.StartDate,
	}
	if project.Documents, err = dup(admission.ProjectDocuments); err != nil {
		return err
	}
	if project.Gantt, err = dup(admission.GanttDocuments); err != nil {
		return err
	}
	if project.ProgramProposition, err = dup(admission.ProgramProposition); err != nil {
		return err
	}
	if project.ComplementaryTrainingProject, err = dup(admission.ComplementaryTrainingProject); err != nil {
		return err
	}
	if project.RecommendationLetters, err = dup(admission.RecommendationLetters); err != nil {
		return err
	}
	traj.Project = project

	cotutelle := trajectory.Cotutelle{
		Motivation:              admission.CotutelleMotivation,
		FWBInstitution:          admission.CotutelleFWBInstitution,
		InstitutionID:           admission.CotutelleInstitutionID,
		OtherInstitutionName:    admission.CotutelleOtherName,
		OtherInstitutionAddress: admission.CotutelleOtherAddress,
	}
	if cotutelle.OpeningRequest, err = dup(admission.CotutelleOpeningRequest); err != nil {
		return err
	}
	if cotutelle.Convention, err = dup(admission.CotutelleConvention); err != nil {
		return err
	}
	if cotutelle.OtherDocuments, err = dup(admission.CotutelleOtherDocuments); err != nil {
		return err
	}
	traj.Cotutelle = cotutelle

	funding := trajectory.Funding{
		Type:               trajectory.FundingType(admission.FundingType),
		WorkContractKind:   admission.WorkContractKind,
		EFT:                admission.EFT,
		ScholarshipID:      admission.ScholarshipID,
		OtherScholarship:   admission.OtherScholarship,
		StartDate:          admission.ScholarshipStartDate,
		EndDate:            admission.ScholarshipEndDate,
		PlannedDuration:    admission.PlannedDuration,
		DedicatedTime:      admission.DedicatedTime,
		IsFnrsFriaFreshCSC: admission.IsFnrsFriaFreshCSC,
		Comment:            admission.FundingComment,
	}
	if funding.Proof, err = dup(admission.ScholarshipProof); err != nil {
		return err
	}
	traj.Funding = funding

	traj.PreviousExperience = trajectory.PreviousExperience{
		Done:            trajectory.PreviousDoctorate(admission.PreviousDoctorateDone),
		Institution:     admission.PreviousInstitution,
		Domain:          admission.PreviousDomain,
		DefenceDate:     admission.PreviousDefenceDate,
		NoDefenceReason: admission.PreviousNoDefenceReason,
	}
	return nil
}

func (s *InitService) duplicateSupervision(ctx context.Context, traj *trajectory.Trajectory, admission *reference.AdmissionDTO) error {
	group, err := supervision.NewGroup(traj.ID)
	if err != nil {
		return err
	}
	for _, sup := range admission.Supervisors {
		memberType := supervision.MemberPromoter
		role := reference.RolePromoter
		if sup.Type != string(supervision.MemberPromoter) {
			memberType = supervision.MemberCA
			role = reference.RoleCommitteeMember
		}

		var actor valueobject.Actor
		if sup.IsExternal || sup.PersonID == nil {
			actor = valueobject.NewExternalActor(sup.FirstName, sup.LastName, sup.Email, sup.Institute, sup.City, sup.Country, sup.Language)
		} else {
			actor = valueobject.NewInternalActor(*sup.PersonID, sup.FirstName, sup.LastName, sup.Email)
			if err := s.roles.Ensure(ctx, *sup.PersonID, role); err != nil {
				s.logger.Warn("member role not ensured", zap.Error(err))
			}
		}

		if _, err := group.AdoptMember(memberType, actor, sup.IsDoctor, sup.IsReferencePromoter, admission.ApprovedByCDDAt); err != nil {
			return err
		}
	}
	return s.groups.Save(ctx, group)
}

func (s *InitService) recordHistory(ctx context.Context, traj *trajectory.Trajectory, tag, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: traj.ID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", tag},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded",
			zap.String("trajectory_id", traj.ID.String()),
			zap.Error(err),
		)
	}
}

var _ shared.EventHandler = (*InitService)(nil)
