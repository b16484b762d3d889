package jury

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/jury"
	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/trajectory"
)

// MemberRequest designates a jury member: a supervision promoter, an
// internal person, or an inline external identity
type MemberRequest struct {
	Role       string     `json:"role"`
	PromoterID *uuid.UUID `json:"promoter_id"`
	PersonID   *uuid.UUID `json:"person_id"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Institute string `json:"institute"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Language  string `json:"language"`

	Title            string `json:"title"`
	Institution      string `json:"institution"`
	OtherInstitution string `json:"other_institution"`
	NonDoctorReason  string `json:"non_doctor_reason"`
	Gender           string `json:"gender"`
}

// DefenceRequest carries the jury-stage thesis fields
type DefenceRequest struct {
	Title               string     `json:"title"`
	Method              string     `json:"method"`
	IndicativeDate      *time.Time `json:"indicative_date"`
	ThesisLanguage      string     `json:"thesis_language"`
	DefenceLanguage     string     `json:"defence_language"`
	Comment             string     `json:"comment"`
	AccountingSituation *bool      `json:"accounting_situation"`
}

// Service handles the defence jury use-cases: composition, submission,
// the institutional approval chain and the member signatures
type Service struct {
	juries       jury.Repository
	trajectories trajectory.Repository
	groups       supervision.Repository
	persons      reference.PersonTranslator
	notifier     trajectory.Notifier
	historian    trajectory.Historian
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewService creates a new jury Service
func NewService(
	juries jury.Repository,
	trajectories trajectory.Repository,
	groups supervision.Repository,
	persons reference.PersonTranslator,
	notifier trajectory.Notifier,
	historian trajectory.Historian,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		juries:       juries,
		trajectories: trajectories,
		groups:       groups,
		persons:      persons,
		notifier:     notifier,
		historian:    historian,
		publisher:    publisher,
		logger:       logger,
	}
}

// Get returns the read projection of a trajectory's jury
func (s *Service) Get(ctx context.Context, trajectoryID uuid.UUID) (*jury.DTO, error) {
	return s.juries.GetDTO(ctx, trajectoryID)
}

// ModifyDefence updates the jury-stage thesis fields
func (s *Service) ModifyDefence(ctx context.Context, trajectoryID uuid.UUID, req DefenceRequest) error {
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := traj.ModifyDefence(req.Title, req.Method, req.IndicativeDate,
		req.ThesisLanguage, trajectory.DefenceLanguage(req.DefenceLanguage),
		req.Comment, req.AccountingSituation); err != nil {
		return err
	}
	return s.trajectories.SaveWithLock(ctx, traj)
}

// AddMember appends a member to the jury, creating the jury on first use
func (s *Service) AddMember(ctx context.Context, trajectoryID uuid.UUID, req MemberRequest) (*jury.Member, error) {
	j, err := s.juries.FindByTrajectory(ctx, trajectoryID)
	if errors.Is(err, shared.ErrNotFound) {
		j, err = jury.NewJury(trajectoryID)
	}
	if err != nil {
		return nil, err
	}

	actor, err := s.resolveActor(ctx, trajectoryID, req)
	if err != nil {
		return nil, err
	}

	member, err := j.AddMember(jury.Role(req.Role), actor, req.PromoterID,
		req.Title, req.Institution, req.OtherInstitution, req.NonDoctorReason, req.Gender)
	if err != nil {
		return nil, err
	}
	if err := s.juries.Save(ctx, j); err != nil {
		return nil, err
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a rejoint le jury", actor.FullName()),
		fmt.Sprintf("%s joined the jury", actor.FullName()))
	return member, nil
}

// resolveActor builds the member identity from a promoter reference, the
// person registry, or the inline external fields
func (s *Service) resolveActor(ctx context.Context, trajectoryID uuid.UUID, req MemberRequest) (valueobject.Actor, error) {
	if req.PromoterID != nil {
		group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
		if err != nil {
			return valueobject.Actor{}, err
		}
		promoter := group.Member(*req.PromoterID)
		if promoter == nil {
			return valueobject.Actor{}, shared.ErrNotFound
		}
		return promoter.Actor, nil
	}
	if req.PersonID != nil {
		person, err := s.persons.Get(ctx, *req.PersonID)
		if err != nil {
			return valueobject.Actor{}, err
		}
		return valueobject.NewInternalActor(person.ID, person.FirstName, person.LastName, person.Email), nil
	}
	if req.Email == "" || req.LastName == "" {
		return valueobject.Actor{}, shared.NewDomainError("EXTERNAL_IDENTITY_REQUIRED", "An external member needs at least a last name and an email")
	}
	return valueobject.NewExternalActor(req.FirstName, req.LastName, req.Email,
		req.Institute, req.City, req.Country, req.Language), nil
}

// ModifyMember updates a member's descriptive fields
func (s *Service) ModifyMember(ctx context.Context, trajectoryID, memberID uuid.UUID, req MemberRequest) error {
	j, err := s.juries.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := j.ModifyMember(memberID, req.Title, req.Institution,
		req.OtherInstitution, req.NonDoctorReason, req.Gender); err != nil {
		return err
	}
	return s.juries.Save(ctx, j)
}

// RemoveMember removes a member; refused once the jury was submitted
func (s *Service) RemoveMember(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	j, traj, err := s.load(ctx, trajectoryID)
	if err != nil {
		return err
	}
	member := j.Member(memberID)
	if member == nil {
		return shared.ErrNotFound
	}
	name := member.Actor.FullName()

	if err := j.RemoveMember(memberID, s.submitted(traj)); err != nil {
		return err
	}
	if err := s.juries.Save(ctx, j); err != nil {
		return err
	}
	if err := s.notifier.NotifyMemberRemoved(ctx, trajectoryID, name); err != nil {
		s.logger.Warn("member removal notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a été retiré du jury", name),
		fmt.Sprintf("%s was removed from the jury", name))
	return nil
}

// ChangeRole moves a member to another role; after submission only the
// president/secretary/member triangle can be rebalanced
func (s *Service) ChangeRole(ctx context.Context, trajectoryID, memberID uuid.UUID, role string) error {
	j, traj, err := s.load(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := j.ChangeRole(memberID, jury.Role(role), s.submitted(traj)); err != nil {
		return err
	}
	return s.juries.Save(ctx, j)
}

// Submit hands the composed jury to the approval chain
func (s *Service) Submit(ctx context.Context, trajectoryID uuid.UUID) error {
	j, traj, err := s.load(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if len(j.Members) == 0 {
		return shared.NewDomainError("JURY_EMPTY", "A jury needs at least one member before submission")
	}
	return s.decide(ctx, traj, trajectory.StatusJurySubmitted,
		"Le jury a été soumis",
		"The jury was submitted")
}

// ApproveByCA records the accompanying committee's approval
func (s *Service) ApproveByCA(ctx context.Context, trajectoryID uuid.UUID) error {
	return s.transition(ctx, trajectoryID, trajectory.StatusJuryCAApproved,
		"Le jury a été approuvé par le comité d'accompagnement",
		"The jury was approved by the accompanying committee")
}

// ApproveByCDD records the doctoral commission's approval
func (s *Service) ApproveByCDD(ctx context.Context, trajectoryID uuid.UUID) error {
	return s.transition(ctx, trajectoryID, trajectory.StatusJuryCDDApproved,
		"Le jury a été approuvé par la CDD",
		"The jury was approved by the CDD")
}

// RefuseByCDD records the doctoral commission's refusal
func (s *Service) RefuseByCDD(ctx context.Context, trajectoryID uuid.UUID) error {
	return s.transition(ctx, trajectoryID, trajectory.StatusJuryCDDRefused,
		"Le jury a été refusé par la CDD",
		"The jury was refused by the CDD")
}

// ApproveByADRE records the research administration's approval
func (s *Service) ApproveByADRE(ctx context.Context, trajectoryID uuid.UUID) error {
	return s.transition(ctx, trajectoryID, trajectory.StatusJuryADREApproved,
		"Le jury a été approuvé par l'ADRE",
		"The jury was approved by the ADRE")
}

// RefuseByADRE records the research administration's refusal
func (s *Service) RefuseByADRE(ctx context.Context, trajectoryID uuid.UUID) error {
	return s.transition(ctx, trajectoryID, trajectory.StatusJuryADRERefused,
		"Le jury a été refusé par l'ADRE",
		"The jury was refused by the ADRE")
}

// Resubmit hands a refused jury back to the approval chain
func (s *Service) Resubmit(ctx context.Context, trajectoryID uuid.UUID) error {
	return s.transition(ctx, trajectoryID, trajectory.StatusJurySubmitted,
		"Le jury a été soumis à nouveau",
		"The jury was resubmitted")
}

// RequestSignatures invites every jury member to sign. The first round
// also hands the jury over to the approval chain: a trajectory still at
// CONFIRMATION_SUCCEEDED moves to JURY_SUBMITTED.
func (s *Service) RequestSignatures(ctx context.Context, trajectoryID uuid.UUID) error {
	j, traj, err := s.load(ctx, trajectoryID)
	if err != nil {
		return err
	}
	invited := j.RequestSignatures()
	if err := s.juries.Save(ctx, j); err != nil {
		return err
	}

	if traj.Status == trajectory.StatusConfirmationSucceeded {
		if err := s.decide(ctx, traj, trajectory.StatusJurySubmitted,
			"Le jury a été soumis",
			"The jury was submitted"); err != nil {
			return err
		}
	}

	for _, member := range j.Members {
		if member.Signature.State != valueobject.SignatureInvited {
			continue
		}
		if err := s.notifier.SendSignatureInvitation(ctx, trajectoryID, member.ID); err != nil {
			s.logger.Warn("signature invitation failed",
				zap.String("member_id", member.ID.String()),
				zap.Error(err),
			)
		}
	}

	event := jury.NewSignaturesRequestedEvent(j.ID, trajectoryID, invited)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		"Les signatures du jury ont été demandées",
		"The jury signatures were requested")
	return nil
}

// Approve settles a member signature as APPROVED
func (s *Service) Approve(ctx context.Context, trajectoryID, memberID uuid.UUID, comment, internalComment string) error {
	j, err := s.juries.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := j.Approve(memberID, comment, internalComment); err != nil {
		return err
	}
	return s.settle(ctx, trajectoryID, j, memberID)
}

// ApproveByPDF settles a member signature from an uploaded approval
func (s *Service) ApproveByPDF(ctx context.Context, trajectoryID, memberID uuid.UUID, pdf []string) error {
	j, err := s.juries.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := j.ApproveByPDF(memberID, valueobject.DocumentRefsFromStrings(pdf)); err != nil {
		return err
	}
	return s.settle(ctx, trajectoryID, j, memberID)
}

// Refuse settles a member signature as DECLINED
func (s *Service) Refuse(ctx context.Context, trajectoryID, memberID uuid.UUID, reason, comment, internalComment string) error {
	j, err := s.juries.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := j.Refuse(memberID, reason, comment, internalComment); err != nil {
		return err
	}
	return s.settle(ctx, trajectoryID, j, memberID)
}

func (s *Service) settle(ctx context.Context, trajectoryID uuid.UUID, j *jury.Jury, memberID uuid.UUID) error {
	if err := s.juries.Save(ctx, j); err != nil {
		return err
	}
	member := j.Member(memberID)
	event := jury.NewMemberSignedEvent(j.ID, trajectoryID, memberID, string(member.Signature.State))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a répondu à l'invitation de signature du jury (%s)", member.Actor.FullName(), member.Signature.State),
		fmt.Sprintf("%s answered the jury signing invitation (%s)", member.Actor.FullName(), member.Signature.State))

	// A unanimous round is the accompanying committee's approval
	if j.AllApproved() {
		traj, err := s.trajectories.FindByID(ctx, trajectoryID)
		if err != nil {
			return err
		}
		if traj.Status == trajectory.StatusJurySubmitted {
			return s.decide(ctx, traj, trajectory.StatusJuryCAApproved,
				"Le jury a été approuvé par le comité d'accompagnement",
				"The jury was approved by the accompanying committee")
		}
	}
	return nil
}

func (s *Service) load(ctx context.Context, trajectoryID uuid.UUID) (*jury.Jury, *trajectory.Trajectory, error) {
	j, err := s.juries.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return nil, nil, err
	}
	return j, traj, nil
}

// submitted reports whether the trajectory already reached the jury stage
func (s *Service) submitted(traj *trajectory.Trajectory) bool {
	return traj.Status.Stage().Rank() >= trajectory.StageJury.Rank()
}

func (s *Service) transition(ctx context.Context, trajectoryID uuid.UUID, target trajectory.Status, fr, en string) error {
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	return s.decide(ctx, traj, target, fr, en)
}

func (s *Service) decide(ctx context.Context, traj *trajectory.Trajectory, target trajectory.Status, fr, en string) error {
	if err := traj.TransitionTo(target); err != nil {
		return err
	}
	if err := s.trajectories.SaveWithLock(ctx, traj); err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, traj.GetDomainEvents()...); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}
	traj.ClearDomainEvents()
	s.record(ctx, traj.ID, fr, en)
	return nil
}

func (s *Service) record(ctx context.Context, trajectoryID uuid.UUID, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: trajectoryID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", "jury"},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded", zap.Error(err))
	}
}
