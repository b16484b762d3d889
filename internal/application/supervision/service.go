package supervision

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/trajectory"
)

// IdentifyMemberRequest designates the person joining the supervision
// group: an internal person ID or an inline external identity
type IdentifyMemberRequest struct {
	PersonID  *uuid.UUID `json:"person_id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Institute string     `json:"institute"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	Language  string     `json:"language"`
	IsDoctor  bool       `json:"is_doctor"`
}

// Service handles the supervision group use-cases: membership, reference
// promoter designation and the signature round
type Service struct {
	groups       supervision.Repository
	trajectories trajectory.Repository
	persons      reference.PersonTranslator
	roles        reference.RoleStore
	notifier     trajectory.Notifier
	historian    trajectory.Historian
	publisher    shared.EventPublisher
	logger       *zap.Logger
}

// NewService creates a new supervision Service
func NewService(
	groups supervision.Repository,
	trajectories trajectory.Repository,
	persons reference.PersonTranslator,
	roles reference.RoleStore,
	notifier trajectory.Notifier,
	historian trajectory.Historian,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		groups:       groups,
		trajectories: trajectories,
		persons:      persons,
		roles:        roles,
		notifier:     notifier,
		historian:    historian,
		publisher:    publisher,
		logger:       logger,
	}
}

// Get returns the read projection of a trajectory's supervision group
func (s *Service) Get(ctx context.Context, trajectoryID uuid.UUID) (*supervision.DTO, error) {
	return s.groups.GetDTO(ctx, trajectoryID)
}

// IdentifyPromoter adds a promoter to the group
func (s *Service) IdentifyPromoter(ctx context.Context, trajectoryID uuid.UUID, req IdentifyMemberRequest) (*supervision.Member, error) {
	return s.identify(ctx, trajectoryID, supervision.MemberPromoter, req)
}

// IdentifyCAMember adds an accompanying-committee member to the group
func (s *Service) IdentifyCAMember(ctx context.Context, trajectoryID uuid.UUID, req IdentifyMemberRequest) (*supervision.Member, error) {
	return s.identify(ctx, trajectoryID, supervision.MemberCA, req)
}

func (s *Service) identify(ctx context.Context, trajectoryID uuid.UUID, memberType supervision.MemberType, req IdentifyMemberRequest) (*supervision.Member, error) {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}

	actor, isDoctor, err := s.resolveActor(ctx, req)
	if err != nil {
		return nil, err
	}

	var member *supervision.Member
	if memberType == supervision.MemberPromoter {
		member, err = group.IdentifyPromoter(actor, isDoctor)
	} else {
		member, err = group.IdentifyCAMember(actor, isDoctor)
	}
	if err != nil {
		return nil, err
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return nil, err
	}

	if req.PersonID != nil {
		role := reference.RolePromoter
		if memberType == supervision.MemberCA {
			role = reference.RoleCommitteeMember
		}
		if err := s.roles.Ensure(ctx, *req.PersonID, role); err != nil {
			s.logger.Warn("member role not ensured", zap.Error(err))
		}
	}

	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a rejoint le groupe de supervision", actor.FullName()),
		fmt.Sprintf("%s joined the supervision group", actor.FullName()))
	return member, nil
}

// resolveActor builds the actor from the request: internal actors are
// completed from the person registry, external ones are carried inline
func (s *Service) resolveActor(ctx context.Context, req IdentifyMemberRequest) (valueobject.Actor, bool, error) {
	if req.PersonID != nil {
		person, err := s.persons.Get(ctx, *req.PersonID)
		if err != nil {
			return valueobject.Actor{}, false, err
		}
		return valueobject.NewInternalActor(person.ID, person.FirstName, person.LastName, person.Email), person.IsDoctor, nil
	}
	if req.Email == "" || req.LastName == "" {
		return valueobject.Actor{}, false, shared.NewDomainError("EXTERNAL_IDENTITY_REQUIRED", "An external member needs at least a last name and an email")
	}
	actor := valueobject.NewExternalActor(req.FirstName, req.LastName, req.Email, req.Institute, req.City, req.Country, req.Language)
	return actor, req.IsDoctor, nil
}

// RemovePromoter removes a promoter; once the trajectory moved past
// admission the group must keep at least one promoter
func (s *Service) RemovePromoter(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	return s.remove(ctx, trajectoryID, memberID, supervision.MemberPromoter)
}

// RemoveCAMember removes an accompanying-committee member
func (s *Service) RemoveCAMember(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	return s.remove(ctx, trajectoryID, memberID, supervision.MemberCA)
}

func (s *Service) remove(ctx context.Context, trajectoryID, memberID uuid.UUID, memberType supervision.MemberType) error {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	member := group.Member(memberID)
	if member == nil {
		return shared.ErrNotFound
	}
	name := member.Actor.FullName()

	pastAdmission := traj.Status != trajectory.StatusAdmitted
	if memberType == supervision.MemberPromoter {
		err = group.RemovePromoter(memberID, pastAdmission)
	} else {
		err = group.RemoveCAMember(memberID, pastAdmission)
	}
	if err != nil {
		return err
	}

	if err := s.groups.Save(ctx, group); err != nil {
		return err
	}
	if err := s.notifier.NotifyMemberRemoved(ctx, trajectoryID, name); err != nil {
		s.logger.Warn("member removal notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a été retiré du groupe de supervision", name),
		fmt.Sprintf("%s was removed from the supervision group", name))
	return nil
}

// DesignateReferencePromoter marks one promoter as the reference promoter
func (s *Service) DesignateReferencePromoter(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := group.DesignateReferencePromoter(memberID); err != nil {
		return err
	}
	return s.groups.Save(ctx, group)
}

// RequestSignatures verifies the project and the signatories, freezes the
// group and invites every member to sign
func (s *Service) RequestSignatures(ctx context.Context, trajectoryID uuid.UUID) error {
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}

	if err := group.VerifySignatories(traj.Cotutelle.Intended()); err != nil {
		return err
	}
	if err := group.VerifySignaturesNotSent(); err != nil {
		return err
	}
	if err := traj.LockForSigning(); err != nil {
		return err
	}

	group.InviteToSign()

	if err := s.trajectories.SaveWithLock(ctx, traj); err != nil {
		return err
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return err
	}

	for _, member := range group.Members {
		if err := s.notifier.SendSignatureInvitation(ctx, trajectoryID, member.ID); err != nil {
			s.logger.Warn("signature invitation failed",
				zap.String("member_id", member.ID.String()),
				zap.Error(err),
			)
		}
	}

	event := supervision.NewSignaturesRequestedEvent(group, len(group.Members))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}

	s.record(ctx, trajectoryID,
		"Les signatures du groupe de supervision ont été demandées",
		"The supervision group signatures were requested")
	return nil
}

// ResendInvitation re-sends the signing invitation to an invited member
func (s *Service) ResendInvitation(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	member := group.Member(memberID)
	if member == nil {
		return shared.ErrNotFound
	}
	if member.Signature.State != valueobject.SignatureInvited {
		return shared.NewDomainError("NOT_INVITED", "Only an invited member can be reminded")
	}
	return s.notifier.ResendSignatureInvitation(ctx, trajectoryID, memberID)
}

// Approve settles a member signature as APPROVED; when every member has
// approved, the promoters are notified that the round is complete
func (s *Service) Approve(ctx context.Context, trajectoryID, memberID uuid.UUID, comment, internalComment string) error {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := group.Approve(memberID, comment, internalComment); err != nil {
		return err
	}
	return s.settle(ctx, trajectoryID, group, memberID)
}

// ApproveByPDF settles a member signature from an uploaded approval
func (s *Service) ApproveByPDF(ctx context.Context, trajectoryID, memberID uuid.UUID, pdf []string) error {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	if err := group.ApproveByPDF(memberID, valueobject.DocumentRefsFromStrings(pdf)); err != nil {
		return err
	}
	return s.settle(ctx, trajectoryID, group, memberID)
}

// Decline refuses a member signature. The refusal reopens the round:
// every signature resets, the group unlocks and the trajectory accepts
// membership changes again before a new request.
func (s *Service) Decline(ctx context.Context, trajectoryID, memberID uuid.UUID, reason, comment, internalComment string) error {
	group, err := s.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	member := group.Member(memberID)
	if member == nil {
		return shared.ErrNotFound
	}
	name := member.Actor.FullName()

	if err := group.Decline(memberID, reason, comment, internalComment); err != nil {
		return err
	}
	traj, err := s.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	traj.UnlockSigning()

	if err := s.groups.Save(ctx, group); err != nil {
		return err
	}
	if err := s.trajectories.Save(ctx, traj); err != nil {
		return err
	}

	event := supervision.NewMemberSignedEvent(group, memberID, string(valueobject.SignatureDeclined))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}

	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a refusé de signer (%s)", name, reason),
		fmt.Sprintf("%s declined to sign (%s)", name, reason))
	return nil
}

func (s *Service) settle(ctx context.Context, trajectoryID uuid.UUID, group *supervision.Group, memberID uuid.UUID) error {
	if err := s.groups.Save(ctx, group); err != nil {
		return err
	}

	member := group.Member(memberID)
	event := supervision.NewMemberSignedEvent(group, memberID, string(member.Signature.State))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("event publication failed", zap.Error(err))
	}

	s.record(ctx, trajectoryID,
		fmt.Sprintf("%s a répondu à l'invitation de signature (%s)", member.Actor.FullName(), member.Signature.State),
		fmt.Sprintf("%s answered the signing invitation (%s)", member.Actor.FullName(), member.Signature.State))

	if group.AllApproved() {
		if err := s.notifier.NotifyPromoterCompletion(ctx, trajectoryID); err != nil {
			s.logger.Warn("completion notification failed", zap.Error(err))
		}
	}
	return nil
}

func (s *Service) record(ctx context.Context, trajectoryID uuid.UUID, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: trajectoryID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", "supervision"},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded", zap.Error(err))
	}
}
