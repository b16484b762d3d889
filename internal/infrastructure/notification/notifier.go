package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/jury"
	"github.com/osis/backend/internal/domain/reference"
	"github.com/osis/backend/internal/domain/supervision"
	"github.com/osis/backend/internal/domain/trajectory"
)

// WebStore records in-app notifications. Implemented by the persistence
// web notification store.
type WebStore interface {
	Push(ctx context.Context, personID uuid.UUID, subject, body string) error
}

// Notifier implements trajectory.Notifier. Every message becomes a web
// notification row for internal persons plus an email; a mail delivery
// failure is logged and never fails the calling command.
type Notifier struct {
	web          WebStore
	mailer       Mailer
	trajectories trajectory.Repository
	groups       supervision.Repository
	juries       jury.Repository
	persons      reference.PersonTranslator
	logger       *zap.Logger
}

// NewNotifier creates a new Notifier
func NewNotifier(
	web WebStore,
	mailer Mailer,
	trajectories trajectory.Repository,
	groups supervision.Repository,
	juries jury.Repository,
	persons reference.PersonTranslator,
	logger *zap.Logger,
) *Notifier {
	return &Notifier{
		web:          web,
		mailer:       mailer,
		trajectories: trajectories,
		groups:       groups,
		juries:       juries,
		persons:      persons,
		logger:       logger,
	}
}

// Ensure Notifier implements the outbound port
var _ trajectory.Notifier = (*Notifier)(nil)

// SendToStudent delivers a manager-authored message to the candidate,
// with copies to the selected participant lists
func (n *Notifier) SendToStudent(ctx context.Context, trajectoryID uuid.UUID, subject, message string, rcpt trajectory.Recipients) error {
	student, err := n.student(ctx, trajectoryID)
	if err != nil {
		return err
	}

	var cc []string
	if rcpt.CCPromoters || rcpt.CCCAMembers {
		group, err := n.groups.GetDTO(ctx, trajectoryID)
		if err != nil {
			return err
		}
		for _, m := range group.Members {
			if m.Email == "" {
				continue
			}
			if (rcpt.CCPromoters && m.Type == string(supervision.MemberPromoter)) ||
				(rcpt.CCCAMembers && m.Type == string(supervision.MemberCA)) {
				cc = append(cc, m.Email)
			}
		}
	}
	if rcpt.CCJury {
		// A jury may not exist yet; that is not an error for a copy list
		if j, err := n.juries.GetDTO(ctx, trajectoryID); err == nil {
			for _, m := range j.Members {
				if m.Email != "" {
					cc = append(cc, m.Email)
				}
			}
		}
	}

	return n.deliver(ctx, &student.ID, student.Email, cc, subject, message)
}

// SendSignatureInvitation invites a supervision member to sign
func (n *Notifier) SendSignatureInvitation(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	return n.signatureMail(ctx, trajectoryID, memberID,
		"Invitation à signer",
		"Vous êtes invité(e) à signer la proposition de supervision du parcours doctoral %s.")
}

// ResendSignatureInvitation sends a reminder to a member who has not
// signed yet
func (n *Notifier) ResendSignatureInvitation(ctx context.Context, trajectoryID, memberID uuid.UUID) error {
	return n.signatureMail(ctx, trajectoryID, memberID,
		"Rappel : invitation à signer",
		"Nous vous rappelons que votre signature est attendue pour le parcours doctoral %s.")
}

func (n *Notifier) signatureMail(ctx context.Context, trajectoryID, memberID uuid.UUID, subject, bodyFmt string) error {
	traj, err := n.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return err
	}
	group, err := n.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}
	member := group.Member(memberID)
	if member == nil {
		return fmt.Errorf("member %s not found in supervision group", memberID)
	}

	body := fmt.Sprintf(bodyFmt, traj.FormattedReference())
	return n.deliver(ctx, member.Actor.PersonID, member.Actor.Email, nil, subject, body)
}

// NotifyMemberRemoved informs the candidate that a member left the group
func (n *Notifier) NotifyMemberRemoved(ctx context.Context, trajectoryID uuid.UUID, memberName string) error {
	student, err := n.student(ctx, trajectoryID)
	if err != nil {
		return err
	}
	return n.deliver(ctx, &student.ID, student.Email, nil,
		"Membre retiré du groupe de supervision",
		fmt.Sprintf("%s a été retiré(e) de votre groupe de supervision.", memberName))
}

// NotifySubmission informs the promoters that the candidate submitted
// the confirmation paper
func (n *Notifier) NotifySubmission(ctx context.Context, trajectoryID uuid.UUID) error {
	group, err := n.groups.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return err
	}

	subject := "Épreuve de confirmation déposée"
	body := "Le doctorant a déposé les documents de son épreuve de confirmation."
	for _, m := range group.Promoters() {
		if err := n.deliver(ctx, m.Actor.PersonID, m.Actor.Email, nil, subject, body); err != nil {
			return err
		}
	}
	return nil
}

// NotifyPromoterCompletion informs the candidate that the reference
// promoter completed the confirmation file
func (n *Notifier) NotifyPromoterCompletion(ctx context.Context, trajectoryID uuid.UUID) error {
	student, err := n.student(ctx, trajectoryID)
	if err != nil {
		return err
	}
	return n.deliver(ctx, &student.ID, student.Email, nil,
		"Dossier de confirmation complété",
		"Votre promoteur de référence a complété le dossier de votre épreuve de confirmation.")
}

// NotifySuccess delivers the confirmation success message
func (n *Notifier) NotifySuccess(ctx context.Context, trajectoryID uuid.UUID, subject, message string) error {
	return n.toStudent(ctx, trajectoryID, subject, message)
}

// NotifyFailure delivers the confirmation failure message
func (n *Notifier) NotifyFailure(ctx context.Context, trajectoryID uuid.UUID, subject, message string) error {
	return n.toStudent(ctx, trajectoryID, subject, message)
}

// NotifyRetake delivers the retake decision message
func (n *Notifier) NotifyRetake(ctx context.Context, trajectoryID uuid.UUID, subject, message string) error {
	return n.toStudent(ctx, trajectoryID, subject, message)
}

// NotifyNewDeadline informs the candidate of the new confirmation deadline
func (n *Notifier) NotifyNewDeadline(ctx context.Context, trajectoryID uuid.UUID) error {
	return n.toStudent(ctx, trajectoryID,
		"Nouvelle échéance de l'épreuve de confirmation",
		"L'échéance de votre épreuve de confirmation a été modifiée.")
}

// NotifyActivitiesApproved informs the candidate of accepted activities
func (n *Notifier) NotifyActivitiesApproved(ctx context.Context, trajectoryID uuid.UUID, count int) error {
	return n.toStudent(ctx, trajectoryID,
		"Activités de formation acceptées",
		fmt.Sprintf("%d activité(s) de votre formation doctorale ont été acceptées.", count))
}

// NotifyActivityRefused informs the candidate of a refused activity
func (n *Notifier) NotifyActivityRefused(ctx context.Context, trajectoryID uuid.UUID, reason string) error {
	return n.toStudent(ctx, trajectoryID,
		"Activité de formation refusée",
		fmt.Sprintf("Une activité de votre formation doctorale a été refusée. Motif : %s", reason))
}

func (n *Notifier) toStudent(ctx context.Context, trajectoryID uuid.UUID, subject, body string) error {
	student, err := n.student(ctx, trajectoryID)
	if err != nil {
		return err
	}
	return n.deliver(ctx, &student.ID, student.Email, nil, subject, body)
}

func (n *Notifier) student(ctx context.Context, trajectoryID uuid.UUID) (*reference.PersonDTO, error) {
	traj, err := n.trajectories.FindByID(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}
	return n.persons.Get(ctx, traj.StudentID)
}

// deliver writes the web notification (internal persons only) and sends
// the email. The web row is part of the command's outcome and its failure
// is returned; mail delivery is best effort.
func (n *Notifier) deliver(ctx context.Context, personID *uuid.UUID, email string, cc []string, subject, body string) error {
	if personID != nil && *personID != uuid.Nil {
		if err := n.web.Push(ctx, *personID, subject, body); err != nil {
			return err
		}
	}

	if email == "" {
		n.logger.Warn("notification has no email recipient", zap.String("subject", subject))
		return nil
	}
	if err := n.mailer.Send(ctx, []string{email}, cc, subject, body); err != nil {
		n.logger.Warn("notification mail not delivered",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
	return nil
}
