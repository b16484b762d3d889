package supervision

import (
	"context"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
)

// IdentifierPromoteurCommand adds a promoter to the supervision group
type IdentifierPromoteurCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	IdentifyMemberRequest
}

// CommandName identifies the command
func (IdentifierPromoteurCommand) CommandName() string { return "IdentifierPromoteurCommand" }

// IdentifierMembreCACommand adds an accompanying-committee member
type IdentifierMembreCACommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	IdentifyMemberRequest
}

// CommandName identifies the command
func (IdentifierMembreCACommand) CommandName() string { return "IdentifierMembreCACommand" }

// RetirerPromoteurCommand removes a promoter
type RetirerPromoteurCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
}

// CommandName identifies the command
func (RetirerPromoteurCommand) CommandName() string { return "RetirerPromoteurCommand" }

// RetirerMembreCACommand removes an accompanying-committee member
type RetirerMembreCACommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
}

// CommandName identifies the command
func (RetirerMembreCACommand) CommandName() string { return "RetirerMembreCACommand" }

// DesignerPromoteurReferenceCommand designates the reference promoter
type DesignerPromoteurReferenceCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
}

// CommandName identifies the command
func (DesignerPromoteurReferenceCommand) CommandName() string {
	return "DesignerPromoteurReferenceCommand"
}

// DemanderSignaturesCommand starts the signature round
type DemanderSignaturesCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (DemanderSignaturesCommand) CommandName() string { return "DemanderSignaturesCommand" }

// RenvoyerInvitationSignatureCommand reminds an invited member
type RenvoyerInvitationSignatureCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
}

// CommandName identifies the command
func (RenvoyerInvitationSignatureCommand) CommandName() string {
	return "RenvoyerInvitationSignatureCommand"
}

// ApprouverMembreCommand records a member approval
type ApprouverMembreCommand struct {
	TrajectoryID    uuid.UUID `json:"trajectory_id"`
	MemberID        uuid.UUID `json:"member_id"`
	Comment         string    `json:"comment"`
	InternalComment string    `json:"internal_comment"`
}

// CommandName identifies the command
func (ApprouverMembreCommand) CommandName() string { return "ApprouverMembreCommand" }

// RefuserMembreCommand records a member refusal
type RefuserMembreCommand struct {
	TrajectoryID    uuid.UUID `json:"trajectory_id"`
	MemberID        uuid.UUID `json:"member_id"`
	Reason          string    `json:"reason"`
	Comment         string    `json:"comment"`
	InternalComment string    `json:"internal_comment"`
}

// CommandName identifies the command
func (RefuserMembreCommand) CommandName() string { return "RefuserMembreCommand" }

// ApprouverMembreParPdfCommand records an uploaded approval document
type ApprouverMembreParPdfCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
	PDF          []string  `json:"pdf"`
}

// CommandName identifies the command
func (ApprouverMembreParPdfCommand) CommandName() string { return "ApprouverMembreParPdfCommand" }

// RecupererGroupeSupervisionQuery reads the supervision group projection
type RecupererGroupeSupervisionQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererGroupeSupervisionQuery) CommandName() string {
	return "RecupererGroupeSupervisionQuery"
}

// Register binds the supervision commands to the service
func Register(d *dispatcher.Dispatcher, svc *Service) {
	d.MustRegister("IdentifierPromoteurCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(IdentifierPromoteurCommand)
		return svc.IdentifyPromoter(ctx, c.TrajectoryID, c.IdentifyMemberRequest)
	})
	d.MustRegister("IdentifierMembreCACommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(IdentifierMembreCACommand)
		return svc.IdentifyCAMember(ctx, c.TrajectoryID, c.IdentifyMemberRequest)
	})
	d.MustRegister("RetirerPromoteurCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RetirerPromoteurCommand)
		return c.TrajectoryID, svc.RemovePromoter(ctx, c.TrajectoryID, c.MemberID)
	})
	d.MustRegister("RetirerMembreCACommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RetirerMembreCACommand)
		return c.TrajectoryID, svc.RemoveCAMember(ctx, c.TrajectoryID, c.MemberID)
	})
	d.MustRegister("DesignerPromoteurReferenceCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(DesignerPromoteurReferenceCommand)
		return c.TrajectoryID, svc.DesignateReferencePromoter(ctx, c.TrajectoryID, c.MemberID)
	})
	d.MustRegister("DemanderSignaturesCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(DemanderSignaturesCommand)
		return c.TrajectoryID, svc.RequestSignatures(ctx, c.TrajectoryID)
	})
	d.MustRegister("RenvoyerInvitationSignatureCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RenvoyerInvitationSignatureCommand)
		return c.TrajectoryID, svc.ResendInvitation(ctx, c.TrajectoryID, c.MemberID)
	})
	d.MustRegister("ApprouverMembreCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverMembreCommand)
		return c.TrajectoryID, svc.Approve(ctx, c.TrajectoryID, c.MemberID, c.Comment, c.InternalComment)
	})
	d.MustRegister("RefuserMembreCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RefuserMembreCommand)
		return c.TrajectoryID, svc.Decline(ctx, c.TrajectoryID, c.MemberID, c.Reason, c.Comment, c.InternalComment)
	})
	d.MustRegister("ApprouverMembreParPdfCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverMembreParPdfCommand)
		return c.TrajectoryID, svc.ApproveByPDF(ctx, c.TrajectoryID, c.MemberID, c.PDF)
	})
	d.MustRegister("RecupererGroupeSupervisionQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererGroupeSupervisionQuery)
		return svc.Get(ctx, c.TrajectoryID)
	})
}
