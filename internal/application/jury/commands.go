package jury

import (
	"context"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
)

// ModifierSoutenanceCommand updates the jury-stage thesis fields
type ModifierSoutenanceCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	DefenceRequest
}

// CommandName identifies the command
func (ModifierSoutenanceCommand) CommandName() string { return "ModifierSoutenanceCommand" }

// AjouterMembreJuryCommand appends a jury member
type AjouterMembreJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberRequest
}

// CommandName identifies the command
func (AjouterMembreJuryCommand) CommandName() string { return "AjouterMembreJuryCommand" }

// ModifierMembreJuryCommand updates a member's descriptive fields
type ModifierMembreJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
	MemberRequest
}

// CommandName identifies the command
func (ModifierMembreJuryCommand) CommandName() string { return "ModifierMembreJuryCommand" }

// RetirerMembreJuryCommand removes a jury member
type RetirerMembreJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
}

// CommandName identifies the command
func (RetirerMembreJuryCommand) CommandName() string { return "RetirerMembreJuryCommand" }

// ModifierRoleMembreJuryCommand moves a member to another role
type ModifierRoleMembreJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
	Role         string    `json:"role"`
}

// CommandName identifies the command
func (ModifierRoleMembreJuryCommand) CommandName() string { return "ModifierRoleMembreJuryCommand" }

// SoumettreJuryCommand hands the jury to the approval chain
type SoumettreJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (SoumettreJuryCommand) CommandName() string { return "SoumettreJuryCommand" }

// ApprouverJuryParCACommand records the committee approval
type ApprouverJuryParCACommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (ApprouverJuryParCACommand) CommandName() string { return "ApprouverJuryParCACommand" }

// ApprouverJuryParCDDCommand records the CDD approval
type ApprouverJuryParCDDCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (ApprouverJuryParCDDCommand) CommandName() string { return "ApprouverJuryParCDDCommand" }

// RefuserJuryParCDDCommand records the CDD refusal
type RefuserJuryParCDDCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (RefuserJuryParCDDCommand) CommandName() string { return "RefuserJuryParCDDCommand" }

// ApprouverJuryParADRECommand records the ADRE approval
type ApprouverJuryParADRECommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (ApprouverJuryParADRECommand) CommandName() string { return "ApprouverJuryParADRECommand" }

// RefuserJuryParADRECommand records the ADRE refusal
type RefuserJuryParADRECommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (RefuserJuryParADRECommand) CommandName() string { return "RefuserJuryParADRECommand" }

// ResoumettreJuryCommand hands a refused jury back to the chain
type ResoumettreJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (ResoumettreJuryCommand) CommandName() string { return "ResoumettreJuryCommand" }

// DemanderSignaturesJuryCommand invites every member to sign
type DemanderSignaturesJuryCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (DemanderSignaturesJuryCommand) CommandName() string { return "DemanderSignaturesJuryCommand" }

// ApprouverMembreJuryCommand records a member approval
type ApprouverMembreJuryCommand struct {
	TrajectoryID    uuid.UUID `json:"trajectory_id"`
	MemberID        uuid.UUID `json:"member_id"`
	Comment         string    `json:"comment"`
	InternalComment string    `json:"internal_comment"`
}

// CommandName identifies the command
func (ApprouverMembreJuryCommand) CommandName() string { return "ApprouverMembreJuryCommand" }

// ApprouverMembreJuryParPdfCommand records an uploaded approval
type ApprouverMembreJuryParPdfCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	MemberID     uuid.UUID `json:"member_id"`
	PDF          []string  `json:"pdf"`
}

// CommandName identifies the command
func (ApprouverMembreJuryParPdfCommand) CommandName() string {
	return "ApprouverMembreJuryParPdfCommand"
}

// RefuserMembreJuryCommand records a member refusal
type RefuserMembreJuryCommand struct {
	TrajectoryID    uuid.UUID `json:"trajectory_id"`
	MemberID        uuid.UUID `json:"member_id"`
	Reason          string    `json:"reason"`
	Comment         string    `json:"comment"`
	InternalComment string    `json:"internal_comment"`
}

// CommandName identifies the command
func (RefuserMembreJuryCommand) CommandName() string { return "RefuserMembreJuryCommand" }

// RecupererJuryQuery reads the jury projection
type RecupererJuryQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererJuryQuery) CommandName() string { return "RecupererJuryQuery" }

// Register binds the jury commands to the service
func Register(d *dispatcher.Dispatcher, svc *Service) {
	d.MustRegister("ModifierSoutenanceCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierSoutenanceCommand)
		return c.TrajectoryID, svc.ModifyDefence(ctx, c.TrajectoryID, c.DefenceRequest)
	})
	d.MustRegister("AjouterMembreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(AjouterMembreJuryCommand)
		return svc.AddMember(ctx, c.TrajectoryID, c.MemberRequest)
	})
	d.MustRegister("ModifierMembreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierMembreJuryCommand)
		return c.MemberID, svc.ModifyMember(ctx, c.TrajectoryID, c.MemberID, c.MemberRequest)
	})
	d.MustRegister("RetirerMembreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RetirerMembreJuryCommand)
		return c.MemberID, svc.RemoveMember(ctx, c.TrajectoryID, c.MemberID)
	})
	d.MustRegister("ModifierRoleMembreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierRoleMembreJuryCommand)
		return c.MemberID, svc.ChangeRole(ctx, c.TrajectoryID, c.MemberID, c.Role)
	})
	d.MustRegister("SoumettreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(SoumettreJuryCommand)
		return c.TrajectoryID, svc.Submit(ctx, c.TrajectoryID)
	})
	d.MustRegister("ApprouverJuryParCACommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverJuryParCACommand)
		return c.TrajectoryID, svc.ApproveByCA(ctx, c.TrajectoryID)
	})
	d.MustRegister("ApprouverJuryParCDDCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverJuryParCDDCommand)
		return c.TrajectoryID, svc.ApproveByCDD(ctx, c.TrajectoryID)
	})
	d.MustRegister("RefuserJuryParCDDCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RefuserJuryParCDDCommand)
		return c.TrajectoryID, svc.RefuseByCDD(ctx, c.TrajectoryID)
	})
	d.MustRegister("ApprouverJuryParADRECommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverJuryParADRECommand)
		return c.TrajectoryID, svc.ApproveByADRE(ctx, c.TrajectoryID)
	})
	d.MustRegister("RefuserJuryParADRECommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RefuserJuryParADRECommand)
		return c.TrajectoryID, svc.RefuseByADRE(ctx, c.TrajectoryID)
	})
	d.MustRegister("ResoumettreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ResoumettreJuryCommand)
		return c.TrajectoryID, svc.Resubmit(ctx, c.TrajectoryID)
	})
	d.MustRegister("DemanderSignaturesJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(DemanderSignaturesJuryCommand)
		return c.TrajectoryID, svc.RequestSignatures(ctx, c.TrajectoryID)
	})
	d.MustRegister("ApprouverMembreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverMembreJuryCommand)
		return c.MemberID, svc.Approve(ctx, c.TrajectoryID, c.MemberID, c.Comment, c.InternalComment)
	})
	d.MustRegister("ApprouverMembreJuryParPdfCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverMembreJuryParPdfCommand)
		return c.MemberID, svc.ApproveByPDF(ctx, c.TrajectoryID, c.MemberID, c.PDF)
	})
	d.MustRegister("RefuserMembreJuryCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RefuserMembreJuryCommand)
		return c.MemberID, svc.Refuse(ctx, c.TrajectoryID, c.MemberID, c.Reason, c.Comment, c.InternalComment)
	})
	d.MustRegister("RecupererJuryQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererJuryQuery)
		return svc.Get(ctx, c.TrajectoryID)
	})
}
