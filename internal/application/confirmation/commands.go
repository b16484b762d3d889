package confirmation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
)

// SoumettreEpreuveConfirmationCommand submits the candidate's exam
type SoumettreEpreuveConfirmationCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	SubmitRequest
}

// CommandName identifies the command
func (SoumettreEpreuveConfirmationCommand) CommandName() string {
	return "SoumettreEpreuveConfirmationCommand"
}

// CompleterEpreuveConfirmationParPromoteurCommand attaches the panel documents
type CompleterEpreuveConfirmationParPromoteurCommand struct {
	TrajectoryID          uuid.UUID `json:"trajectory_id"`
	SupervisorPanelReport []string  `json:"supervisor_panel_report"`
	MandateRenewalOpinion []string  `json:"mandate_renewal_opinion"`
}

// CommandName identifies the command
func (CompleterEpreuveConfirmationParPromoteurCommand) CommandName() string {
	return "CompleterEpreuveConfirmationParPromoteurCommand"
}

// DemanderProlongationCommand requests a deadline extension
type DemanderProlongationCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	ExtensionRequest
}

// CommandName identifies the command
func (DemanderProlongationCommand) CommandName() string { return "DemanderProlongationCommand" }

// ModifierEpreuveConfirmationParCDDCommand is the secretariat update
type ModifierEpreuveConfirmationParCDDCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	CDDUpdateRequest
}

// CommandName identifies the command
func (ModifierEpreuveConfirmationParCDDCommand) CommandName() string {
	return "ModifierEpreuveConfirmationParCDDCommand"
}

// ConfirmerReussiteCommand settles the exam as passed
type ConfirmerReussiteCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (ConfirmerReussiteCommand) CommandName() string { return "ConfirmerReussiteCommand" }

// ConfirmerEchecCommand settles the exam as failed. Subject and Message
// are the manager-authored notification sent to the candidate.
type ConfirmerEchecCommand struct {
	TrajectoryID         uuid.UUID `json:"trajectory_id"`
	Subject              string    `json:"subject"`
	Message              string    `json:"message"`
	CertificateOfFailure []string  `json:"certificate_of_failure"`
}

// CommandName identifies the command
func (ConfirmerEchecCommand) CommandName() string { return "ConfirmerEchecCommand" }

// ConfirmerRepassageCommand settles the exam as to be retaken. Subject
// and Message are the manager-authored notification sent to the candidate.
type ConfirmerRepassageCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	Subject      string    `json:"subject"`
	Message      string    `json:"message"`
	NewDeadline  time.Time `json:"new_deadline"`
}

// CommandName identifies the command
func (ConfirmerRepassageCommand) CommandName() string { return "ConfirmerRepassageCommand" }

// RecupererEpreuvesConfirmationQuery reads a trajectory's papers
type RecupererEpreuvesConfirmationQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererEpreuvesConfirmationQuery) CommandName() string {
	return "RecupererEpreuvesConfirmationQuery"
}

// Register binds the confirmation commands to the service
func Register(d *dispatcher.Dispatcher, svc *Service) {
	d.MustRegister("SoumettreEpreuveConfirmationCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(SoumettreEpreuveConfirmationCommand)
		return c.TrajectoryID, svc.Submit(ctx, c.TrajectoryID, c.SubmitRequest)
	})
	d.MustRegister("CompleterEpreuveConfirmationParPromoteurCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(CompleterEpreuveConfirmationParPromoteurCommand)
		return c.TrajectoryID, svc.CompleteByPromoter(ctx, c.TrajectoryID, c.SupervisorPanelReport, c.MandateRenewalOpinion)
	})
	d.MustRegister("DemanderProlongationCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(DemanderProlongationCommand)
		return c.TrajectoryID, svc.RequestExtension(ctx, c.TrajectoryID, c.ExtensionRequest)
	})
	d.MustRegister("ModifierEpreuveConfirmationParCDDCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierEpreuveConfirmationParCDDCommand)
		return c.TrajectoryID, svc.UpdateByCDD(ctx, c.TrajectoryID, c.CDDUpdateRequest)
	})
	d.MustRegister("ConfirmerReussiteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ConfirmerReussiteCommand)
		return c.TrajectoryID, svc.ConfirmSuccess(ctx, c.TrajectoryID)
	})
	d.MustRegister("ConfirmerEchecCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ConfirmerEchecCommand)
		return c.TrajectoryID, svc.ConfirmFailure(ctx, c.TrajectoryID, c.Subject, c.Message, c.CertificateOfFailure)
	})
	d.MustRegister("ConfirmerRepassageCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ConfirmerRepassageCommand)
		return c.TrajectoryID, svc.ConfirmRetake(ctx, c.TrajectoryID, c.Subject, c.Message, c.NewDeadline)
	})
	d.MustRegister("RecupererEpreuvesConfirmationQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererEpreuvesConfirmationQuery)
		return svc.List(ctx, c.TrajectoryID)
	})
}
