package document

import (
	"context"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
)

// DeposerDocumentLibreCommand stores a manager-uploaded document
type DeposerDocumentLibreCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	Label        string    `json:"label"`
	Refs         []string  `json:"refs"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`
}

// CommandName identifies the command
func (DeposerDocumentLibreCommand) CommandName() string { return "DeposerDocumentLibreCommand" }

// ReclamerDocumentLibreCommand asks the candidate for a document
type ReclamerDocumentLibreCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	Label        string    `json:"label"`
	RequestedBy  uuid.UUID `json:"requested_by"`
}

// CommandName identifies the command
func (ReclamerDocumentLibreCommand) CommandName() string { return "ReclamerDocumentLibreCommand" }

// RemplirDocumentLibreCommand records the candidate's answer
type RemplirDocumentLibreCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
	Refs       []string  `json:"refs"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
}

// CommandName identifies the command
func (RemplirDocumentLibreCommand) CommandName() string { return "RemplirDocumentLibreCommand" }

// RemplacerDocumentLibreCommand swaps the stored files
type RemplacerDocumentLibreCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
	Refs       []string  `json:"refs"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
}

// CommandName identifies the command
func (RemplacerDocumentLibreCommand) CommandName() string { return "RemplacerDocumentLibreCommand" }

// SupprimerDocumentCommand removes a non-system document
type SupprimerDocumentCommand struct {
	DocumentID uuid.UUID `json:"document_id"`
}

// CommandName identifies the command
func (SupprimerDocumentCommand) CommandName() string { return "SupprimerDocumentCommand" }

// RecupererDocumentsQuery reads a trajectory's document bag
type RecupererDocumentsQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererDocumentsQuery) CommandName() string { return "RecupererDocumentsQuery" }

// Register binds the document commands to the service
func Register(d *dispatcher.Dispatcher, svc *Service) {
	d.MustRegister("DeposerDocumentLibreCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(DeposerDocumentLibreCommand)
		return svc.Upload(ctx, c.TrajectoryID, c.Label, c.Refs, c.UploadedBy)
	})
	d.MustRegister("ReclamerDocumentLibreCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ReclamerDocumentLibreCommand)
		return svc.Request(ctx, c.TrajectoryID, c.Label, c.RequestedBy)
	})
	d.MustRegister("RemplirDocumentLibreCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RemplirDocumentLibreCommand)
		return c.DocumentID, svc.Fill(ctx, c.DocumentID, c.Refs, c.UploadedBy)
	})
	d.MustRegister("RemplacerDocumentLibreCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RemplacerDocumentLibreCommand)
		return c.DocumentID, svc.Replace(ctx, c.DocumentID, c.Refs, c.UploadedBy)
	})
	d.MustRegister("SupprimerDocumentCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(SupprimerDocumentCommand)
		return c.DocumentID, svc.Delete(ctx, c.DocumentID)
	})
	d.MustRegister("RecupererDocumentsQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererDocumentsQuery)
		return svc.List(ctx, c.TrajectoryID)
	})
}
