package trajectory

import (
	"context"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
)

// Command objects routed by the dispatcher. Names follow the business
// vocabulary of the doctoral regulations.

// InitialiserParcoursDoctoralCommand creates the trajectory of an
// approved admission
type InitialiserParcoursDoctoralCommand struct {
	AdmissionID uuid.UUID `json:"admission_id"`
}

// CommandName identifies the command
func (InitialiserParcoursDoctoralCommand) CommandName() string {
	return "InitialiserParcoursDoctoralCommand"
}

// ModifierProjetCommand updates the research project
type ModifierProjetCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	ModifyProjectRequest
}

// CommandName identifies the command
func (ModifierProjetCommand) CommandName() string { return "ModifierProjetCommand" }

// ModifierFinancementCommand updates the funding
type ModifierFinancementCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	ModifyFundingRequest
}

// CommandName identifies the command
func (ModifierFinancementCommand) CommandName() string { return "ModifierFinancementCommand" }

// ModifierCotutelleCommand updates the cotutelle
type ModifierCotutelleCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	ModifyCotutelleRequest
}

// CommandName identifies the command
func (ModifierCotutelleCommand) CommandName() string { return "ModifierCotutelleCommand" }

// RecupererParcoursDoctoralQuery reads one trajectory projection
type RecupererParcoursDoctoralQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererParcoursDoctoralQuery) CommandName() string {
	return "RecupererParcoursDoctoralQuery"
}

// RecupererCotutelleQuery reads the cotutelle block of a trajectory
type RecupererCotutelleQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererCotutelleQuery) CommandName() string { return "RecupererCotutelleQuery" }

// GenererArchivePDFCommand queues the PDF archive generation
type GenererArchivePDFCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the command
func (GenererArchivePDFCommand) CommandName() string { return "GenererArchivePDFCommand" }

// Register binds the trajectory commands to their services
func Register(d *dispatcher.Dispatcher, initSvc *InitService, projectSvc *ProjectService, archiveSvc *ArchiveService) {
	d.MustRegister("InitialiserParcoursDoctoralCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(InitialiserParcoursDoctoralCommand)
		return initSvc.Initialise(ctx, c.AdmissionID)
	})
	d.MustRegister("ModifierProjetCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierProjetCommand)
		return c.TrajectoryID, projectSvc.ModifyProject(ctx, c.TrajectoryID, c.ModifyProjectRequest)
	})
	d.MustRegister("ModifierFinancementCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierFinancementCommand)
		return c.TrajectoryID, projectSvc.ModifyFunding(ctx, c.TrajectoryID, c.ModifyFundingRequest)
	})
	d.MustRegister("ModifierCotutelleCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierCotutelleCommand)
		return c.TrajectoryID, projectSvc.ModifyCotutelle(ctx, c.TrajectoryID, c.ModifyCotutelleRequest)
	})
	d.MustRegister("RecupererParcoursDoctoralQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererParcoursDoctoralQuery)
		return projectSvc.Get(ctx, c.TrajectoryID)
	})
	d.MustRegister("RecupererCotutelleQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererCotutelleQuery)
		return projectSvc.GetCotutelle(ctx, c.TrajectoryID)
	})
	d.MustRegister("GenererArchivePDFCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(GenererArchivePDFCommand)
		return archiveSvc.Request(ctx, c.TrajectoryID)
	})
}
