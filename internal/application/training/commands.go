package training

import (
	"context"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
)

// CreerActiviteCommand creates a training activity
type CreerActiviteCommand struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
	CreateActivityRequest
}

// CommandName identifies the command
func (CreerActiviteCommand) CommandName() string { return "CreerActiviteCommand" }

// ModifierActiviteCommand edits an unsubmitted activity
type ModifierActiviteCommand struct {
	ActivityID uuid.UUID `json:"activity_id"`
	ActivityRequest
}

// CommandName identifies the command
func (ModifierActiviteCommand) CommandName() string { return "ModifierActiviteCommand" }

// SupprimerActiviteCommand deletes an unsubmitted activity
type SupprimerActiviteCommand struct {
	ActivityID uuid.UUID `json:"activity_id"`
}

// CommandName identifies the command
func (SupprimerActiviteCommand) CommandName() string { return "SupprimerActiviteCommand" }

// SoumettreActivitesCommand submits a batch of activities
type SoumettreActivitesCommand struct {
	TrajectoryID uuid.UUID   `json:"trajectory_id"`
	ActivityIDs  []uuid.UUID `json:"activity_ids"`
}

// CommandName identifies the command
func (SoumettreActivitesCommand) CommandName() string { return "SoumettreActivitesCommand" }

// ApprouverActivitesCommand accepts a batch of submitted activities
type ApprouverActivitesCommand struct {
	TrajectoryID uuid.UUID   `json:"trajectory_id"`
	ActivityIDs  []uuid.UUID `json:"activity_ids"`
}

// CommandName identifies the command
func (ApprouverActivitesCommand) CommandName() string { return "ApprouverActivitesCommand" }

// RefuserActiviteCommand settles one submitted activity
type RefuserActiviteCommand struct {
	TrajectoryID     uuid.UUID `json:"trajectory_id"`
	ActivityID       uuid.UUID `json:"activity_id"`
	Reason           string    `json:"reason"`
	WithModification bool      `json:"with_modification"`
}

// CommandName identifies the command
func (RefuserActiviteCommand) CommandName() string { return "RefuserActiviteCommand" }

// RevenirSurStatutActiviteCommand is the reviewer undo
type RevenirSurStatutActiviteCommand struct {
	ActivityID uuid.UUID `json:"activity_id"`
}

// CommandName identifies the command
func (RevenirSurStatutActiviteCommand) CommandName() string {
	return "RevenirSurStatutActiviteCommand"
}

// DonnerAvisSurActiviteCommand records the reference promoter's assent
type DonnerAvisSurActiviteCommand struct {
	ActivityID uuid.UUID `json:"activity_id"`
	Assent     bool      `json:"assent"`
	Comment    string    `json:"comment"`
}

// CommandName identifies the command
func (DonnerAvisSurActiviteCommand) CommandName() string { return "DonnerAvisSurActiviteCommand" }

// InscrireEvaluationCommand enrols a course to an assessment session
type InscrireEvaluationCommand struct {
	ActivityID uuid.UUID `json:"activity_id"`
	Session    string    `json:"session"`
	Year       int       `json:"year"`
	Late       bool      `json:"late"`
}

// CommandName identifies the command
func (InscrireEvaluationCommand) CommandName() string { return "InscrireEvaluationCommand" }

// CorrigerNoteEvaluationCommand edits a corrected session mark
type CorrigerNoteEvaluationCommand struct {
	ActivityID  uuid.UUID `json:"activity_id"`
	EnrolmentID uuid.UUID `json:"enrolment_id"`
	Mark        string    `json:"mark"`
}

// CommandName identifies the command
func (CorrigerNoteEvaluationCommand) CommandName() string { return "CorrigerNoteEvaluationCommand" }

// RecupererActivitesQuery reads a trajectory's activities
type RecupererActivitesQuery struct {
	TrajectoryID uuid.UUID `json:"trajectory_id"`
}

// CommandName identifies the query
func (RecupererActivitesQuery) CommandName() string { return "RecupererActivitesQuery" }

// Register binds the training commands to the service
func Register(d *dispatcher.Dispatcher, svc *Service) {
	d.MustRegister("CreerActiviteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(CreerActiviteCommand)
		return svc.Create(ctx, c.TrajectoryID, c.CreateActivityRequest)
	})
	d.MustRegister("ModifierActiviteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ModifierActiviteCommand)
		return c.ActivityID, svc.Update(ctx, c.ActivityID, c.ActivityRequest)
	})
	d.MustRegister("SupprimerActiviteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(SupprimerActiviteCommand)
		return c.ActivityID, svc.Delete(ctx, c.ActivityID)
	})
	d.MustRegister("SoumettreActivitesCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(SoumettreActivitesCommand)
		return svc.SubmitBatch(ctx, c.TrajectoryID, c.ActivityIDs)
	})
	d.MustRegister("ApprouverActivitesCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(ApprouverActivitesCommand)
		return c.TrajectoryID, svc.Approve(ctx, c.TrajectoryID, c.ActivityIDs)
	})
	d.MustRegister("RefuserActiviteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RefuserActiviteCommand)
		return c.ActivityID, svc.Refuse(ctx, c.TrajectoryID, c.ActivityID, c.Reason, c.WithModification)
	})
	d.MustRegister("RevenirSurStatutActiviteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RevenirSurStatutActiviteCommand)
		return c.ActivityID, svc.Restore(ctx, c.ActivityID)
	})
	d.MustRegister("DonnerAvisSurActiviteCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(DonnerAvisSurActiviteCommand)
		return c.ActivityID, svc.GiveOpinion(ctx, c.ActivityID, c.Assent, c.Comment)
	})
	d.MustRegister("InscrireEvaluationCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(InscrireEvaluationCommand)
		return svc.Enrol(ctx, c.ActivityID, c.Session, c.Year, c.Late)
	})
	d.MustRegister("CorrigerNoteEvaluationCommand", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(CorrigerNoteEvaluationCommand)
		return c.ActivityID, svc.CorrectMark(ctx, c.ActivityID, c.EnrolmentID, c.Mark)
	})
	d.MustRegister("RecupererActivitesQuery", func(ctx context.Context, cmd dispatcher.Command) (interface{}, error) {
		c := cmd.(RecupererActivitesQuery)
		return svc.List(ctx, c.TrajectoryID)
	})
}
