package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/application/dispatcher"
	"github.com/osis/backend/internal/application/training"
)

// TrainingHandler exposes the doctoral training activity endpoints
type TrainingHandler struct {
	BaseHandler
	dispatcher *dispatcher.Dispatcher
}

// NewTrainingHandler creates a new TrainingHandler
func NewTrainingHandler(d *dispatcher.Dispatcher) *TrainingHandler {
	return &TrainingHandler{dispatcher: d}
}

// List returns the trajectory's activity forest
func (h *TrainingHandler) List(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), training.RecupererActivitesQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Create adds a new activity to the trajectory
func (h *TrainingHandler) Create(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd training.CreerActiviteCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Update edits an unsubmitted activity
func (h *TrainingHandler) Update(c *gin.Context) {
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}

	var cmd training.ModifierActiviteCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.ActivityID = activityID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes an unsubmitted activity and its children
func (h *TrainingHandler) Delete(c *gin.Context) {
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}

	if _, err := h.dispatcher.Invoke(c.Request.Context(), training.SupprimerActiviteCommand{ActivityID: activityID}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SubmitBatch submits a batch of activities for review
func (h *TrainingHandler) SubmitBatch(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd training.SoumettreActivitesCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Approve accepts a batch of submitted activities
func (h *TrainingHandler) Approve(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd training.ApprouverActivitesCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Refuse settles one submitted activity, optionally asking for changes
func (h *TrainingHandler) Refuse(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}

	var cmd training.RefuserActiviteCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id
	cmd.ActivityID = activityID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Restore is the reviewer undo back to the submitted state
func (h *TrainingHandler) Restore(c *gin.Context) {
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), training.RevenirSurStatutActiviteCommand{ActivityID: activityID})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GiveOpinion records the reference promoter's assent on an activity
func (h *TrainingHandler) GiveOpinion(c *gin.Context) {
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}

	var cmd training.DonnerAvisSurActiviteCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.ActivityID = activityID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Enrol enrols a course activity to an assessment session
func (h *TrainingHandler) Enrol(c *gin.Context) {
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}

	var cmd training.InscrireEvaluationCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.ActivityID = activityID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// CorrectMark edits the corrected mark of the latest session enrolment
func (h *TrainingHandler) CorrectMark(c *gin.Context) {
	activityID, ok := h.pathUUID(c, "activityID")
	if !ok {
		return
	}
	enrolmentID, ok := h.pathUUID(c, "enrolmentID")
	if !ok {
		return
	}

	var cmd training.CorrigerNoteEvaluationCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.ActivityID = activityID
	cmd.EnrolmentID = enrolmentID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
