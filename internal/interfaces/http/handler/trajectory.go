package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/application/dispatcher"
	"github.com/osis/backend/internal/application/trajectory"
)

// TrajectoryHandler exposes the doctoral trajectory lifecycle endpoints
type TrajectoryHandler struct {
	BaseHandler
	dispatcher *dispatcher.Dispatcher
}

// NewTrajectoryHandler creates a new TrajectoryHandler
func NewTrajectoryHandler(d *dispatcher.Dispatcher) *TrajectoryHandler {
	return &TrajectoryHandler{dispatcher: d}
}

// Initialize creates the trajectory of an approved admission
func (h *TrajectoryHandler) Initialize(c *gin.Context) {
	var cmd trajectory.InitialiserParcoursDoctoralCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns one trajectory projection
func (h *TrajectoryHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), trajectory.RecupererParcoursDoctoralQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ModifyProject updates the research project description
func (h *TrajectoryHandler) ModifyProject(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd trajectory.ModifierProjetCommand
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

// ModifyFunding updates the funding block
func (h *TrajectoryHandler) ModifyFunding(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd trajectory.ModifierFinancementCommand
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

// GetCotutelle returns the cotutelle block of a trajectory
func (h *TrajectoryHandler) GetCotutelle(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), trajectory.RecupererCotutelleQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ModifyCotutelle updates the cotutelle block
func (h *TrajectoryHandler) ModifyCotutelle(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd trajectory.ModifierCotutelleCommand
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

// GenerateArchive queues the PDF archive generation task
func (h *TrajectoryHandler) GenerateArchive(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), trajectory.GenererArchivePDFCommand{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
