package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/application/confirmation"
	"github.com/osis/backend/internal/application/dispatcher"
)

// ConfirmationHandler exposes the confirmation paper endpoints
type ConfirmationHandler struct {
	BaseHandler
	dispatcher *dispatcher.Dispatcher
}

// NewConfirmationHandler creates a new ConfirmationHandler
func NewConfirmationHandler(d *dispatcher.Dispatcher) *ConfirmationHandler {
	return &ConfirmationHandler{dispatcher: d}
}

// List returns the trajectory's confirmation papers, newest first
func (h *ConfirmationHandler) List(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), confirmation.RecupererEpreuvesConfirmationQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Submit records the candidate's confirmation exam submission
func (h *ConfirmationHandler) Submit(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd confirmation.SoumettreEpreuveConfirmationCommand
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

// CompleteByPromoter attaches the supervision panel documents
func (h *ConfirmationHandler) CompleteByPromoter(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd confirmation.CompleterEpreuveConfirmationParPromoteurCommand
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

// RequestExtension requests a confirmation deadline extension
func (h *ConfirmationHandler) RequestExtension(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd confirmation.DemanderProlongationCommand
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

// UpdateByCDD is the secretariat correction of the active paper
func (h *ConfirmationHandler) UpdateByCDD(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd confirmation.ModifierEpreuveConfirmationParCDDCommand
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

// ConfirmSuccess settles the exam as passed
func (h *ConfirmationHandler) ConfirmSuccess(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), confirmation.ConfirmerReussiteCommand{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ConfirmFailure settles the exam as failed
func (h *ConfirmationHandler) ConfirmFailure(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd confirmation.ConfirmerEchecCommand
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

// ConfirmRetake settles the exam as to be retaken with a new deadline
func (h *ConfirmationHandler) ConfirmRetake(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd confirmation.ConfirmerRepassageCommand
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
