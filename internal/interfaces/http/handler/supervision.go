package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/application/dispatcher"
	"github.com/osis/backend/internal/application/supervision"
)

// SupervisionHandler exposes the supervision group endpoints
type SupervisionHandler struct {
	BaseHandler
	dispatcher *dispatcher.Dispatcher
}

// NewSupervisionHandler creates a new SupervisionHandler
func NewSupervisionHandler(d *dispatcher.Dispatcher) *SupervisionHandler {
	return &SupervisionHandler{dispatcher: d}
}

// Get returns the supervision group projection
func (h *SupervisionHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), supervision.RecupererGroupeSupervisionQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// IdentifyPromoter adds a promoter to the group
func (h *SupervisionHandler) IdentifyPromoter(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd supervision.IdentifierPromoteurCommand
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

// IdentifyCAMember adds an accompanying-committee member
func (h *SupervisionHandler) IdentifyCAMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd supervision.IdentifierMembreCACommand
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

// RemovePromoter removes a promoter from the group
func (h *SupervisionHandler) RemovePromoter(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	if _, err := h.dispatcher.Invoke(c.Request.Context(), supervision.RetirerPromoteurCommand{
		TrajectoryID: id,
		MemberID:     memberID,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RemoveCAMember removes an accompanying-committee member
func (h *SupervisionHandler) RemoveCAMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	if _, err := h.dispatcher.Invoke(c.Request.Context(), supervision.RetirerMembreCACommand{
		TrajectoryID: id,
		MemberID:     memberID,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DesignateReferencePromoter designates the reference promoter
func (h *SupervisionHandler) DesignateReferencePromoter(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), supervision.DesignerPromoteurReferenceCommand{
		TrajectoryID: id,
		MemberID:     memberID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RequestSignatures starts the signature round and locks the group
func (h *SupervisionHandler) RequestSignatures(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), supervision.DemanderSignaturesCommand{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ResendInvitation reminds an invited member to sign
func (h *SupervisionHandler) ResendInvitation(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), supervision.RenvoyerInvitationSignatureCommand{
		TrajectoryID: id,
		MemberID:     memberID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Approve records a member's signature approval
func (h *SupervisionHandler) Approve(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd supervision.ApprouverMembreCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id
	cmd.MemberID = memberID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Decline records a member's signature refusal
func (h *SupervisionHandler) Decline(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd supervision.RefuserMembreCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id
	cmd.MemberID = memberID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ApproveByPDF records an uploaded signed approval document
func (h *SupervisionHandler) ApproveByPDF(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd supervision.ApprouverMembreParPdfCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id
	cmd.MemberID = memberID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
