package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/osis/backend/internal/application/dispatcher"
	"github.com/osis/backend/internal/application/jury"
)

// JuryHandler exposes the thesis jury endpoints
type JuryHandler struct {
	BaseHandler
	dispatcher *dispatcher.Dispatcher
}

// NewJuryHandler creates a new JuryHandler
func NewJuryHandler(d *dispatcher.Dispatcher) *JuryHandler {
	return &JuryHandler{dispatcher: d}
}

// Get returns the jury projection
func (h *JuryHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), jury.RecupererJuryQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ModifyDefence updates the defence-stage thesis fields
func (h *JuryHandler) ModifyDefence(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd jury.ModifierSoutenanceCommand
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

// AddMember appends a member to the jury
func (h *JuryHandler) AddMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var cmd jury.AjouterMembreJuryCommand
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

// ModifyMember updates a member's descriptive fields
func (h *JuryHandler) ModifyMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd jury.ModifierMembreJuryCommand
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

// RemoveMember removes a jury member
func (h *JuryHandler) RemoveMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	if _, err := h.dispatcher.Invoke(c.Request.Context(), jury.RetirerMembreJuryCommand{
		TrajectoryID: id,
		MemberID:     memberID,
	}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ChangeRole moves a member to another jury role
func (h *JuryHandler) ChangeRole(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd jury.ModifierRoleMembreJuryCommand
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

// invokeByTrajectory dispatches a command built from the trajectory path ID
func (h *JuryHandler) invokeByTrajectory(c *gin.Context, build func(id uuid.UUID) dispatcher.Command) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), build(id))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Submit hands the jury composition to the approval chain
func (h *JuryHandler) Submit(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.SoumettreJuryCommand{TrajectoryID: id}
	})
}

// ApproveByCA records the accompanying committee approval
func (h *JuryHandler) ApproveByCA(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.ApprouverJuryParCACommand{TrajectoryID: id}
	})
}

// ApproveByCDD records the CDD approval
func (h *JuryHandler) ApproveByCDD(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.ApprouverJuryParCDDCommand{TrajectoryID: id}
	})
}

// RefuseByCDD records the CDD refusal
func (h *JuryHandler) RefuseByCDD(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.RefuserJuryParCDDCommand{TrajectoryID: id}
	})
}

// ApproveByADRE records the ADRE approval
func (h *JuryHandler) ApproveByADRE(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.ApprouverJuryParADRECommand{TrajectoryID: id}
	})
}

// RefuseByADRE records the ADRE refusal
func (h *JuryHandler) RefuseByADRE(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.RefuserJuryParADRECommand{TrajectoryID: id}
	})
}

// Resubmit hands a refused jury back to the approval chain
func (h *JuryHandler) Resubmit(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.ResoumettreJuryCommand{TrajectoryID: id}
	})
}

// RequestSignatures invites every jury member to sign
func (h *JuryHandler) RequestSignatures(c *gin.Context) {
	h.invokeByTrajectory(c, func(id uuid.UUID) dispatcher.Command {
		return jury.DemanderSignaturesJuryCommand{TrajectoryID: id}
	})
}

// ApproveMember records a member's signature approval
func (h *JuryHandler) ApproveMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd jury.ApprouverMembreJuryCommand
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

// ApproveMemberByPDF records an uploaded signed approval
func (h *JuryHandler) ApproveMemberByPDF(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd jury.ApprouverMembreJuryParPdfCommand
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

// RefuseMember records a member's signature refusal
func (h *JuryHandler) RefuseMember(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	memberID, ok := h.pathUUID(c, "memberID")
	if !ok {
		return
	}

	var cmd jury.RefuserMembreJuryCommand
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
