package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/application/dispatcher"
	"github.com/osis/backend/internal/application/document"
)

// DocumentHandler exposes the free document endpoints
type DocumentHandler struct {
	BaseHandler
	dispatcher *dispatcher.Dispatcher
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(d *dispatcher.Dispatcher) *DocumentHandler {
	return &DocumentHandler{dispatcher: d}
}

// List returns the trajectory's document bag
func (h *DocumentHandler) List(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	result, err := h.dispatcher.Invoke(c.Request.Context(), document.RecupererDocumentsQuery{TrajectoryID: id})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Upload stores a manager-uploaded free document
func (h *DocumentHandler) Upload(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "authentication required")
		return
	}

	var cmd document.DeposerDocumentLibreCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id
	cmd.UploadedBy = userID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Request asks the candidate for a document
func (h *DocumentHandler) Request(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "authentication required")
		return
	}

	var cmd document.ReclamerDocumentLibreCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.TrajectoryID = id
	cmd.RequestedBy = userID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Fill records the candidate's answer to a requested document
func (h *DocumentHandler) Fill(c *gin.Context) {
	documentID, ok := h.pathUUID(c, "documentID")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "authentication required")
		return
	}

	var cmd document.RemplirDocumentLibreCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.DocumentID = documentID
	cmd.UploadedBy = userID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Replace swaps the stored files of a filled document
func (h *DocumentHandler) Replace(c *gin.Context) {
	documentID, ok := h.pathUUID(c, "documentID")
	if !ok {
		return
	}
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "authentication required")
		return
	}

	var cmd document.RemplacerDocumentLibreCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	cmd.DocumentID = documentID
	cmd.UploadedBy = userID

	result, err := h.dispatcher.Invoke(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a non-system document
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, ok := h.pathUUID(c, "documentID")
	if !ok {
		return
	}

	if _, err := h.dispatcher.Invoke(c.Request.Context(), document.SupprimerDocumentCommand{DocumentID: documentID}); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
