package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/osis/backend/internal/infrastructure/persistence"
)

// NotificationStore is the read surface of in-app notifications
type NotificationStore interface {
	FindByPerson(ctx context.Context, personID uuid.UUID) ([]persistence.WebNotificationDTO, error)
	MarkRead(ctx context.Context, id, personID uuid.UUID) error
}

// NotificationHandler exposes the authenticated user's in-app notifications
type NotificationHandler struct {
	BaseHandler
	store NotificationStore
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{store: store}
}

// List returns the caller's notifications, newest first
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "authentication required")
		return
	}

	notifications, err := h.store.FindByPerson(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notifications)
}

// MarkRead marks one of the caller's notifications as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "authentication required")
		return
	}
	notificationID, ok := h.pathUUID(c, "notificationID")
	if !ok {
		return
	}

	if err := h.store.MarkRead(c.Request.Context(), notificationID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
