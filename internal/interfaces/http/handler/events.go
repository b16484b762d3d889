package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/interfaces/http/dto"
)

// EventDecoder turns a named JSON payload back into a domain event
type EventDecoder interface {
	Deserialize(eventType string, data []byte) (shared.DomainEvent, error)
}

// EventIngressHandler receives domain events from other contexts, the
// admission context in particular, and republishes them on the internal
// bus. The SIC approval events arriving here are what creates a
// trajectory in the first place.
type EventIngressHandler struct {
	BaseHandler
	decoder   EventDecoder
	publisher shared.EventPublisher
}

// NewEventIngressHandler creates a new EventIngressHandler
func NewEventIngressHandler(decoder EventDecoder, publisher shared.EventPublisher) *EventIngressHandler {
	return &EventIngressHandler{decoder: decoder, publisher: publisher}
}

// IngressRequest is an inbound event envelope
type IngressRequest struct {
	EventType string          `json:"event_type" binding:"required"`
	Payload   json.RawMessage `json:"payload" binding:"required"`
}

// Publish decodes the envelope and hands the event to the bus
func (h *EventIngressHandler) Publish(c *gin.Context) {
	var req IngressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	event, err := h.decoder.Deserialize(req.EventType, req.Payload)
	if err != nil {
		h.BadRequest(c, "unknown or malformed event: "+err.Error())
		return
	}

	if err := h.publisher.Publish(c.Request.Context(), event); err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(gin.H{
		"event_id":   event.EventID(),
		"event_type": event.EventType(),
	}))
}
