package handler

import (
	"context"
	"path"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/osis/backend/internal/infrastructure/storage"
)

// FileStore is the presigned URL surface of the document store
type FileStore interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
}

// FileHandler hands out presigned URLs so file bytes never transit the API
type FileHandler struct {
	BaseHandler
	store FileStore
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(store FileStore) *FileHandler {
	return &FileHandler{store: store}
}

// UploadURLRequest describes the file about to be uploaded
type UploadURLRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// PresignedURLResponse carries a presigned URL and the key it is bound to
type PresignedURLResponse struct {
	URL        string    `json:"url"`
	StorageKey string    `json:"storage_key"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// CreateUploadURL mints a trajectory-scoped storage key and a presigned PUT URL
func (h *FileHandler) CreateUploadURL(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	storageKey := storage.TrajectoryKey(id, path.Ext(req.FileName))
	url, expiresAt, err := h.store.GenerateUploadURL(c.Request.Context(), storageKey, req.ContentType, 0)
	if err != nil {
		h.InternalError(c, "failed to generate upload URL")
		return
	}

	h.Created(c, PresignedURLResponse{
		URL:        url,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	})
}

// CreateDownloadURL presigns a GET URL for a stored document
func (h *FileHandler) CreateDownloadURL(c *gin.Context) {
	storageKey := c.Query("key")
	if storageKey == "" {
		h.BadRequest(c, "key query parameter is required")
		return
	}

	url, expiresAt, err := h.store.GenerateDownloadURL(c.Request.Context(), storageKey, 0)
	if err != nil {
		h.InternalError(c, "failed to generate download URL")
		return
	}

	h.Success(c, PresignedURLResponse{
		URL:        url,
		StorageKey: storageKey,
		ExpiresAt:  expiresAt,
	})
}
