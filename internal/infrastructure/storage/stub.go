package storage

import (
	"context"
	"errors"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/osis/backend/internal/domain/reference"
)

// StubDocumentStore is a placeholder store for development environments
// without an S3 backend. Duplication mints fresh trajectory-scoped keys
// without copying any bytes, and URL generation returns fake links.
type StubDocumentStore struct {
	// BaseURL is the base URL for generated upload/download URLs.
	// Defaults to "https://storage.example.com" if not set
	BaseURL string
}

// NewStubDocumentStore creates a new StubDocumentStore
func NewStubDocumentStore() *StubDocumentStore {
	return &StubDocumentStore{
		BaseURL: "https://storage.example.com",
	}
}

// Ensure StubDocumentStore implements the duplication port
var _ reference.DocumentDuplicator = (*StubDocumentStore)(nil)

// Duplicate returns fresh trajectory-scoped keys in input order without
// touching any storage backend
func (s *StubDocumentStore) Duplicate(_ context.Context, trajectoryID uuid.UUID, refs []string) ([]string, error) {
	copied := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref == "" {
			return nil, errors.New("source storage key is required")
		}
		copied = append(copied, TrajectoryKey(trajectoryID, path.Ext(ref)))
	}
	return copied, nil
}

// GenerateUploadURL generates a stub presigned URL for uploading a file
func (s *StubDocumentStore) GenerateUploadURL(
	_ context.Context,
	storageKey, _ string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/upload/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// GenerateDownloadURL generates a stub presigned URL for downloading a file
func (s *StubDocumentStore) GenerateDownloadURL(
	_ context.Context,
	storageKey string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}

	expiresAt := time.Now().Add(expiresIn)
	url := s.BaseURL + "/download/" + storageKey + "?expires=" + expiresAt.Format(time.RFC3339)

	return url, expiresAt, nil
}

// DeleteObject is a no-op stub that always succeeds
func (s *StubDocumentStore) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

// ObjectExists always returns true in stub mode.
// This keeps upload confirmation flows working during development
func (s *StubDocumentStore) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}
	return true, nil
}

// Upload is a no-op stub that always succeeds
func (s *StubDocumentStore) Upload(_ context.Context, storageKey string, _ []byte, _ string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}
