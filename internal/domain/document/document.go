package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

// Type of a free document attached to a trajectory
type Type string

const (
	// TypeFree is a document uploaded by a manager
	TypeFree Type = "FREE"
	// TypeCandidateFree is a free document requested from and uploaded by
	// the candidate
	TypeCandidateFree Type = "LIBRE_CANDIDAT"
	// TypeSystem is a document produced by the application itself
	TypeSystem Type = "SYSTEM"
)

// IsValid checks if the value is a known Type
func (t Type) IsValid() bool {
	switch t {
	case TypeFree, TypeCandidateFree, TypeSystem:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// Document is one entry of a trajectory's document bag
type Document struct {
	shared.BaseEntity
	TrajectoryID uuid.UUID
	Type         Type
	Label        string
	Refs         valueobject.DocumentRefs
	UploadedBy   uuid.UUID
	UploadedAt   time.Time
}

// NewDocument creates a document bag entry
func NewDocument(trajectoryID uuid.UUID, docType Type, label string, refs valueobject.DocumentRefs, uploadedBy uuid.UUID) (*Document, error) {
	if trajectoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRAJECTORY", "Trajectory ID cannot be empty")
	}
	if !docType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type")
	}
	if label == "" {
		return nil, shared.NewDomainError("LABEL_REQUIRED", "A document label is required")
	}
	return &Document{
		BaseEntity:   shared.NewBaseEntity(),
		TrajectoryID: trajectoryID,
		Type:         docType,
		Label:        label,
		Refs:         refs,
		UploadedBy:   uploadedBy,
		UploadedAt:   time.Now(),
	}, nil
}

// Replace swaps the stored file references. System documents are managed
// by the application and cannot be replaced by hand.
func (d *Document) Replace(refs valueobject.DocumentRefs, uploadedBy uuid.UUID) error {
	if d.Type == TypeSystem {
		return shared.NewDomainError("SYSTEM_DOCUMENT", "System documents cannot be modified")
	}
	d.Refs = refs
	d.UploadedBy = uploadedBy
	d.UploadedAt = time.Now()
	d.UpdatedAt = time.Now()
	return nil
}

// CanDelete reports whether the entry may be removed from the bag
func (d *Document) CanDelete() bool {
	return d.Type != TypeSystem
}

// Fill records the candidate's answer to a requested free document
func (d *Document) Fill(refs valueobject.DocumentRefs, uploadedBy uuid.UUID) error {
	if d.Type != TypeCandidateFree {
		return shared.NewDomainError("NOT_CANDIDATE_DOCUMENT", "Only candidate-requested documents can be filled")
	}
	if refs.IsEmpty() {
		return shared.NewDomainError("FILE_REQUIRED", "At least one file is required")
	}
	d.Refs = refs
	d.UploadedBy = uploadedBy
	d.UploadedAt = time.Now()
	d.UpdatedAt = time.Now()
	return nil
}
