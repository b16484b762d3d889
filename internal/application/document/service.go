package document

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/osis/backend/internal/domain/document"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/trajectory"
)

// Service handles the free-document bag of a trajectory
type Service struct {
	documents    document.Repository
	trajectories trajectory.Repository
	notifier     trajectory.Notifier
	historian    trajectory.Historian
	logger       *zap.Logger
}

// NewService creates a new document Service
func NewService(
	documents document.Repository,
	trajectories trajectory.Repository,
	notifier trajectory.Notifier,
	historian trajectory.Historian,
	logger *zap.Logger,
) *Service {
	return &Service{
		documents:    documents,
		trajectories: trajectories,
		notifier:     notifier,
		historian:    historian,
		logger:       logger,
	}
}

// List returns the read projections of a trajectory's documents
func (s *Service) List(ctx context.Context, trajectoryID uuid.UUID) ([]document.DTO, error) {
	docs, err := s.documents.FindByTrajectory(ctx, trajectoryID)
	if err != nil {
		return nil, err
	}
	dtos := make([]document.DTO, 0, len(docs))
	for _, d := range docs {
		dtos = append(dtos, document.DTO{
			ID:           d.ID,
			TrajectoryID: d.TrajectoryID,
			Type:         string(d.Type),
			Label:        d.Label,
			Refs:         d.Refs.Strings(),
			UploadedBy:   d.UploadedBy,
			UploadedAt:   d.UploadedAt,
		})
	}
	return dtos, nil
}

// Upload stores a manager-uploaded free document
func (s *Service) Upload(ctx context.Context, trajectoryID uuid.UUID, label string, refs []string, uploadedBy uuid.UUID) (*document.Document, error) {
	if _, err := s.trajectories.FindByID(ctx, trajectoryID); err != nil {
		return nil, err
	}
	files := valueobject.DocumentRefsFromStrings(refs)
	if files.IsEmpty() {
		return nil, shared.NewDomainError("FILE_REQUIRED", "At least one file is required")
	}
	doc, err := document.NewDocument(trajectoryID, document.TypeFree, label, files, uploadedBy)
	if err != nil {
		return nil, err
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, err
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("Le document « %s » a été déposé", label),
		fmt.Sprintf("The document \"%s\" was uploaded", label))
	return doc, nil
}

// Request opens an empty candidate-requested document and notifies the
// student to fill it
func (s *Service) Request(ctx context.Context, trajectoryID uuid.UUID, label string, requestedBy uuid.UUID) (*document.Document, error) {
	if _, err := s.trajectories.FindByID(ctx, trajectoryID); err != nil {
		return nil, err
	}
	doc, err := document.NewDocument(trajectoryID, document.TypeCandidateFree, label, nil, requestedBy)
	if err != nil {
		return nil, err
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Le document « %s » vous est réclamé.", label)
	if err := s.notifier.SendToStudent(ctx, trajectoryID, "Document réclamé", message, trajectory.Recipients{}); err != nil {
		s.logger.Warn("document request notification failed", zap.Error(err))
	}
	s.record(ctx, trajectoryID,
		fmt.Sprintf("Le document « %s » a été réclamé au candidat", label),
		fmt.Sprintf("The document \"%s\" was requested from the candidate", label))
	return doc, nil
}

// Fill records the candidate's answer to a requested document
func (s *Service) Fill(ctx context.Context, documentID uuid.UUID, refs []string, uploadedBy uuid.UUID) error {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := doc.Fill(valueobject.DocumentRefsFromStrings(refs), uploadedBy); err != nil {
		return err
	}
	if err := s.documents.Save(ctx, doc); err != nil {
		return err
	}
	s.record(ctx, doc.TrajectoryID,
		fmt.Sprintf("Le document « %s » a été complété par le candidat", doc.Label),
		fmt.Sprintf("The document \"%s\" was filled by the candidate", doc.Label))
	return nil
}

// Replace swaps the stored files of a non-system document
func (s *Service) Replace(ctx context.Context, documentID uuid.UUID, refs []string, uploadedBy uuid.UUID) error {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := doc.Replace(valueobject.DocumentRefsFromStrings(refs), uploadedBy); err != nil {
		return err
	}
	return s.documents.Save(ctx, doc)
}

// Delete removes a non-system document from the bag
func (s *Service) Delete(ctx context.Context, documentID uuid.UUID) error {
	doc, err := s.documents.FindByID(ctx, documentID)
	if err != nil {
		return err
	}
	if !doc.CanDelete() {
		return shared.NewDomainError("SYSTEM_DOCUMENT", "System documents cannot be deleted")
	}
	if err := s.documents.Delete(ctx, documentID); err != nil {
		return err
	}
	s.record(ctx, doc.TrajectoryID,
		fmt.Sprintf("Le document « %s » a été supprimé", doc.Label),
		fmt.Sprintf("The document \"%s\" was deleted", doc.Label))
	return nil
}

func (s *Service) record(ctx context.Context, trajectoryID uuid.UUID, fr, en string) {
	entry := trajectory.HistoryEntry{
		TrajectoryID: trajectoryID,
		MessageFR:    fr,
		MessageEN:    en,
		Author:       "system",
		Tags:         []string{"parcours_doctoral", "documents"},
	}
	if err := s.historian.Record(ctx, entry); err != nil {
		s.logger.Warn("history entry not recorded", zap.Error(err))
	}
}
