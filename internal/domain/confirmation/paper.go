package confirmation

import (
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

// Paper is one confirmation-exam deliverable. A trajectory may hold
// several papers (retakes) but at most one is active at a time.
type Paper struct {
	shared.BaseAggregateRoot
	TrajectoryID uuid.UUID
	Active       bool

	DeadlineDate       time.Time
	TakenDate          *time.Time
	ExtendedDeadline   *time.Time
	BriefJustification string

	ResearchReport                valueobject.DocumentRefs
	SupervisorPanelReport         valueobject.DocumentRefs
	SupervisorPanelCanvas         valueobject.DocumentRefs
	ResearchMandateRenewalOpinion valueobject.DocumentRefs
	CertificateOfFailure          valueobject.DocumentRefs
	CertificateOfAchievement      valueobject.DocumentRefs
	JustificationLetter           valueobject.DocumentRefs
	CDDOpinion                    valueobject.DocumentRefs
}

// NewPaper creates an active paper with the given deadline
func NewPaper(trajectoryID uuid.UUID, deadline time.Time) (*Paper, error) {
	if trajectoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRAJECTORY", "Trajectory ID cannot be empty")
	}
	if deadline.IsZero() {
		return nil, shared.NewDomainError("INVALID_DEADLINE", "Deadline date is required")
	}
	return &Paper{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrajectoryID:      trajectoryID,
		Active:            true,
		DeadlineDate:      deadline,
	}, nil
}

// EffectiveDeadline returns the extended deadline when one was granted
func (p *Paper) EffectiveDeadline() time.Time {
	if p.ExtendedDeadline != nil {
		return *p.ExtendedDeadline
	}
	return p.DeadlineDate
}

// Submit records the exam date and the candidate's documents. The taken
// date may not fall after the effective deadline.
func (p *Paper) Submit(takenDate time.Time, researchReport, supervisorPanelReport, mandateRenewalOpinion valueobject.DocumentRefs) error {
	if !p.Active {
		return shared.NewDomainError("PAPER_INACTIVE", "Only the active paper can be submitted")
	}
	if takenDate.IsZero() {
		return shared.NewDomainError("TAKEN_DATE_REQUIRED", "The exam date is required")
	}
	if takenDate.After(p.EffectiveDeadline()) {
		return shared.ErrDateOutOfRange
	}
	p.TakenDate = &takenDate
	p.ResearchReport = researchReport
	p.SupervisorPanelReport = supervisorPanelReport
	p.ResearchMandateRenewalOpinion = mandateRenewalOpinion
	p.UpdatedAt = time.Now()
	return nil
}

// CompleteByPromoter updates the panel documents supplied by the promoter
func (p *Paper) CompleteByPromoter(supervisorPanelReport, mandateRenewalOpinion valueobject.DocumentRefs) error {
	if !p.Active {
		return shared.NewDomainError("PAPER_INACTIVE", "Only the active paper can be completed")
	}
	if !supervisorPanelReport.IsEmpty() {
		p.SupervisorPanelReport = supervisorPanelReport
	}
	if !mandateRenewalOpinion.IsEmpty() {
		p.ResearchMandateRenewalOpinion = mandateRenewalOpinion
	}
	p.UpdatedAt = time.Now()
	return nil
}

// RequestExtension records a deadline extension request; the new deadline
// must fall after the current one and the justification is mandatory
func (p *Paper) RequestExtension(newDeadline time.Time, briefJustification string, justificationLetter valueobject.DocumentRefs) error {
	if !p.Active {
		return shared.NewDomainError("PAPER_INACTIVE", "Only the active paper can be extended")
	}
	if !newDeadline.After(p.DeadlineDate) {
		return shared.ErrDateOutOfRange
	}
	if briefJustification == "" {
		return shared.NewDomainError("JUSTIFICATION_REQUIRED", "A brief justification is required for an extension")
	}
	p.ExtendedDeadline = &newDeadline
	p.BriefJustification = briefJustification
	p.JustificationLetter = justificationLetter
	p.UpdatedAt = time.Now()
	return nil
}

// ModifyByCDD is the free-form update used by the CDD secretariat
func (p *Paper) ModifyByCDD(deadline time.Time, takenDate *time.Time, cddOpinion, canvas valueobject.DocumentRefs) {
	if !deadline.IsZero() {
		p.DeadlineDate = deadline
	}
	if takenDate != nil {
		p.TakenDate = takenDate
	}
	if !cddOpinion.IsEmpty() {
		p.CDDOpinion = cddOpinion
	}
	if !canvas.IsEmpty() {
		p.SupervisorPanelCanvas = canvas
	}
	p.UpdatedAt = time.Now()
}

// VerifyComplete checks the paper holds everything a decision needs
func (p *Paper) VerifyComplete() error {
	if p.TakenDate == nil || p.SupervisorPanelReport.IsEmpty() {
		return shared.ErrPaperIncomplete
	}
	return nil
}

// Deactivate closes the paper after a decision
func (p *Paper) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}

// RecordAchievement stores the success certificate reference
func (p *Paper) RecordAchievement(certificate valueobject.DocumentRefs) {
	p.CertificateOfAchievement = certificate
	p.UpdatedAt = time.Now()
}

// RecordFailure stores the failure certificate reference
func (p *Paper) RecordFailure(certificate valueobject.DocumentRefs) {
	p.CertificateOfFailure = certificate
	p.UpdatedAt = time.Now()
}
