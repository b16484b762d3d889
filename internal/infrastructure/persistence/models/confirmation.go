package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osis/backend/internal/domain/confirmation"
)

// ConfirmationPaperModel is the GORM model for a confirmation-exam paper
type ConfirmationPaperModel struct {
	AggregateModel
	TrajectoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Active       bool      `gorm:"not null;default:true;index"`

	DeadlineDate       time.Time `gorm:"not null"`
	TakenDate          *time.Time
	ExtendedDeadline   *time.Time
	BriefJustification string

	ResearchReport                pq.StringArray `gorm:"type:text[]"`
	SupervisorPanelReport         pq.StringArray `gorm:"type:text[]"`
	SupervisorPanelCanvas         pq.StringArray `gorm:"type:text[]"`
	ResearchMandateRenewalOpinion pq.StringArray `gorm:"type:text[]"`
	CertificateOfFailure          pq.StringArray `gorm:"type:text[]"`
	CertificateOfAchievement      pq.StringArray `gorm:"type:text[]"`
	JustificationLetter           pq.StringArray `gorm:"type:text[]"`
	CDDOpinion                    pq.StringArray `gorm:"type:text[]"`
}

// TableName specifies the table name
func (ConfirmationPaperModel) TableName() string {
	return "confirmation_papers"
}

// ToDomain converts the model to the domain aggregate
func (m *ConfirmationPaperModel) ToDomain() *confirmation.Paper {
	p := &confirmation.Paper{
		TrajectoryID: m.TrajectoryID,
		Active:       m.Active,

		DeadlineDate:       m.DeadlineDate,
		TakenDate:          m.TakenDate,
		ExtendedDeadline:   m.ExtendedDeadline,
		BriefJustification: m.BriefJustification,

		ResearchReport:                refsFromArray(m.ResearchReport),
		SupervisorPanelReport:         refsFromArray(m.SupervisorPanelReport),
		SupervisorPanelCanvas:         refsFromArray(m.SupervisorPanelCanvas),
		ResearchMandateRenewalOpinion: refsFromArray(m.ResearchMandateRenewalOpinion),
		CertificateOfFailure:          refsFromArray(m.CertificateOfFailure),
		CertificateOfAchievement:      refsFromArray(m.CertificateOfAchievement),
		JustificationLetter:           refsFromArray(m.JustificationLetter),
		CDDOpinion:                    refsFromArray(m.CDDOpinion),
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the model from the domain aggregate
func (m *ConfirmationPaperModel) FromDomain(p *confirmation.Paper) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.TrajectoryID = p.TrajectoryID
	m.Active = p.Active

	m.DeadlineDate = p.DeadlineDate
	m.TakenDate = p.TakenDate
	m.ExtendedDeadline = p.ExtendedDeadline
	m.BriefJustification = p.BriefJustification

	m.ResearchReport = refsToArray(p.ResearchReport)
	m.SupervisorPanelReport = refsToArray(p.SupervisorPanelReport)
	m.SupervisorPanelCanvas = refsToArray(p.SupervisorPanelCanvas)
	m.ResearchMandateRenewalOpinion = refsToArray(p.ResearchMandateRenewalOpinion)
	m.CertificateOfFailure = refsToArray(p.CertificateOfFailure)
	m.CertificateOfAchievement = refsToArray(p.CertificateOfAchievement)
	m.JustificationLetter = refsToArray(p.JustificationLetter)
	m.CDDOpinion = refsToArray(p.CDDOpinion)
}

// ToDTO converts the model to the read projection
func (m *ConfirmationPaperModel) ToDTO() confirmation.DTO {
	return confirmation.DTO{
		ID:                       m.ID,
		TrajectoryID:             m.TrajectoryID,
		Active:                   m.Active,
		DeadlineDate:             m.DeadlineDate,
		TakenDate:                m.TakenDate,
		ExtendedDeadline:         m.ExtendedDeadline,
		BriefJustification:       m.BriefJustification,
		ResearchReport:           []string(m.ResearchReport),
		SupervisorPanelReport:    []string(m.SupervisorPanelReport),
		CertificateOfAchievement: []string(m.CertificateOfAchievement),
		CertificateOfFailure:     []string(m.CertificateOfFailure),
	}
}
