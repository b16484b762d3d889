package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/osis/backend/internal/domain/training"
)

// ActivityModel is the GORM model for a training activity. The flat
// category-specific fields mirror the domain record.
type ActivityModel struct {
	AggregateModel
	TrajectoryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Context      string    `gorm:"not null"`
	Category     string    `gorm:"not null"`
	Status       string    `gorm:"not null;index"`

	ParentID       *uuid.UUID `gorm:"type:uuid;index"`
	ParentCategory *string

	ECTS decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`

	Title                 string
	Subtitle              string
	StartDate             *time.Time
	EndDate               *time.Time
	ParticipatingDays     *decimal.Decimal `gorm:"type:decimal(5,1)"`
	HourVolume            string
	IsOnline              bool `gorm:"not null;default:false"`
	City                  string
	Country               string
	OrganizingInstitution string
	Website               string
	Committee             string
	AcceptationProof      pq.StringArray `gorm:"type:text[]"`
	ParticipationProof    pq.StringArray `gorm:"type:text[]"`
	Summary               pq.StringArray `gorm:"type:text[]"`
	Authors               string
	MemberRole            string
	KeynoteCommunication  bool `gorm:"not null;default:false"`
	PublicationStatus     string
	WithReadingCommittee  bool `gorm:"not null;default:false"`
	DialReference         string
	Comment               string `gorm:"type:text"`

	LearningUnitCode  string `gorm:"index"`
	LearningClassCode string
	AcademicYear      int
	CourseCompleted   bool `gorm:"not null;default:false"`
	Mark              string

	PaperType string

	ReferencePromoterAssent  *bool
	ReferencePromoterComment string `gorm:"type:text"`
	CDDComment               string `gorm:"type:text"`

	Enrolments []SessionEnrolmentModel `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (ActivityModel) TableName() string {
	return "training_activities"
}

// SessionEnrolmentModel is one assessment-session enrolment row
type SessionEnrolmentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	ActivityID uuid.UUID `gorm:"type:uuid;not null;index"`
	Session    string    `gorm:"not null"`
	Year       int       `gorm:"not null"`
	Late       bool      `gorm:"not null;default:false"`
	Status     string    `gorm:"not null"`
	Mark       string
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (SessionEnrolmentModel) TableName() string {
	return "session_enrolments"
}

// ToDomain converts the enrolment row to its domain counterpart
func (m *SessionEnrolmentModel) ToDomain() training.SessionEnrolment {
	return training.SessionEnrolment{
		ID:         m.ID,
		ActivityID: m.ActivityID,
		Session:    training.Session(m.Session),
		Year:       m.Year,
		Late:       m.Late,
		Status:     training.EnrolmentStatus(m.Status),
		Mark:       m.Mark,
		CreatedAt:  m.CreatedAt,
	}
}

// FromDomain populates the enrolment row
func (m *SessionEnrolmentModel) FromDomain(e training.SessionEnrolment) {
	m.ID = e.ID
	m.ActivityID = e.ActivityID
	m.Session = string(e.Session)
	m.Year = e.Year
	m.Late = e.Late
	m.Status = string(e.Status)
	m.Mark = e.Mark
	m.CreatedAt = e.CreatedAt
}

// ToDomain converts the model to the domain aggregate
func (m *ActivityModel) ToDomain() *training.Activity {
	var parentCategory *training.Category
	if m.ParentCategory != nil {
		pc := training.Category(*m.ParentCategory)
		parentCategory = &pc
	}
	enrolments := make([]training.SessionEnrolment, len(m.Enrolments))
	for i := range m.Enrolments {
		enrolments[i] = m.Enrolments[i].ToDomain()
	}

	a := &training.Activity{
		TrajectoryID: m.TrajectoryID,
		Context:      training.Context(m.Context),
		Category:     training.Category(m.Category),
		Status:       training.ActivityStatus(m.Status),

		ParentID:       m.ParentID,
		ParentCategory: parentCategory,

		ECTS: m.ECTS,

		Title:                 m.Title,
		Subtitle:              m.Subtitle,
		StartDate:             m.StartDate,
		EndDate:               m.EndDate,
		ParticipatingDays:     m.ParticipatingDays,
		HourVolume:            m.HourVolume,
		IsOnline:              m.IsOnline,
		City:                  m.City,
		Country:               m.Country,
		OrganizingInstitution: m.OrganizingInstitution,
		Website:               m.Website,
		Committee:             training.CommitteeChoice(m.Committee),
		AcceptationProof:      refsFromArray(m.AcceptationProof),
		ParticipationProof:    refsFromArray(m.ParticipationProof),
		Summary:               refsFromArray(m.Summary),
		Authors:               m.Authors,
		Role:                  m.MemberRole,
		KeynoteCommunication:  m.KeynoteCommunication,
		PublicationStatus:     m.PublicationStatus,
		WithReadingCommittee:  m.WithReadingCommittee,
		DialReference:         m.DialReference,
		Comment:               m.Comment,

		LearningUnitCode:  m.LearningUnitCode,
		LearningClassCode: m.LearningClassCode,
		AcademicYear:      m.AcademicYear,
		CourseCompleted:   m.CourseCompleted,
		Mark:              m.Mark,
		Enrolments:        enrolments,

		PaperType: training.PaperType(m.PaperType),

		ReferencePromoterAssent:  m.ReferencePromoterAssent,
		ReferencePromoterComment: m.ReferencePromoterComment,
		CDDComment:               m.CDDComment,
	}
	m.PopulateAggregateRoot(&a.BaseAggregateRoot)
	return a
}

// FromDomain populates the model from the domain aggregate
func (m *ActivityModel) FromDomain(a *training.Activity) {
	m.FromDomainAggregateRoot(a.BaseAggregateRoot)
	m.TrajectoryID = a.TrajectoryID
	m.Context = string(a.Context)
	m.Category = string(a.Category)
	m.Status = string(a.Status)

	m.ParentID = a.ParentID
	if a.ParentCategory != nil {
		pc := string(*a.ParentCategory)
		m.ParentCategory = &pc
	} else {
		m.ParentCategory = nil
	}

	m.ECTS = a.ECTS

	m.Title = a.Title
	m.Subtitle = a.Subtitle
	m.StartDate = a.StartDate
	m.EndDate = a.EndDate
	m.ParticipatingDays = a.ParticipatingDays
	m.HourVolume = a.HourVolume
	m.IsOnline = a.IsOnline
	m.City = a.City
	m.Country = a.Country
	m.OrganizingInstitution = a.OrganizingInstitution
	m.Website = a.Website
	m.Committee = string(a.Committee)
	m.AcceptationProof = refsToArray(a.AcceptationProof)
	m.ParticipationProof = refsToArray(a.ParticipationProof)
	m.Summary = refsToArray(a.Summary)
	m.Authors = a.Authors
	m.MemberRole = a.Role
	m.KeynoteCommunication = a.KeynoteCommunication
	m.PublicationStatus = a.PublicationStatus
	m.WithReadingCommittee = a.WithReadingCommittee
	m.DialReference = a.DialReference
	m.Comment = a.Comment

	m.LearningUnitCode = a.LearningUnitCode
	m.LearningClassCode = a.LearningClassCode
	m.AcademicYear = a.AcademicYear
	m.CourseCompleted = a.CourseCompleted
	m.Mark = a.Mark

	m.PaperType = string(a.PaperType)

	m.ReferencePromoterAssent = a.ReferencePromoterAssent
	m.ReferencePromoterComment = a.ReferencePromoterComment
	m.CDDComment = a.CDDComment

	m.Enrolments = make([]SessionEnrolmentModel, len(a.Enrolments))
	for i, e := range a.Enrolments {
		m.Enrolments[i].FromDomain(e)
	}
}

// ToDTO converts the model to the read projection
func (m *ActivityModel) ToDTO() training.DTO {
	return training.DTO{
		ID:                      m.ID,
		TrajectoryID:            m.TrajectoryID,
		Context:                 m.Context,
		Category:                m.Category,
		Status:                  m.Status,
		ParentID:                m.ParentID,
		ECTS:                    m.ECTS,
		Title:                   m.Title,
		StartDate:               m.StartDate,
		EndDate:                 m.EndDate,
		City:                    m.City,
		Country:                 m.Country,
		LearningUnitCode:        m.LearningUnitCode,
		CourseCompleted:         m.CourseCompleted,
		ReferencePromoterAssent: m.ReferencePromoterAssent,
		CreatedAt:               m.CreatedAt,
	}
}
