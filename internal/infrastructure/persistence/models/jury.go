package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osis/backend/internal/domain/jury"
)

// JuryModel is the GORM model for the defence jury
type JuryModel struct {
	AggregateModel
	TrajectoryID uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex"`
	Members      []JuryMemberModel `gorm:"foreignKey:JuryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (JuryModel) TableName() string {
	return "juries"
}

// JuryMemberModel is one jury member row
type JuryMemberModel struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	JuryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role   string    `gorm:"not null"`

	PromoterID *uuid.UUID `gorm:"type:uuid"`

	ActorKind string     `gorm:"not null"`
	PersonID  *uuid.UUID `gorm:"type:uuid;index"`
	FirstName string
	LastName  string
	Email     string
	Institute string
	City      string
	Country   string
	Language  string

	Title            string
	Institution      string
	OtherInstitution string
	NonDoctorReason  string
	Gender           string

	SignatureState  string `gorm:"not null"`
	SignedAt        *time.Time
	Comment         string
	InternalComment string
	RejectionReason string
	SignaturePDF    pq.StringArray `gorm:"type:text[]"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name
func (JuryMemberModel) TableName() string {
	return "jury_members"
}

// ToDomain converts the member row to a domain member
func (m *JuryMemberModel) ToDomain() jury.Member {
	return jury.Member{
		ID:               m.ID,
		Role:             jury.Role(m.Role),
		PromoterID:       m.PromoterID,
		Actor:            actorFromColumns(m.ActorKind, m.PersonID, m.FirstName, m.LastName, m.Email, m.Institute, m.City, m.Country, m.Language),
		Title:            m.Title,
		Institution:      m.Institution,
		OtherInstitution: m.OtherInstitution,
		NonDoctorReason:  m.NonDoctorReason,
		Gender:           m.Gender,
		Signature:        signatureFromColumns(m.SignatureState, m.SignedAt, m.Comment, m.InternalComment, m.RejectionReason, m.SignaturePDF),
	}
}

// FromDomain populates the member row from a domain member
func (m *JuryMemberModel) FromDomain(juryID uuid.UUID, member jury.Member) {
	m.ID = member.ID
	m.JuryID = juryID
	m.Role = string(member.Role)
	m.PromoterID = member.PromoterID

	m.ActorKind = string(member.Actor.Kind)
	m.PersonID = member.Actor.PersonID
	m.FirstName = member.Actor.FirstName
	m.LastName = member.Actor.LastName
	m.Email = member.Actor.Email
	m.Institute = member.Actor.Institute
	m.City = member.Actor.City
	m.Country = member.Actor.Country
	m.Language = member.Actor.Language

	m.Title = member.Title
	m.Institution = member.Institution
	m.OtherInstitution = member.OtherInstitution
	m.NonDoctorReason = member.NonDoctorReason
	m.Gender = member.Gender

	m.SignatureState = string(member.Signature.State)
	m.SignedAt = member.Signature.SignedAt
	m.Comment = member.Signature.Comment
	m.InternalComment = member.Signature.InternalComment
	m.RejectionReason = member.Signature.RejectionReason
	m.SignaturePDF = refsToArray(member.Signature.PDF)
}

// ToDomain converts the model to the domain aggregate
func (m *JuryModel) ToDomain() *jury.Jury {
	members := make([]jury.Member, len(m.Members))
	for i := range m.Members {
		members[i] = m.Members[i].ToDomain()
	}
	j := &jury.Jury{
		TrajectoryID: m.TrajectoryID,
		Members:      members,
	}
	m.PopulateAggregateRoot(&j.BaseAggregateRoot)
	return j
}

// FromDomain populates the model from the domain aggregate
func (m *JuryModel) FromDomain(j *jury.Jury) {
	m.FromDomainAggregateRoot(j.BaseAggregateRoot)
	m.TrajectoryID = j.TrajectoryID
	m.Members = make([]JuryMemberModel, len(j.Members))
	for i, member := range j.Members {
		m.Members[i].FromDomain(j.ID, member)
	}
}
