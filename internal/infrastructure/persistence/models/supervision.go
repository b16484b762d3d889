package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/osis/backend/internal/domain/shared/valueobject"
	"github.com/osis/backend/internal/domain/supervision"
)

// SupervisionGroupModel is the GORM model for the supervision group
type SupervisionGroupModel struct {
	AggregateModel
	TrajectoryID uuid.UUID                `gorm:"type:uuid;not null;uniqueIndex"`
	State        string                   `gorm:"not null"`
	Members      []SupervisionMemberModel `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name
func (SupervisionGroupModel) TableName() string {
	return "supervision_groups"
}

// SupervisionMemberModel is one member row; the actor identity and the
// signature are flattened into columns
type SupervisionMemberModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type    string    `gorm:"not null"`

	ActorKind string     `gorm:"not null"`
	PersonID  *uuid.UUID `gorm:"type:uuid;index"`
	FirstName string
	LastName  string
	Email     string
	Institute string
	City      string
	Country   string
	Language  string

	IsDoctor            bool `gorm:"not null;default:false"`
	IsReferencePromoter bool `gorm:"not null;default:false"`

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
func (SupervisionMemberModel) TableName() string {
	return "supervision_members"
}

// actorFromColumns rebuilds the actor value object from flattened columns
func actorFromColumns(kind string, personID *uuid.UUID, firstName, lastName, email, institute, city, country, language string) valueobject.Actor {
	return valueobject.Actor{
		Kind:      valueobject.ActorKind(kind),
		PersonID:  personID,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Institute: institute,
		City:      city,
		Country:   country,
		Language:  language,
	}
}

// signatureFromColumns rebuilds the signature value object
func signatureFromColumns(state string, signedAt *time.Time, comment, internalComment, rejectionReason string, pdf pq.StringArray) valueobject.Signature {
	return valueobject.Signature{
		State:           valueobject.SignatureState(state),
		SignedAt:        signedAt,
		Comment:         comment,
		InternalComment: internalComment,
		RejectionReason: rejectionReason,
		PDF:             refsFromArray(pdf),
	}
}

// ToDomain converts the member row to a domain member
func (m *SupervisionMemberModel) ToDomain() supervision.Member {
	return supervision.Member{
		ID:                  m.ID,
		Type:                supervision.MemberType(m.Type),
		Actor:               actorFromColumns(m.ActorKind, m.PersonID, m.FirstName, m.LastName, m.Email, m.Institute, m.City, m.Country, m.Language),
		IsDoctor:            m.IsDoctor,
		IsReferencePromoter: m.IsReferencePromoter,
		Signature:           signatureFromColumns(m.SignatureState, m.SignedAt, m.Comment, m.InternalComment, m.RejectionReason, m.SignaturePDF),
	}
}

// FromDomain populates the member row from a domain member
func (m *SupervisionMemberModel) FromDomain(groupID uuid.UUID, member supervision.Member) {
	m.ID = member.ID
	m.GroupID = groupID
	m.Type = string(member.Type)

	m.ActorKind = string(member.Actor.Kind)
	m.PersonID = member.Actor.PersonID
	m.FirstName = member.Actor.FirstName
	m.LastName = member.Actor.LastName
	m.Email = member.Actor.Email
	m.Institute = member.Actor.Institute
	m.City = member.Actor.City
	m.Country = member.Actor.Country
	m.Language = member.Actor.Language

	m.IsDoctor = member.IsDoctor
	m.IsReferencePromoter = member.IsReferencePromoter

	m.SignatureState = string(member.Signature.State)
	m.SignedAt = member.Signature.SignedAt
	m.Comment = member.Signature.Comment
	m.InternalComment = member.Signature.InternalComment
	m.RejectionReason = member.Signature.RejectionReason
	m.SignaturePDF = refsToArray(member.Signature.PDF)
}

// ToDomain converts the model to the domain aggregate
func (m *SupervisionGroupModel) ToDomain() *supervision.Group {
	members := make([]supervision.Member, len(m.Members))
	for i := range m.Members {
		members[i] = m.Members[i].ToDomain()
	}
	g := &supervision.Group{
		TrajectoryID: m.TrajectoryID,
		State:        supervision.GroupState(m.State),
		Members:      members,
	}
	m.PopulateAggregateRoot(&g.BaseAggregateRoot)
	return g
}

// FromDomain populates the model from the domain aggregate
func (m *SupervisionGroupModel) FromDomain(g *supervision.Group) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.TrajectoryID = g.TrajectoryID
	m.State = string(g.State)
	m.Members = make([]SupervisionMemberModel, len(g.Members))
	for i, member := range g.Members {
		m.Members[i].FromDomain(g.ID, member)
	}
}
