package jury

import (
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

// Role of a jury member
type Role string

const (
	RolePresident Role = "PRESIDENT"
	RoleSecretary Role = "SECRETARY"
	RoleMember    Role = "MEMBER"
	RoleExternal  Role = "EXTERNAL"
)

// IsValid checks if the value is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RolePresident, RoleSecretary, RoleMember, RoleExternal:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// isRebalancing reports whether a role change only shuffles the
// president/secretary/member triangle; such changes stay allowed after
// the jury was submitted
func isRebalancing(from, to Role) bool {
	internal := func(r Role) bool {
		return r == RolePresident || r == RoleSecretary || r == RoleMember
	}
	return internal(from) && internal(to)
}

// Member is one jury member: a promoter reference, a person reference, or
// an inline external identity
type Member struct {
	ID   uuid.UUID
	Role Role

	PromoterID *uuid.UUID
	Actor      valueobject.Actor

	Title            string
	Institution      string
	OtherInstitution string
	NonDoctorReason  string
	Gender           string

	Signature valueobject.Signature
}

// Jury is the defence jury of a trajectory
type Jury struct {
	shared.BaseAggregateRoot
	TrajectoryID uuid.UUID
	Members      []Member
}

// NewJury creates an empty jury for a trajectory
func NewJury(trajectoryID uuid.UUID) (*Jury, error) {
	if trajectoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRAJECTORY", "Trajectory ID cannot be empty")
	}
	return &Jury{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrajectoryID:      trajectoryID,
		Members:           make([]Member, 0),
	}, nil
}

// AddMember appends a member; at most one president and one secretary may
// exist at any time
func (j *Jury) AddMember(role Role, actor valueobject.Actor, promoterID *uuid.UUID, title, institution, otherInstitution, nonDoctorReason, gender string) (*Member, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown jury role")
	}
	if err := j.checkSingleRole(role, uuid.Nil); err != nil {
		return nil, err
	}
	for _, m := range j.Members {
		if m.Actor.SameIdentity(actor) {
			return nil, shared.NewDomainError("MEMBER_ALREADY_PRESENT", "This person is already part of the jury")
		}
	}
	member := Member{
		ID:               uuid.New(),
		Role:             role,
		PromoterID:       promoterID,
		Actor:            actor,
		Title:            title,
		Institution:      institution,
		OtherInstitution: otherInstitution,
		NonDoctorReason:  nonDoctorReason,
		Gender:           gender,
		Signature:        valueobject.NewSignature(),
	}
	j.Members = append(j.Members, member)
	j.UpdatedAt = time.Now()
	return &member, nil
}

// ModifyMember updates the descriptive fields of a member
func (j *Jury) ModifyMember(memberID uuid.UUID, title, institution, otherInstitution, nonDoctorReason, gender string) error {
	m := j.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	m.Title = title
	m.Institution = institution
	m.OtherInstitution = otherInstitution
	m.NonDoctorReason = nonDoctorReason
	m.Gender = gender
	j.UpdatedAt = time.Now()
	return nil
}

// RemoveMember removes a member. submitted must be true once the
// trajectory moved past JURY_SUBMITTED; removal is then refused.
func (j *Jury) RemoveMember(memberID uuid.UUID, submitted bool) error {
	if submitted {
		return shared.NewDomainError("JURY_SUBMITTED", "Members cannot be removed after jury submission")
	}
	for i, m := range j.Members {
		if m.ID == memberID {
			j.Members = append(j.Members[:i], j.Members[i+1:]...)
			j.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// ChangeRole moves a member to another role. After jury submission only
// president/secretary/member rebalancing is allowed.
func (j *Jury) ChangeRole(memberID uuid.UUID, role Role, submitted bool) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown jury role")
	}
	m := j.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if submitted && !isRebalancing(m.Role, role) {
		return shared.NewDomainError("JURY_SUBMITTED", "Only president, secretary and member roles can be rebalanced after submission")
	}
	if err := j.checkSingleRole(role, memberID); err != nil {
		return err
	}
	m.Role = role
	j.UpdatedAt = time.Now()
	return nil
}

// RequestSignatures invites every NOT_INVITED member to sign
func (j *Jury) RequestSignatures() int {
	invited := 0
	for i := range j.Members {
		if j.Members[i].Signature.State == valueobject.SignatureNotInvited {
			invited++
		}
		j.Members[i].Signature.Invite()
	}
	j.UpdatedAt = time.Now()
	return invited
}

// Approve settles an invited member's signature as APPROVED
func (j *Jury) Approve(memberID uuid.UUID, comment, internalComment string) error {
	m := j.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if !m.Signature.Approve(comment, internalComment, time.Now()) {
		return shared.NewDomainError("INVALID_SIGNATURE_STATE", "Only an invited member can approve")
	}
	j.UpdatedAt = time.Now()
	return nil
}

// ApproveByPDF records an uploaded approval and settles the signature
func (j *Jury) ApproveByPDF(memberID uuid.UUID, pdf valueobject.DocumentRefs) error {
	if pdf.IsEmpty() {
		return shared.NewDomainError("PDF_REQUIRED", "An approval document is required")
	}
	m := j.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if !m.Signature.ApproveByPDF(pdf, time.Now()) {
		return shared.NewDomainError("INVALID_SIGNATURE_STATE", "This member already answered")
	}
	j.UpdatedAt = time.Now()
	return nil
}

// Refuse settles an invited member's signature as DECLINED
func (j *Jury) Refuse(memberID uuid.UUID, reason, comment, internalComment string) error {
	if reason == "" {
		return shared.NewDomainError("REASON_REQUIRED", "A rejection reason is required")
	}
	m := j.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if !m.Signature.Decline(reason, comment, internalComment, time.Now()) {
		return shared.NewDomainError("INVALID_SIGNATURE_STATE", "Only an invited member can refuse")
	}
	j.UpdatedAt = time.Now()
	return nil
}

// AllApproved reports whether every member signed APPROVED
func (j *Jury) AllApproved() bool {
	if len(j.Members) == 0 {
		return false
	}
	for _, m := range j.Members {
		if m.Signature.State != valueobject.SignatureApproved {
			return false
		}
	}
	return true
}

// Member returns a member by ID, or nil
func (j *Jury) Member(memberID uuid.UUID) *Member {
	return j.member(memberID)
}

func (j *Jury) member(memberID uuid.UUID) *Member {
	for i := range j.Members {
		if j.Members[i].ID == memberID {
			return &j.Members[i]
		}
	}
	return nil
}

func (j *Jury) checkSingleRole(role Role, exceptID uuid.UUID) error {
	if role != RolePresident && role != RoleSecretary {
		return nil
	}
	for _, m := range j.Members {
		if m.Role == role && m.ID != exceptID {
			return shared.NewDomainError("ROLE_TAKEN", "The jury already has a "+string(role))
		}
	}
	return nil
}
