package supervision

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

// MemberType distinguishes promoters from accompanying-committee members
type MemberType string

const (
	MemberPromoter MemberType = "PROMOTER"
	MemberCA       MemberType = "CA_MEMBER"
)

// GroupState is the signature sub-state of the whole group
type GroupState string

const (
	GroupInProgress        GroupState = "IN_PROGRESS"
	GroupSigningInProgress GroupState = "SIGNING_IN_PROGRESS"
)

// Member is one participant of the supervision group
type Member struct {
	ID                  uuid.UUID
	Type                MemberType
	Actor               valueobject.Actor
	IsDoctor            bool
	IsReferencePromoter bool
	Signature           valueobject.Signature
}

// Group is the supervision group aggregate, 1:1 with a trajectory.
// Members are kept ordered by last name.
type Group struct {
	shared.BaseAggregateRoot
	TrajectoryID uuid.UUID
	State        GroupState
	Members      []Member
}

// NewGroup creates an empty supervision group for a trajectory
func NewGroup(trajectoryID uuid.UUID) (*Group, error) {
	if trajectoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRAJECTORY", "Trajectory ID cannot be empty")
	}
	return &Group{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TrajectoryID:      trajectoryID,
		State:             GroupInProgress,
		Members:           make([]Member, 0),
	}, nil
}

// IsLocked reports whether membership is frozen because signatures are
// being collected
func (g *Group) IsLocked() bool {
	return g.State == GroupSigningInProgress
}

// addMember appends a member after the uniqueness check and re-sorts
func (g *Group) addMember(memberType MemberType, actor valueobject.Actor, isDoctor bool) (*Member, error) {
	if g.IsLocked() {
		return nil, shared.ErrGroupLocked
	}
	for _, m := range g.Members {
		if m.Actor.SameIdentity(actor) {
			return nil, shared.NewDomainError("MEMBER_ALREADY_PRESENT", "This person is already part of the supervision group")
		}
	}
	member := Member{
		ID:        uuid.New(),
		Type:      memberType,
		Actor:     actor,
		IsDoctor:  isDoctor,
		Signature: valueobject.NewSignature(),
	}
	g.Members = append(g.Members, member)
	g.sortMembers()
	g.UpdatedAt = time.Now()
	return &member, nil
}

// IdentifyPromoter appends a promoter with a NOT_INVITED signature.
// The caller resolves internal actors against the person translator first.
func (g *Group) IdentifyPromoter(actor valueobject.Actor, isDoctor bool) (*Member, error) {
	return g.addMember(MemberPromoter, actor, isDoctor)
}

// IdentifyCAMember appends an accompanying-committee member
func (g *Group) IdentifyCAMember(actor valueobject.Actor, isDoctor bool) (*Member, error) {
	return g.addMember(MemberCA, actor, isDoctor)
}

// AdoptMember appends a member duplicated from an admission supervision
// panel. The signature arrives already APPROVED; rejection reasons, PDFs
// and internal comments are not carried over.
func (g *Group) AdoptMember(memberType MemberType, actor valueobject.Actor, isDoctor, isReference bool, signedAt time.Time) (*Member, error) {
	if isReference && memberType != MemberPromoter {
		return nil, shared.NewDomainError("NOT_A_PROMOTER", "Only a promoter can be the reference promoter")
	}
	for _, m := range g.Members {
		if m.Actor.SameIdentity(actor) {
			return nil, shared.NewDomainError("MEMBER_ALREADY_PRESENT", "This person is already part of the supervision group")
		}
	}
	member := Member{
		ID:                  uuid.New(),
		Type:                memberType,
		Actor:               actor,
		IsDoctor:            isDoctor,
		IsReferencePromoter: isReference,
		Signature:           valueobject.ApprovedSignature(signedAt),
	}
	if isReference {
		for i := range g.Members {
			g.Members[i].IsReferencePromoter = false
		}
	}
	g.Members = append(g.Members, member)
	g.sortMembers()
	g.UpdatedAt = time.Now()
	return &member, nil
}

// RemovePromoter removes a promoter. pastAdmission must be true when the
// trajectory already moved beyond ADMITTED; in that case the group may not
// be left without a promoter.
func (g *Group) RemovePromoter(memberID uuid.UUID, pastAdmission bool) error {
	return g.removeMember(memberID, MemberPromoter, pastAdmission)
}

// RemoveCAMember removes an accompanying-committee member
func (g *Group) RemoveCAMember(memberID uuid.UUID, pastAdmission bool) error {
	return g.removeMember(memberID, MemberCA, pastAdmission)
}

func (g *Group) removeMember(memberID uuid.UUID, memberType MemberType, pastAdmission bool) error {
	if g.IsLocked() {
		return shared.ErrGroupLocked
	}
	idx := -1
	for i, m := range g.Members {
		if m.ID == memberID && m.Type == memberType {
			idx = i
			break
		}
	}
	if idx < 0 {
		return shared.ErrNotFound
	}
	remaining := make([]Member, 0, len(g.Members)-1)
	remaining = append(remaining, g.Members[:idx]...)
	remaining = append(remaining, g.Members[idx+1:]...)

	if pastAdmission && memberType == MemberPromoter && countByType(remaining, MemberPromoter) == 0 {
		return shared.NewDomainError("LAST_PROMOTER", "The supervision group must keep at least one promoter")
	}

	g.Members = remaining
	g.UpdatedAt = time.Now()
	return nil
}

// DesignateReferencePromoter marks one promoter as the reference promoter
// and clears the flag on any other member
func (g *Group) DesignateReferencePromoter(memberID uuid.UUID) error {
	if g.IsLocked() {
		return shared.ErrGroupLocked
	}
	target := g.member(memberID)
	if target == nil {
		return shared.ErrNotFound
	}
	if target.Type != MemberPromoter {
		return shared.NewDomainError("NOT_A_PROMOTER", "Only a promoter can be the reference promoter")
	}
	for i := range g.Members {
		g.Members[i].IsReferencePromoter = g.Members[i].ID == memberID
	}
	g.UpdatedAt = time.Now()
	return nil
}

// ReferencePromoter returns the reference promoter, or nil
func (g *Group) ReferencePromoter() *Member {
	for i := range g.Members {
		if g.Members[i].IsReferencePromoter {
			return &g.Members[i]
		}
	}
	return nil
}

// InviteToSign moves every NOT_INVITED member to INVITED and switches the
// group into the signing sub-state. Idempotent for already invited or
// settled members.
func (g *Group) InviteToSign() {
	for i := range g.Members {
		g.Members[i].Signature.Invite()
	}
	g.State = GroupSigningInProgress
	g.UpdatedAt = time.Now()
}

// Approve settles an invited member's signature as APPROVED
func (g *Group) Approve(memberID uuid.UUID, comment, internalComment string) error {
	m := g.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if !m.Signature.Approve(comment, internalComment, time.Now()) {
		return shared.NewDomainError("INVALID_SIGNATURE_STATE", "Only an invited member can approve")
	}
	g.UpdatedAt = time.Now()
	return nil
}

// Decline refuses an invited member's signature. A refusal reopens the
// round: every signature returns to NOT_INVITED and the group unlocks so
// the membership can be reworked before a new request. The rejection
// reason stays recorded on the declining member.
func (g *Group) Decline(memberID uuid.UUID, reason, comment, internalComment string) error {
	if reason == "" {
		return shared.NewDomainError("REASON_REQUIRED", "A rejection reason is required")
	}
	m := g.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if !m.Signature.Decline(reason, comment, internalComment, time.Now()) {
		return shared.NewDomainError("INVALID_SIGNATURE_STATE", "Only an invited member can decline")
	}
	for i := range g.Members {
		sig := valueobject.NewSignature()
		if g.Members[i].ID == memberID {
			sig.RejectionReason = reason
			sig.Comment = comment
			sig.InternalComment = internalComment
		}
		g.Members[i].Signature = sig
	}
	g.State = GroupInProgress
	g.UpdatedAt = time.Now()
	return nil
}

// ApproveByPDF records an uploaded approval and settles the signature,
// whatever its previous unsettled state
func (g *Group) ApproveByPDF(memberID uuid.UUID, pdf valueobject.DocumentRefs) error {
	if pdf.IsEmpty() {
		return shared.NewDomainError("PDF_REQUIRED", "An approval document is required")
	}
	m := g.member(memberID)
	if m == nil {
		return shared.ErrNotFound
	}
	if !m.Signature.ApproveByPDF(pdf, time.Now()) {
		return shared.NewDomainError("INVALID_SIGNATURE_STATE", "This member already answered")
	}
	g.UpdatedAt = time.Now()
	return nil
}

// VerifySignatories checks the group is ready for a signature round:
// at least one promoter, and at least one external promoter when the
// trajectory has a cotutelle
func (g *Group) VerifySignatories(hasCotutelle bool) error {
	if countByType(g.Members, MemberPromoter) == 0 {
		return shared.NewDomainError("PROMOTER_REQUIRED", "At least one promoter is required")
	}
	if hasCotutelle && !g.hasExternalPromoter() {
		return shared.NewDomainError("EXTERNAL_PROMOTER_REQUIRED", "A cotutelle requires at least one external promoter")
	}
	return nil
}

// VerifySignaturesNotSent fails when any signature already left the
// NOT_INVITED state
func (g *Group) VerifySignaturesNotSent() error {
	for _, m := range g.Members {
		if m.Signature.State != valueobject.SignatureNotInvited {
			return shared.NewDomainError("SIGNATURES_ALREADY_SENT", "Signatures have already been requested")
		}
	}
	return nil
}

// AllApproved reports whether every member signed APPROVED
func (g *Group) AllApproved() bool {
	if len(g.Members) == 0 {
		return false
	}
	for _, m := range g.Members {
		if m.Signature.State != valueobject.SignatureApproved {
			return false
		}
	}
	return true
}

// Promoters returns the promoter members
func (g *Group) Promoters() []Member {
	return filterByType(g.Members, MemberPromoter)
}

// CAMembers returns the accompanying-committee members
func (g *Group) CAMembers() []Member {
	return filterByType(g.Members, MemberCA)
}

// Member returns a member by ID, or nil
func (g *Group) Member(memberID uuid.UUID) *Member {
	return g.member(memberID)
}

func (g *Group) member(memberID uuid.UUID) *Member {
	for i := range g.Members {
		if g.Members[i].ID == memberID {
			return &g.Members[i]
		}
	}
	return nil
}

func (g *Group) hasExternalPromoter() bool {
	for _, m := range g.Members {
		if m.Type == MemberPromoter && m.Actor.IsExternal() {
			return true
		}
	}
	return false
}

func (g *Group) sortMembers() {
	sort.SliceStable(g.Members, func(i, j int) bool {
		return g.Members[i].Actor.LastName < g.Members[j].Actor.LastName
	})
}

func countByType(members []Member, t MemberType) int {
	n := 0
	for _, m := range members {
		if m.Type == t {
			n++
		}
	}
	return n
}

func filterByType(members []Member, t MemberType) []Member {
	out := make([]Member, 0)
	for _, m := range members {
		if m.Type == t {
			out = append(out, m)
		}
	}
	return out
}
