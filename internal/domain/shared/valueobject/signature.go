package valueobject

import (
	"time"
)

// SignatureState is the per-member signature state
type SignatureState string

const (
	SignatureNotInvited SignatureState = "NOT_INVITED"
	SignatureInvited    SignatureState = "INVITED"
	SignatureApproved   SignatureState = "APPROVED"
	SignatureDeclined   SignatureState = "DECLINED"
)

// IsValid checks if the state is a valid SignatureState
func (s SignatureState) IsValid() bool {
	switch s {
	case SignatureNotInvited, SignatureInvited, SignatureApproved, SignatureDeclined:
		return true
	}
	return false
}

// String returns the string representation of SignatureState
func (s SignatureState) String() string {
	return string(s)
}

// IsSettled reports whether the signatory already answered
func (s SignatureState) IsSettled() bool {
	return s == SignatureApproved || s == SignatureDeclined
}

// Signature tracks one member's answer to a signing invitation.
// The same cycle applies to supervision group members and jury members.
type Signature struct {
	State           SignatureState
	SignedAt        *time.Time
	Comment         string
	InternalComment string
	RejectionReason string
	PDF             DocumentRefs
}

// NewSignature returns a signature in the initial NOT_INVITED state
func NewSignature() Signature {
	return Signature{State: SignatureNotInvited}
}

// ApprovedSignature returns a signature already settled as APPROVED,
// used when duplicating an admission supervision group whose members
// signed during admission
func ApprovedSignature(at time.Time) Signature {
	return Signature{State: SignatureApproved, SignedAt: &at}
}

// Invite moves NOT_INVITED to INVITED; inviting an already invited or
// settled signature is a no-op so the operation stays idempotent
func (s *Signature) Invite() {
	if s.State == SignatureNotInvited {
		s.State = SignatureInvited
	}
}

// CanApprove reports whether a plain approval is allowed
func (s Signature) CanApprove() bool {
	return s.State == SignatureInvited
}

// Approve settles an INVITED signature as APPROVED
func (s *Signature) Approve(comment, internalComment string, at time.Time) bool {
	if !s.CanApprove() {
		return false
	}
	s.State = SignatureApproved
	s.Comment = comment
	s.InternalComment = internalComment
	s.SignedAt = &at
	return true
}

// Decline settles an INVITED signature as DECLINED and records the reason
func (s *Signature) Decline(reason, comment, internalComment string, at time.Time) bool {
	if s.State != SignatureInvited {
		return false
	}
	s.State = SignatureDeclined
	s.RejectionReason = reason
	s.Comment = comment
	s.InternalComment = internalComment
	s.SignedAt = &at
	return true
}

// ApproveByPDF records an uploaded approval document and settles the
// signature as APPROVED; allowed from NOT_INVITED as well as INVITED
func (s *Signature) ApproveByPDF(pdf DocumentRefs, at time.Time) bool {
	if s.State.IsSettled() {
		return false
	}
	s.State = SignatureApproved
	s.PDF = pdf
	s.SignedAt = &at
	return true
}
