package valueobject

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureCycle(t *testing.T) {
	now := time.Now()

	t.Run("starts not invited", func(t *testing.T) {
		s := NewSignature()
		assert.Equal(t, SignatureNotInvited, s.State)
		assert.False(t, s.State.IsSettled())
	})

	t.Run("invite is idempotent", func(t *testing.T) {
		s := NewSignature()
		s.Invite()
		assert.Equal(t, SignatureInvited, s.State)
		s.Invite()
		assert.Equal(t, SignatureInvited, s.State)
	})

	t.Run("approve only from invited", func(t *testing.T) {
		s := NewSignature()
		assert.False(t, s.Approve("", "", now))

		s.Invite()
		require.True(t, s.Approve("fine by me", "note", now))
		assert.Equal(t, SignatureApproved, s.State)
		assert.Equal(t, "fine by me", s.Comment)
		require.NotNil(t, s.SignedAt)

		assert.False(t, s.Approve("again", "", now))
	})

	t.Run("decline only from invited", func(t *testing.T) {
		s := NewSignature()
		assert.False(t, s.Decline("busy", "", "", now))

		s.Invite()
		require.True(t, s.Decline("busy", "", "", now))
		assert.Equal(t, SignatureDeclined, s.State)
		assert.Equal(t, "busy", s.RejectionReason)
	})

	t.Run("invite after settlement changes nothing", func(t *testing.T) {
		s := NewSignature()
		s.Invite()
		require.True(t, s.Decline("busy", "", "", now))
		s.Invite()
		assert.Equal(t, SignatureDeclined, s.State)
	})

	t.Run("approve by PDF from any unsettled state", func(t *testing.T) {
		s := NewSignature()
		require.True(t, s.ApproveByPDF(DocumentRefs{"pdf"}, now))
		assert.Equal(t, SignatureApproved, s.State)
		assert.Equal(t, DocumentRefs{"pdf"}, s.PDF)

		settled := NewSignature()
		settled.Invite()
		require.True(t, settled.Decline("busy", "", "", now))
		assert.False(t, settled.ApproveByPDF(DocumentRefs{"pdf"}, now))
	})

	t.Run("approved signature helper", func(t *testing.T) {
		s := ApprovedSignature(now)
		assert.Equal(t, SignatureApproved, s.State)
		require.NotNil(t, s.SignedAt)
		assert.Empty(t, s.PDF)
		assert.Empty(t, s.RejectionReason)
	})
}

func TestActorIdentity(t *testing.T) {
	t.Run("internal actors match on person ID", func(t *testing.T) {
		personID := uuid.New()
		a := NewInternalActor(personID, "Marie", "Curie", "mc@uclouvain.be")
		b := NewInternalActor(personID, "M.", "Curie", "other@uclouvain.be")
		assert.True(t, a.SameIdentity(b))
	})

	t.Run("external actors match on email case-insensitively", func(t *testing.T) {
		a := NewExternalActor("Ada", "Lovelace", "ada@example.org", "", "", "", "")
		b := NewExternalActor("A.", "Lovelace", "ADA@example.org", "", "", "", "")
		assert.True(t, a.SameIdentity(b))
		assert.True(t, a.IsExternal())
	})

	t.Run("kinds never match each other", func(t *testing.T) {
		internal := NewInternalActor(uuid.New(), "Ada", "Lovelace", "ada@example.org")
		external := NewExternalActor("Ada", "Lovelace", "ada@example.org", "", "", "", "")
		assert.False(t, internal.SameIdentity(external))
	})

	t.Run("full name", func(t *testing.T) {
		a := NewExternalActor("Ada", "Lovelace", "ada@example.org", "", "", "", "")
		assert.Equal(t, "Ada Lovelace", a.FullName())
	})
}
