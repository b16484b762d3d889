package supervision

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

func newTestGroup(t *testing.T) *Group {
	t.Helper()
	g, err := NewGroup(uuid.New())
	require.NoError(t, err)
	return g
}

func TestNewGroup(t *testing.T) {
	t.Run("creates empty group in progress", func(t *testing.T) {
		g := newTestGroup(t)
		assert.Equal(t, GroupInProgress, g.State)
		assert.Empty(t, g.Members)
		assert.False(t, g.IsLocked())
	})

	t.Run("fails with nil trajectory", func(t *testing.T) {
		_, err := NewGroup(uuid.Nil)
		require.Error(t, err)
	})
}

func TestIdentifyMembers(t *testing.T) {
	t.Run("adds promoter with blank signature", func(t *testing.T) {
		g := newTestGroup(t)
		m, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)
		assert.Equal(t, MemberPromoter, m.Type)
		assert.Equal(t, valueobject.SignatureNotInvited, m.Signature.State)
		assert.False(t, m.IsReferencePromoter)
	})

	t.Run("rejects the same person twice", func(t *testing.T) {
		g := newTestGroup(t)
		personID := uuid.New()
		_, err := g.IdentifyPromoter(valueobject.NewInternalActor(personID, "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)
		_, err = g.IdentifyCAMember(valueobject.NewInternalActor(personID, "Marie", "Curie", "marie@uclouvain.be"), true)
		require.Error(t, err)
	})

	t.Run("external members match on email case-insensitively", func(t *testing.T) {
		g := newTestGroup(t)
		_, err := g.IdentifyCAMember(valueobject.NewExternalActor("Ada", "Lovelace", "ada@example.org", "Analytical Society", "London", "UK", "EN"), true)
		require.NoError(t, err)
		_, err = g.IdentifyCAMember(valueobject.NewExternalActor("Ada", "Lovelace", "ADA@Example.org", "", "", "", ""), true)
		require.Error(t, err)
	})

	t.Run("members stay sorted by last name", func(t *testing.T) {
		g := newTestGroup(t)
		_, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Blaise", "Pascal", "bp@uclouvain.be"), true)
		require.NoError(t, err)
		_, err = g.IdentifyCAMember(valueobject.NewInternalActor(uuid.New(), "Niels", "Bohr", "nb@uclouvain.be"), true)
		require.NoError(t, err)
		require.Len(t, g.Members, 2)
		assert.Equal(t, "Bohr", g.Members[0].Actor.LastName)
		assert.Equal(t, "Pascal", g.Members[1].Actor.LastName)
	})

	t.Run("rejected while signing in progress", func(t *testing.T) {
		g := newTestGroup(t)
		_, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)
		g.InviteToSign()

		_, err = g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Pierre", "Curie", "pierre@uclouvain.be"), true)
		assert.ErrorIs(t, err, shared.ErrGroupLocked)
	})
}

func TestRemoveMembers(t *testing.T) {
	t.Run("removes a CA member", func(t *testing.T) {
		g := newTestGroup(t)
		m, err := g.IdentifyCAMember(valueobject.NewInternalActor(uuid.New(), "Niels", "Bohr", "nb@uclouvain.be"), true)
		require.NoError(t, err)
		require.NoError(t, g.RemoveCAMember(m.ID, false))
		assert.Empty(t, g.Members)
	})

	t.Run("keeps the last promoter once past admission", func(t *testing.T) {
		g := newTestGroup(t)
		m, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)

		err = g.RemovePromoter(m.ID, true)
		require.Error(t, err)
		assert.Len(t, g.Members, 1)

		require.NoError(t, g.RemovePromoter(m.ID, false))
		assert.Empty(t, g.Members)
	})

	t.Run("rejected while signing in progress", func(t *testing.T) {
		g := newTestGroup(t)
		m, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)
		g.InviteToSign()
		assert.ErrorIs(t, g.RemovePromoter(m.ID, false), shared.ErrGroupLocked)
	})

	t.Run("unknown member", func(t *testing.T) {
		g := newTestGroup(t)
		assert.ErrorIs(t, g.RemoveCAMember(uuid.New(), false), shared.ErrNotFound)
	})
}

func TestDesignateReferencePromoter(t *testing.T) {
	t.Run("moves the flag to a single promoter", func(t *testing.T) {
		g := newTestGroup(t)
		p1, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)
		p2, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Pierre", "Curie", "pierre@uclouvain.be"), true)
		require.NoError(t, err)

		require.NoError(t, g.DesignateReferencePromoter(p1.ID))
		require.NoError(t, g.DesignateReferencePromoter(p2.ID))

		ref := g.ReferencePromoter()
		require.NotNil(t, ref)
		assert.Equal(t, p2.ID, ref.ID)
		assert.False(t, g.Member(p1.ID).IsReferencePromoter)
	})

	t.Run("refuses a CA member", func(t *testing.T) {
		g := newTestGroup(t)
		m, err := g.IdentifyCAMember(valueobject.NewInternalActor(uuid.New(), "Niels", "Bohr", "nb@uclouvain.be"), true)
		require.NoError(t, err)
		require.Error(t, g.DesignateReferencePromoter(m.ID))
	})
}

func TestSignatureWorkflow(t *testing.T) {
	setup := func(t *testing.T) (*Group, *Member, *Member) {
		g := newTestGroup(t)
		p, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)
		ca, err := g.IdentifyCAMember(valueobject.NewInternalActor(uuid.New(), "Niels", "Bohr", "nb@uclouvain.be"), true)
		require.NoError(t, err)
		return g, p, ca
	}

	t.Run("invite moves everyone to INVITED and locks the group", func(t *testing.T) {
		g, p, ca := setup(t)
		g.InviteToSign()
		assert.True(t, g.IsLocked())
		assert.Equal(t, valueobject.SignatureInvited, g.Member(p.ID).Signature.State)
		assert.Equal(t, valueobject.SignatureInvited, g.Member(ca.ID).Signature.State)
	})

	t.Run("invite is idempotent for settled members", func(t *testing.T) {
		g, p, _ := setup(t)
		g.InviteToSign()
		require.NoError(t, g.Approve(p.ID, "ok", ""))
		g.InviteToSign()
		assert.Equal(t, valueobject.SignatureApproved, g.Member(p.ID).Signature.State)
	})

	t.Run("approve requires an invitation", func(t *testing.T) {
		g, p, _ := setup(t)
		require.Error(t, g.Approve(p.ID, "", ""))
	})

	t.Run("decline reopens the round and keeps the reason", func(t *testing.T) {
		g, p, ca := setup(t)
		g.InviteToSign()
		require.Error(t, g.Decline(p.ID, "", "", ""))
		require.NoError(t, g.Decline(p.ID, "conflict of interest", "", "internal note"))

		assert.False(t, g.IsLocked())
		require.NoError(t, g.VerifySignaturesNotSent())
		assert.Equal(t, valueobject.SignatureNotInvited, g.Member(p.ID).Signature.State)
		assert.Equal(t, valueobject.SignatureNotInvited, g.Member(ca.ID).Signature.State)
		assert.Equal(t, "conflict of interest", g.Member(p.ID).Signature.RejectionReason)
	})

	t.Run("settled signatures stay settled", func(t *testing.T) {
		g, p, _ := setup(t)
		g.InviteToSign()
		require.NoError(t, g.Approve(p.ID, "", ""))
		require.Error(t, g.Decline(p.ID, "too late", "", ""))
	})

	t.Run("approve by PDF works before invitation", func(t *testing.T) {
		g, p, _ := setup(t)
		require.Error(t, g.ApproveByPDF(p.ID, nil))
		require.NoError(t, g.ApproveByPDF(p.ID, valueobject.DocumentRefs{"token-1"}))
		sig := g.Member(p.ID).Signature
		assert.Equal(t, valueobject.SignatureApproved, sig.State)
		assert.Equal(t, valueobject.DocumentRefs{"token-1"}, sig.PDF)
	})

	t.Run("all approved", func(t *testing.T) {
		g, p, ca := setup(t)
		assert.False(t, g.AllApproved())
		g.InviteToSign()
		require.NoError(t, g.Approve(p.ID, "", ""))
		assert.False(t, g.AllApproved())
		require.NoError(t, g.Approve(ca.ID, "", ""))
		assert.True(t, g.AllApproved())
	})
}

func TestVerifySignatories(t *testing.T) {
	t.Run("requires at least one promoter", func(t *testing.T) {
		g := newTestGroup(t)
		require.Error(t, g.VerifySignatories(false))
	})

	t.Run("cotutelle requires an external promoter", func(t *testing.T) {
		g := newTestGroup(t)
		_, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
		require.NoError(t, err)

		require.NoError(t, g.VerifySignatories(false))
		require.Error(t, g.VerifySignatories(true))

		_, err = g.IdentifyPromoter(valueobject.NewExternalActor("Max", "Planck", "mp@example.org", "KWG", "Berlin", "DE", "DE"), true)
		require.NoError(t, err)
		require.NoError(t, g.VerifySignatories(true))
	})
}

func TestVerifySignaturesNotSent(t *testing.T) {
	g := newTestGroup(t)
	_, err := g.IdentifyPromoter(valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true)
	require.NoError(t, err)

	require.NoError(t, g.VerifySignaturesNotSent())
	g.InviteToSign()
	require.Error(t, g.VerifySignaturesNotSent())
}

func TestAdoptMember(t *testing.T) {
	t.Run("adopted member arrives approved", func(t *testing.T) {
		g := newTestGroup(t)
		signedAt := time.Now().Add(-time.Hour)
		m, err := g.AdoptMember(MemberPromoter, valueobject.NewInternalActor(uuid.New(), "Marie", "Curie", "marie@uclouvain.be"), true, true, signedAt)
		require.NoError(t, err)
		assert.Equal(t, valueobject.SignatureApproved, m.Signature.State)
		assert.True(t, m.IsReferencePromoter)
		require.NotNil(t, m.Signature.SignedAt)
		assert.Empty(t, m.Signature.RejectionReason)
		assert.Empty(t, m.Signature.PDF)
	})

	t.Run("reference flag only on promoters", func(t *testing.T) {
		g := newTestGroup(t)
		_, err := g.AdoptMember(MemberCA, valueobject.NewInternalActor(uuid.New(), "Niels", "Bohr", "nb@uclouvain.be"), true, true, time.Now())
		require.Error(t, err)
	})
}
