package confirmation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osis/backend/internal/domain/shared"
	"github.com/osis/backend/internal/domain/shared/valueobject"
)

func newTestPaper(t *testing.T, deadline time.Time) *Paper {
	t.Helper()
	p, err := NewPaper(uuid.New(), deadline)
	require.NoError(t, err)
	return p
}

func TestNewPaper(t *testing.T) {
	t.Run("creates active paper", func(t *testing.T) {
		deadline := time.Now().AddDate(2, 0, 0)
		p := newTestPaper(t, deadline)
		assert.True(t, p.Active)
		assert.Equal(t, deadline, p.DeadlineDate)
		assert.Nil(t, p.TakenDate)
	})

	t.Run("fails without trajectory", func(t *testing.T) {
		_, err := NewPaper(uuid.Nil, time.Now())
		require.Error(t, err)
	})

	t.Run("fails without deadline", func(t *testing.T) {
		_, err := NewPaper(uuid.New(), time.Time{})
		require.Error(t, err)
	})
}

func TestSubmit(t *testing.T) {
	deadline := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	report := valueobject.DocumentRefs{"report-token"}

	t.Run("records date and documents", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		taken := deadline.AddDate(0, -1, 0)
		require.NoError(t, p.Submit(taken, report, nil, nil))
		require.NotNil(t, p.TakenDate)
		assert.Equal(t, taken, *p.TakenDate)
		assert.Equal(t, report, p.ResearchReport)
	})

	t.Run("rejects a date past the deadline", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		err := p.Submit(deadline.AddDate(0, 0, 1), report, nil, nil)
		assert.ErrorIs(t, err, shared.ErrDateOutOfRange)
		assert.Nil(t, p.TakenDate)
	})

	t.Run("extended deadline widens the window", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		extended := deadline.AddDate(0, 6, 0)
		require.NoError(t, p.RequestExtension(extended, "maternity leave", nil))
		assert.Equal(t, extended, p.EffectiveDeadline())

		require.NoError(t, p.Submit(deadline.AddDate(0, 3, 0), report, nil, nil))
	})

	t.Run("requires a taken date", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		require.Error(t, p.Submit(time.Time{}, report, nil, nil))
	})

	t.Run("inactive paper cannot be submitted", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		p.Deactivate()
		require.Error(t, p.Submit(deadline.AddDate(0, -1, 0), report, nil, nil))
	})
}

func TestRequestExtension(t *testing.T) {
	deadline := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("requires a later deadline", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		err := p.RequestExtension(deadline.AddDate(0, -1, 0), "because", nil)
		assert.ErrorIs(t, err, shared.ErrDateOutOfRange)

		err = p.RequestExtension(deadline, "because", nil)
		assert.ErrorIs(t, err, shared.ErrDateOutOfRange)
	})

	t.Run("requires a justification", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		err := p.RequestExtension(deadline.AddDate(0, 6, 0), "", nil)
		require.Error(t, err)
	})

	t.Run("records the extension", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		letter := valueobject.DocumentRefs{"letter-token"}
		extended := deadline.AddDate(0, 6, 0)
		require.NoError(t, p.RequestExtension(extended, "maternity leave", letter))
		require.NotNil(t, p.ExtendedDeadline)
		assert.Equal(t, extended, *p.ExtendedDeadline)
		assert.Equal(t, "maternity leave", p.BriefJustification)
		assert.Equal(t, letter, p.JustificationLetter)
	})
}

func TestCompleteByPromoter(t *testing.T) {
	deadline := time.Now().AddDate(2, 0, 0)

	t.Run("only overwrites provided documents", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		p.SupervisorPanelReport = valueobject.DocumentRefs{"old"}

		require.NoError(t, p.CompleteByPromoter(nil, valueobject.DocumentRefs{"mandate"}))
		assert.Equal(t, valueobject.DocumentRefs{"old"}, p.SupervisorPanelReport)
		assert.Equal(t, valueobject.DocumentRefs{"mandate"}, p.ResearchMandateRenewalOpinion)
	})

	t.Run("inactive paper is frozen", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		p.Deactivate()
		require.Error(t, p.CompleteByPromoter(valueobject.DocumentRefs{"report"}, nil))
	})
}

func TestVerifyComplete(t *testing.T) {
	deadline := time.Now().AddDate(2, 0, 0)

	t.Run("needs taken date and panel report", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		assert.ErrorIs(t, p.VerifyComplete(), shared.ErrPaperIncomplete)

		taken := time.Now()
		p.TakenDate = &taken
		assert.ErrorIs(t, p.VerifyComplete(), shared.ErrPaperIncomplete)

		p.SupervisorPanelReport = valueobject.DocumentRefs{"report"}
		require.NoError(t, p.VerifyComplete())
	})
}

func TestDecisionRecording(t *testing.T) {
	deadline := time.Now().AddDate(2, 0, 0)

	t.Run("achievement certificate", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		p.RecordAchievement(valueobject.DocumentRefs{"attestation"})
		assert.Equal(t, valueobject.DocumentRefs{"attestation"}, p.CertificateOfAchievement)
	})

	t.Run("failure certificate and deactivation", func(t *testing.T) {
		p := newTestPaper(t, deadline)
		p.RecordFailure(valueobject.DocumentRefs{"failure"})
		p.Deactivate()
		assert.False(t, p.Active)
		assert.Equal(t, valueobject.DocumentRefs{"failure"}, p.CertificateOfFailure)
	})
}
