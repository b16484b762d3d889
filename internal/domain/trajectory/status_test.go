package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusStage(t *testing.T) {
	tests := []struct {
		status Status
		stage  Stage
	}{
		{StatusAdmitted, StageAdmission},
		{StatusConfirmationSubmitted, StageConfirmation},
		{StatusConfirmationToRetake, StageConfirmation},
		{StatusNotAuthorizedToContinue, StageDropout},
		{StatusJuryCDDRefused, StageJury},
		{StatusAdmissibilityFailed, StageDropout},
		{StatusPrivateDefenceFailed, StageDropout},
		{StatusDefenceAndDefenceAuthorized, StagePublicDefence},
		{StatusProclaimed, StageProclamation},
		{StatusAbandoned, StageDropout},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.stage, tt.status.Stage())
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	terminal := []Status{
		StatusProclaimed,
		StatusAbandoned,
		StatusNotAuthorizedToContinue,
		StatusAdmissibilityFailed,
		StatusPrivateDefenceFailed,
	}
	for _, s := range terminal {
		t.Run(string(s), func(t *testing.T) {
			assert.True(t, s.IsTerminal())
			assert.False(t, s.IsActive())
		})
	}

	t.Run("every other status has an outgoing transition", func(t *testing.T) {
		isTerminal := make(map[Status]bool)
		for _, s := range terminal {
			isTerminal[s] = true
		}
		for s := range statusStages {
			if !isTerminal[s] {
				assert.True(t, s.IsActive(), "expected %s to be active", s)
			}
		}
	})

	t.Run("unknown status is neither terminal nor active", func(t *testing.T) {
		assert.False(t, Status("BOGUS").IsTerminal())
		assert.False(t, Status("BOGUS").IsActive())
	})
}

func TestStatusCanTransitionTo(t *testing.T) {
	t.Run("follows the documented flow", func(t *testing.T) {
		assert.True(t, StatusAdmitted.CanTransitionTo(StatusConfirmationSubmitted))
		assert.True(t, StatusConfirmationSubmitted.CanTransitionTo(StatusConfirmationSucceeded))
		assert.True(t, StatusConfirmationSubmitted.CanTransitionTo(StatusConfirmationToRetake))
		assert.True(t, StatusConfirmationToRetake.CanTransitionTo(StatusConfirmationSubmitted))
		assert.True(t, StatusJuryCDDRefused.CanTransitionTo(StatusJurySubmitted))
		assert.True(t, StatusAdmissibilitySucceeded.CanTransitionTo(StatusDefenceAndDefenceSubmitted))
	})

	t.Run("rejects skipped steps", func(t *testing.T) {
		assert.False(t, StatusAdmitted.CanTransitionTo(StatusJurySubmitted))
		assert.False(t, StatusConfirmationSucceeded.CanTransitionTo(StatusProclaimed))
		assert.False(t, StatusAdmitted.CanTransitionTo(StatusConfirmationSucceeded))
	})

	t.Run("rejects moves out of terminal statuses", func(t *testing.T) {
		assert.False(t, StatusProclaimed.CanTransitionTo(StatusAbandoned))
		assert.False(t, StatusAbandoned.CanTransitionTo(StatusAdmitted))
	})

	t.Run("every active status can be abandoned", func(t *testing.T) {
		for s := range statusStages {
			if s.IsActive() {
				assert.True(t, s.CanTransitionTo(StatusAbandoned), "expected %s to allow abandonment", s)
			}
		}
	})
}

func TestStageNeverDecreases(t *testing.T) {
	// The transition table must keep the journey monotonic: within-stage
	// loops are fine, a move back to an earlier stage is not.
	for from, targets := range transitions {
		for _, to := range targets {
			fromRank := from.Stage().Rank()
			toRank := to.Stage().Rank()
			require.GreaterOrEqual(t, toRank, fromRank,
				"transition %s -> %s decreases the stage", from, to)
		}
	}
}
