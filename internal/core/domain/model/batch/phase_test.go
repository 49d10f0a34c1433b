package batch_test

import (
	"testing"

	"shipping/internal/core/domain/model/batch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "SELECT", batch.Select.String())
	assert.Equal(t, "QUOTING", batch.Quoting.String())
	assert.Equal(t, "REVIEW", batch.Review.String())
	assert.Equal(t, "GENERATING", batch.Generating.String())
	assert.Equal(t, "COMPLETE", batch.Complete.String())
	assert.Equal(t, "UNKNOWN", batch.Phase(42).String())
}

func TestPhase_Transitions(t *testing.T) {
	testCases := []struct {
		name     string
		from     batch.Phase
		move     func(batch.Phase) (batch.Phase, error)
		expected batch.Phase
	}{
		{"select to quoting", batch.Select, batch.Phase.StartQuoting, batch.Quoting},
		{"quoting to review", batch.Quoting, batch.Phase.FinishQuoting, batch.Review},
		{"review to generating", batch.Review, batch.Phase.StartGeneration, batch.Generating},
		{"generating to complete", batch.Generating, batch.Phase.Finish, batch.Complete},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := tc.move(tc.from)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, next)
		})
	}
}

func TestPhase_RefusedTransitions(t *testing.T) {
	testCases := []struct {
		name string
		from batch.Phase
		move func(batch.Phase) (batch.Phase, error)
	}{
		{"review cannot quote again", batch.Review, batch.Phase.StartQuoting},
		{"select cannot skip to generation", batch.Select, batch.Phase.StartGeneration},
		{"quoting cannot generate", batch.Quoting, batch.Phase.StartGeneration},
		{"complete is final", batch.Complete, batch.Phase.Finish},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.move(tc.from)

			require.ErrorIs(t, err, batch.ErrInvalidPhase)
			var phaseErr *batch.PhaseError
			require.ErrorAs(t, err, &phaseErr)
			assert.Equal(t, tc.from, phaseErr.Phase)
		})
	}
}

func TestPhase_IsBusy(t *testing.T) {
	assert.True(t, batch.Quoting.IsBusy())
	assert.True(t, batch.Generating.IsBusy())
	assert.False(t, batch.Select.IsBusy())
	assert.False(t, batch.Review.IsBusy())
	assert.False(t, batch.Complete.IsBusy())
}
