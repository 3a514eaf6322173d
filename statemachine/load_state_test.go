package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirajbinsyed/menuzy/models"
)

func TestHappyPathTransitions(t *testing.T) {
	path := []models.BatchState{
		models.BatchReceived,
		models.BatchValidated,
		models.BatchPersisting,
		models.BatchCommitted,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.NoError(t, CanTransition(path[i], path[i+1]))
	}
}

func TestFailurePaths(t *testing.T) {
	assert.NoError(t, CanTransition(models.BatchValidated, models.BatchRejected))
	assert.NoError(t, CanTransition(models.BatchPersisting, models.BatchRolledBack))
}

func TestIllegalTransitions(t *testing.T) {
	// Validation can never be skipped
	require.Error(t, CanTransition(models.BatchReceived, models.BatchPersisting))
	require.Error(t, CanTransition(models.BatchReceived, models.BatchCommitted))
	// Rejection happens before the store is touched, not after
	require.Error(t, CanTransition(models.BatchPersisting, models.BatchRejected))
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, state := range []models.BatchState{
		models.BatchCommitted,
		models.BatchRejected,
		models.BatchRolledBack,
	} {
		assert.True(t, IsTerminal(state), "%s must be terminal", state)
		assert.Empty(t, ValidTransitionsFrom(state))
	}
}

func TestValidTransitionsFromValidated(t *testing.T) {
	next := ValidTransitionsFrom(models.BatchValidated)
	assert.ElementsMatch(t, []models.BatchState{models.BatchPersisting, models.BatchRejected}, next)
}
