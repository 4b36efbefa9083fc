package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage_String(t *testing.T) {
	tests := []struct {
		stage    Stage
		expected string
	}{
		{StageUninitialized, "Uninitialized"},
		{StageInitialized, "Initialized"},
		{StageRunning, "Running"},
		{StageShuttingDown, "ShuttingDown"},
		{StageStopped, "Stopped"},
		{Stage(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stage.String())
		})
	}
}

func TestStageConstants(t *testing.T) {
	// Verify the iota ordering
	assert.Equal(t, Stage(0), StageUninitialized)
	assert.Equal(t, Stage(1), StageInitialized)
	assert.Equal(t, Stage(2), StageRunning)
	assert.Equal(t, Stage(3), StageShuttingDown)
	assert.Equal(t, Stage(4), StageStopped)
}

func TestStage_CanTransition(t *testing.T) {
	tests := []struct {
		from, to Stage
		want     bool
	}{
		{StageUninitialized, StageInitialized, true},
		{StageUninitialized, StageRunning, false},
		{StageInitialized, StageRunning, true},
		{StageInitialized, StageShuttingDown, true},
		{StageRunning, StageShuttingDown, true},
		{StageRunning, StageRunning, false},
		{StageShuttingDown, StageStopped, true},
		{StageStopped, StageRunning, false},
		{StageStopped, StageShuttingDown, false},
		{StageRunning, StageUninitialized, false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestMachine_Transition(t *testing.T) {
	var m Machine
	assert.Equal(t, StageUninitialized, m.Current())

	require.NoError(t, m.Transition(StageInitialized))
	require.NoError(t, m.Transition(StageRunning))

	err := m.Transition(StageInitialized)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StageRunning, m.Current())

	require.NoError(t, m.Transition(StageShuttingDown))
	require.NoError(t, m.Transition(StageStopped))
}
