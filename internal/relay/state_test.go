package relay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/oshokin/reqrelay/internal/logger"
)

// TestTerminalState tests the mapping from call outcome to terminal state.
func TestTerminalState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected State
	}{
		{name: "success", err: nil, expected: StateCompleted},
		{name: "network", err: fmt.Errorf("%w: refused", ErrNetwork), expected: StateNetworkError},
		{name: "host unavailable", err: ErrHostUnavailable, expected: StateNetworkError},
		{name: "body read", err: fmt.Errorf("%w: reset", ErrBodyRead), expected: StateBodyReadError},
		{name: "malformed URL", err: fmt.Errorf("%w: x", ErrMalformedURL), expected: StateRejected},
		{name: "missing content type", err: ErrMissingContentType, expected: StateRejected},
		{name: "serialization", err: ErrSerialization, expected: StateRejected},
		{name: "unknown", err: errors.New("boom"), expected: StateRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			state := TerminalState(tt.err)
			assert.Equal(t, tt.expected, state)
			assert.True(t, state.IsTerminal())
		})
	}
}

// TestState_String tests state names and terminality.
func TestState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "dispatching", StateDispatching.String())
	assert.Equal(t, "body_read_error", StateBodyReadError.String())
	assert.Equal(t, "unknown", State(200).String())

	for _, state := range []State{StateIdle, StateValidating, StateBuilt, StateDispatching} {
		assert.False(t, state.IsTerminal(), state.String())
	}
}

// TestIsValidationError tests which errors count as validation failures.
func TestIsValidationError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidationError(fmt.Errorf("%w: x", ErrUnsupportedScheme)))
	assert.True(t, IsValidationError(ErrInvalidJSONBody))
	assert.False(t, IsValidationError(ErrNetwork))
	assert.False(t, IsValidationError(ErrSerialization))
	assert.False(t, IsValidationError(nil))
}

// TestStateTracker_MoveTo tests transition logging and that terminal states are final.
func TestStateTracker_MoveTo(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := logger.ToContext(context.Background(), zap.New(core).Sugar())

	tracker := newStateTracker(ctx)
	tracker.moveTo(StateValidating)
	tracker.moveTo(StateRejected)
	tracker.moveTo(StateDispatching)

	assert.Equal(t, StateRejected, tracker.current)
	assert.Equal(t, 2, logs.FilterMessage("Request state changed").Len())

	finished := logs.FilterMessage("Request finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, "rejected", finished[0].ContextMap()["state"])

	late := logs.FilterMessage("Request state changed after completion").All()
	require.Len(t, late, 1)
	assert.Equal(t, zapcore.WarnLevel, late[0].Level)
	assert.Equal(t, "dispatching", late[0].ContextMap()["to"])
}
