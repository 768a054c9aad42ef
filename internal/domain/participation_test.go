package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func TestParseDecision(t *testing.T) {
	status, err := ParseDecision("accept")
	assert.NoError(t, err)
	assert.Equal(t, ParticipationAccepted, status)

	status, err = ParseDecision(" Reject ")
	assert.NoError(t, err)
	assert.Equal(t, ParticipationRejected, status)

	_, err = ParseDecision("cancel")
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}

func TestEvaluateApplication(t *testing.T) {
	open := NewCapacity(intPtr(3), 1)
	full := NewCapacity(intPtr(1), 1)
	unlimited := NewCapacity(nil, 99)

	tests := []struct {
		name     string
		capacity Capacity
		applied  bool
		want     ApplyOutcome
	}{
		{"open event", open, false, ApplyCreated},
		{"unlimited event", unlimited, false, ApplyCreated},
		{"duplicate application", open, true, ApplyAlreadyApplied},
		{"full event", full, false, ApplyEventFull},
		{"full wins over duplicate", full, true, ApplyEventFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateApplication(tt.capacity, tt.applied))
		})
	}
}

func TestPendingDoesNotOccupySeat(t *testing.T) {
	// two pending applications against one seat are both admissible
	c := NewCapacity(intPtr(1), 0)
	assert.Equal(t, ApplyCreated, EvaluateApplication(c, false))
	assert.Equal(t, ApplyCreated, EvaluateApplication(c, false))
}

func TestAcceptIntoFullEvent(t *testing.T) {
	before := NewCapacity(intPtr(1), 1)
	require.True(t, before.IsFull)

	status, err := ParseDecision("accept")
	require.NoError(t, err)
	assert.Equal(t, ParticipationAccepted, status)

	after := NewCapacity(intPtr(1), 2)
	assert.True(t, after.IsFull)
	require.NotNil(t, after.SeatsLeft)
	assert.Equal(t, 0, *after.SeatsLeft)
	assert.Equal(t, ApplyEventFull, EvaluateApplication(after, false))
}

func TestParticipationStatusValid(t *testing.T) {
	assert.True(t, ParticipationPending.Valid())
	assert.True(t, ParticipationAccepted.Valid())
	assert.False(t, ParticipationStatus("cancelled").Valid())
}

func TestApplyOutcomeMessage(t *testing.T) {
	assert.Contains(t, ApplyEventFull.Message(), "maximum number of participants")
	assert.Contains(t, ApplyAlreadyApplied.Message(), "already applied")
	assert.Contains(t, ApplyCreated.Message(), "successfully")
}
