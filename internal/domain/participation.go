package domain

import (
	"strings"

	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// ParticipationStatus is the review state of a volunteer application.
// Withdrawal deletes the row instead of persisting a fourth state.
type ParticipationStatus string

const (
	ParticipationPending  ParticipationStatus = "pending"
	ParticipationAccepted ParticipationStatus = "accepted"
	ParticipationRejected ParticipationStatus = "rejected"
)

// Valid reports whether s is a persisted status
func (s ParticipationStatus) Valid() bool {
	switch s {
	case ParticipationPending, ParticipationAccepted, ParticipationRejected:
		return true
	}
	return false
}

// ParseDecision maps an owner action to the status it sets.
// Accepted and rejected may be swapped freely; capacity is not re-checked here.
func ParseDecision(action string) (ParticipationStatus, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "accept":
		return ParticipationAccepted, nil
	case "reject":
		return ParticipationRejected, nil
	}
	return "", apperrors.NewValidationError("action", "action must be accept or reject")
}

// ApplyOutcome is the result of a volunteer applying to an event
type ApplyOutcome string

const (
	ApplyCreated        ApplyOutcome = "created"
	ApplyAlreadyApplied ApplyOutcome = "already_applied"
	ApplyEventFull      ApplyOutcome = "event_full"
)

// EvaluateApplication decides whether a new pending participation may be created.
// Fullness is checked before duplication.
func EvaluateApplication(capacity Capacity, alreadyApplied bool) ApplyOutcome {
	if capacity.IsFull {
		return ApplyEventFull
	}
	if alreadyApplied {
		return ApplyAlreadyApplied
	}
	return ApplyCreated
}

// Message is the user-facing text for the outcome
func (o ApplyOutcome) Message() string {
	switch o {
	case ApplyEventFull:
		return "This event has already reached the maximum number of participants."
	case ApplyAlreadyApplied:
		return "You have already applied to this event."
	default:
		return "Application sent successfully!"
	}
}
