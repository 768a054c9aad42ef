package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewForbiddenError("only the organiser can review applications")

	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.Equal(t, "only the organiser can review applications", err.Error())

	wrapped := fmt.Errorf("deciding participation: %w", err)
	assert.True(t, errors.Is(wrapped, ErrPermissionDenied))
}

func TestIs(t *testing.T) {
	err := fmt.Errorf("load: %w", ErrEventNotFound)

	assert.True(t, Is(err, ErrResourceNotFound, ErrEventNotFound))
	assert.False(t, Is(err, ErrResourceNotFound, ErrPostNotFound))
}

func TestNewExternalServiceError(t *testing.T) {
	err := NewExternalServiceError("payment provider unreachable", errors.New("dial tcp: timeout"))

	var ce *CustomError
	assert.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, ErrExternalService))
	assert.Equal(t, "dial tcp: timeout", ce.Details["cause"])
}

func TestCustomErrorFallbackMessage(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}
