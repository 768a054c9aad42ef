package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Goal     string `json:"goalAmount" validate:"omitempty,goalamount"`
	Duration string `json:"duration" validate:"required,duration"`
	Password string `json:"password" validate:"required,password"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, Register(v))
	return v
}

func TestRules(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name      string
		in        sample
		wantField string
	}{
		{"valid", sample{Goal: "5.000 €", Duration: "perennial", Password: "secret123"}, ""},
		{"empty goal allowed", sample{Duration: "temporary", Password: "secret123"}, ""},
		{"goal with letters", sample{Goal: "5k euro", Duration: "temporary", Password: "secret123"}, "goalAmount"},
		{"unknown duration", sample{Duration: "weekly", Password: "secret123"}, "duration"},
		{"weak password", sample{Duration: "temporary", Password: "password"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var fieldErrs validator.ValidationErrors
			require.True(t, errors.As(err, &fieldErrs))
			assert.Equal(t, tt.wantField, fieldErrs[0].Field())
		})
	}
}
