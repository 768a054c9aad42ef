package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConstraintHelpers(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_participation_unique"})
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "participations_event_id_fkey"}

	tests := []struct {
		name     string
		err      error
		dupNamed bool
		otherDup bool
		foreign  bool
	}{
		{"unique violation", dup, true, false, false},
		{"foreign key violation", fk, false, false, true},
		{"plain error", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dupNamed, IsDuplicateConstraintError(tt.err, "uq_participation_unique"))
			assert.Equal(t, tt.otherDup, IsDuplicateConstraintError(tt.err, "users_email_key"))
			assert.Equal(t, tt.foreign, IsForeignKeyViolation(tt.err))
		})
	}
}
