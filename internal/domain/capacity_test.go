package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestNewCapacity(t *testing.T) {
	tests := []struct {
		name      string
		max       *int
		accepted  int
		seatsLeft *int
		isFull    bool
	}{
		{name: "unlimited ignores accepted count", max: nil, accepted: 250, seatsLeft: nil, isFull: false},
		{name: "zero capacity is immediately full", max: intPtr(0), accepted: 0, seatsLeft: intPtr(0), isFull: true},
		{name: "seats available", max: intPtr(10), accepted: 3, seatsLeft: intPtr(7), isFull: false},
		{name: "exactly full", max: intPtr(5), accepted: 5, seatsLeft: intPtr(0), isFull: true},
		{name: "oversubscribed floors at zero", max: intPtr(2), accepted: 4, seatsLeft: intPtr(0), isFull: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCapacity(tt.max, tt.accepted)

			assert.Equal(t, tt.seatsLeft, c.SeatsLeft)
			assert.Equal(t, tt.isFull, c.IsFull)
			assert.Equal(t, tt.accepted, c.AcceptedCount)
			assert.Equal(t, tt.max != nil, c.IsLimited())
		})
	}
}

func TestNewCapacity_SeatsLeftMatchesFormula(t *testing.T) {
	for n := 0; n <= 6; n++ {
		for k := 0; k <= n; k++ {
			c := NewCapacity(intPtr(n), k)
			if assert.NotNil(t, c.SeatsLeft) {
				assert.Equal(t, n-k, *c.SeatsLeft)
			}
			assert.Equal(t, k == n, c.IsFull)
		}
	}
}
