package domain

// Capacity describes how many seats of an event are still open.
// Only accepted participations occupy a seat; pending applications may oversubscribe.
type Capacity struct {
	Max           *int `json:"capacityMax"`
	AcceptedCount int  `json:"acceptedCount"`
	SeatsLeft     *int `json:"seatsLeft"`
	IsFull        bool `json:"isFull"`
}

// NewCapacity derives seats left and fullness from the configured maximum.
// A nil maximum means unlimited. Seats left never drops below zero.
func NewCapacity(capacityMax *int, acceptedCount int) Capacity {
	c := Capacity{Max: capacityMax, AcceptedCount: acceptedCount}
	if capacityMax == nil {
		return c
	}

	left := *capacityMax - acceptedCount
	if left < 0 {
		left = 0
	}
	c.SeatsLeft = &left
	c.IsFull = left == 0
	return c
}

// IsLimited reports whether the event has a participant limit
func (c Capacity) IsLimited() bool {
	return c.Max != nil
}
