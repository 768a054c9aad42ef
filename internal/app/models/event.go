package models

import (
	"time"

	"github.com/yigit/volunteerhub/internal/domain"
)

// Event is an activity published by an association
type Event struct {
	ID              int64           `json:"id" db:"id"`
	AssociationID   int64           `json:"associationId" db:"association_id"`
	AssociationName string          `json:"associationName" db:"association_name"`
	Title           string          `json:"title" db:"title"`
	Description     *string         `json:"description,omitempty" db:"description"`
	Date            time.Time       `json:"date" db:"date"`
	EndDate         *time.Time      `json:"endDate,omitempty" db:"end_date"`
	Location        string          `json:"location" db:"location"`
	ImageFilename   *string         `json:"imageFilename,omitempty" db:"image_filename"`
	Latitude        *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64        `json:"longitude,omitempty" db:"longitude"`
	Duration        domain.Duration `json:"duration" db:"duration"`
	Skills          []string        `json:"skills" db:"skills"`
	Activity        *string         `json:"activity,omitempty" db:"activity"`
	Type            string          `json:"type" db:"type"`
	CapacityMax     *int            `json:"capacityMax,omitempty" db:"capacity_max"`
	AcceptedCount   int             `json:"acceptedCount" db:"accepted_count"`
	ReminderSentAt  *time.Time      `json:"-" db:"reminder_sent_at"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// Capacity derives seats left from the stored maximum and the accepted count
func (e *Event) Capacity() domain.Capacity {
	return domain.NewCapacity(e.CapacityMax, e.AcceptedCount)
}

// Coordinates returns the event position, nil when not geolocated
func (e *Event) Coordinates() *domain.Coordinates {
	return domain.NewCoordinates(e.Latitude, e.Longitude)
}

// Participation is a volunteer's application to an event
type Participation struct {
	ID          int64                      `json:"id" db:"id"`
	VolunteerID int64                      `json:"volunteerId" db:"volunteer_id"`
	EventID     int64                      `json:"eventId" db:"event_id"`
	Status      domain.ParticipationStatus `json:"status" db:"status"`
	AppliedAt   time.Time                  `json:"appliedAt" db:"applied_at"`
	UpdatedAt   time.Time                  `json:"updatedAt" db:"updated_at"`

	Volunteer *UserSummary `json:"volunteer,omitempty"`
	Event     *Event       `json:"event,omitempty"`
}
