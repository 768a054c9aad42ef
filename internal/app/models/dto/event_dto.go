package dto

import (
	"time"

	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/domain"
)

// EventRequest creates or replaces an event
type EventRequest struct {
	Title        string     `json:"title" binding:"required,max=150" example:"Beach clean-up"`
	Description  *string    `json:"description,omitempty"`
	Date         time.Time  `json:"date" binding:"required" example:"2025-06-01T09:00:00Z"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	Location     string     `json:"location" binding:"required,max=255" example:"Bari, Pane e Pomodoro"`
	Latitude     string     `json:"latitude,omitempty" example:"41.1171"`
	Longitude    string     `json:"longitude,omitempty" example:"16.8719"`
	Duration     string     `json:"duration,omitempty" binding:"omitempty,duration" example:"temporary"`
	Skills       []string   `json:"skills,omitempty"`
	Activity     *string    `json:"activity,omitempty"`
	Type         string     `json:"type,omitempty" example:"event"`
	CapacityMode string     `json:"capacityMode,omitempty" binding:"omitempty,oneof=limited unlimited" example:"limited"`
	CapacityMax  *int       `json:"capacityMax,omitempty" binding:"omitempty,min=0" example:"20"`
}

// ToInput converts the request into the domain input, parsing coordinates leniently
func (r *EventRequest) ToInput() domain.EventInput {
	return domain.EventInput{
		Title:        r.Title,
		Description:  r.Description,
		Date:         r.Date,
		EndDate:      r.EndDate,
		Location:     r.Location,
		Coordinates:  domain.ParseCoordinates(r.Latitude, r.Longitude),
		Duration:     domain.Duration(r.Duration),
		Skills:       r.Skills,
		Activity:     r.Activity,
		Type:         r.Type,
		CapacityMode: domain.CapacityMode(r.CapacityMode),
		CapacityMax:  r.CapacityMax,
	}
}

// EventDetailResponse is an event with its capacity and the caller's application
type EventDetailResponse struct {
	Event               *models.Event               `json:"event"`
	Capacity            domain.Capacity             `json:"capacity"`
	ParticipationStatus *domain.ParticipationStatus `json:"participationStatus,omitempty"`
	IsOwner             bool                        `json:"isOwner"`
}

// ParticipantsResponse lists applications of an event for its owner
type ParticipantsResponse struct {
	Event          *models.Event           `json:"event"`
	Capacity       domain.Capacity         `json:"capacity"`
	Participations []*models.Participation `json:"participations"`
}

// MapItem is a geolocated entry of the map endpoint
type MapItem struct {
	ID            int64      `json:"id"`
	Type          string     `json:"type" example:"event"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Date          *time.Time `json:"date,omitempty"`
	Latitude      float64    `json:"latitude"`
	Longitude     float64    `json:"longitude"`
	Location      string     `json:"location"`
	ImageFilename *string    `json:"imageFilename,omitempty"`
	URL           string     `json:"url"`
}
