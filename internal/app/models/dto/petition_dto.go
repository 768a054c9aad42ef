package dto

import "github.com/yigit/volunteerhub/internal/domain"

// PetitionRequest creates or edits a petition
type PetitionRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description" binding:"required"`
	Location    *string `json:"location,omitempty" binding:"omitempty,max=255"`
	Latitude    string  `json:"latitude" binding:"required"`
	Longitude   string  `json:"longitude" binding:"required"`
}

// Position returns the parsed coordinates, nil when malformed
func (r *PetitionRequest) Position() *domain.Coordinates {
	return domain.ParseCoordinates(r.Latitude, r.Longitude)
}

// ReportRequest creates a report
type ReportRequest struct {
	Title       string  `json:"title" binding:"required,max=150"`
	Description string  `json:"description" binding:"required"`
	Address     *string `json:"address,omitempty" binding:"omitempty,max=255"`
	Latitude    string  `json:"latitude" binding:"required"`
	Longitude   string  `json:"longitude" binding:"required"`
}

// Position returns the parsed coordinates, nil when malformed
func (r *ReportRequest) Position() *domain.Coordinates {
	return domain.ParseCoordinates(r.Latitude, r.Longitude)
}
