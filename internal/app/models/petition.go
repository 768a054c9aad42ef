package models

import (
	"time"

	"github.com/yigit/volunteerhub/internal/domain"
)

// Petition is a geolocated public request started by any user
type Petition struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	AuthorName     string    `json:"authorName" db:"author_name"`
	Title          string    `json:"title" db:"title"`
	Description    string    `json:"description" db:"description"`
	Location       *string   `json:"location,omitempty" db:"location"`
	Latitude       float64   `json:"latitude" db:"latitude"`
	Longitude      float64   `json:"longitude" db:"longitude"`
	ImageFilename  *string   `json:"imageFilename,omitempty" db:"image_filename"`
	SignatureCount int       `json:"signatureCount" db:"signature_count"`
	SupportCount   int       `json:"supportCount" db:"support_count"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

// Coordinates returns the petition position
func (p *Petition) Coordinates() *domain.Coordinates {
	return &domain.Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Report is a geolocated issue raised by a volunteer
type Report struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	AuthorName    string    `json:"authorName" db:"author_name"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Address       *string   `json:"address,omitempty" db:"address"`
	Latitude      float64   `json:"latitude" db:"latitude"`
	Longitude     float64   `json:"longitude" db:"longitude"`
	ImageFilename *string   `json:"imageFilename,omitempty" db:"image_filename"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// Coordinates returns the report position
func (r *Report) Coordinates() *domain.Coordinates {
	return &domain.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude}
}
