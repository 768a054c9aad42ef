package models

import (
	"time"

	"github.com/yigit/volunteerhub/internal/domain"
)

// Campaign is a fundraising initiative of an association
type Campaign struct {
	ID              int64           `json:"id" db:"id"`
	AssociationID   int64           `json:"associationId" db:"association_id"`
	AssociationName string          `json:"associationName" db:"association_name"`
	Title           string          `json:"title" db:"title"`
	Description     string          `json:"description" db:"description"`
	GoalAmount      *string         `json:"goalAmount,omitempty" db:"goal_amount"`
	Duration        domain.Duration `json:"duration" db:"duration"`
	Date            time.Time       `json:"date" db:"date"`
	EndDate         *time.Time      `json:"endDate,omitempty" db:"end_date"`
	Location        *string         `json:"location,omitempty" db:"location"`
	Latitude        *float64        `json:"latitude,omitempty" db:"latitude"`
	Longitude       *float64        `json:"longitude,omitempty" db:"longitude"`
	ImageFilename   *string         `json:"imageFilename,omitempty" db:"image_filename"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// Coordinates returns the campaign position, nil when not geolocated
func (c *Campaign) Coordinates() *domain.Coordinates {
	return domain.NewCoordinates(c.Latitude, c.Longitude)
}

// Donation is a confirmed payment towards a campaign
type Donation struct {
	ID          int64     `json:"id" db:"id"`
	OrderID     string    `json:"orderId" db:"order_id"`
	UserID      *int64    `json:"userId,omitempty" db:"user_id"`
	FullName    *string   `json:"fullName,omitempty" db:"full_name"`
	Email       string    `json:"email" db:"email"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      string    `json:"method" db:"method"`
	Message     *string   `json:"message,omitempty" db:"message"`
	PDFFilename *string   `json:"pdfFilename,omitempty" db:"pdf_filename"`
	CampaignID  int64     `json:"campaignId" db:"campaign_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	CampaignTitle string `json:"campaignTitle,omitempty" db:"campaign_title"`
}
