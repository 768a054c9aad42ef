package dto

import (
	"time"

	"github.com/yigit/volunteerhub/internal/app/models"
)

// ActivityItem is a report or petition started by the volunteer
type ActivityItem struct {
	Type      string    `json:"type" example:"report"`
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

// HistoryItem is a past donation, event or campaign
type HistoryItem struct {
	Type   string    `json:"type" example:"donation"`
	ID     int64     `json:"id"`
	Title  string    `json:"title"`
	Date   time.Time `json:"date"`
	Amount *float64  `json:"amount,omitempty"`
	URL    string    `json:"url"`
}

// VolunteerDashboard collects everything a volunteer did
type VolunteerDashboard struct {
	Activities     []ActivityItem          `json:"activities"`
	Donations      []*models.Donation      `json:"donations"`
	Participations []*models.Participation `json:"participations"`
	History        []HistoryItem           `json:"history"`
}

// AssociationDashboard collects an association's content and received donations
type AssociationDashboard struct {
	Posts     []*models.Post     `json:"posts"`
	Events    []*models.Event    `json:"events"`
	Campaigns []*models.Campaign `json:"campaigns"`
	Donations []*models.Donation `json:"donations"`
	History   []HistoryItem      `json:"history"`
}
