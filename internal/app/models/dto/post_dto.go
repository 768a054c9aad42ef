package dto

import "github.com/yigit/volunteerhub/internal/app/models"

// PostRequest creates or replaces a post
type PostRequest struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content" binding:"required"`
}

// ApplauseResponse is the state of the caller's applause after a toggle
type ApplauseResponse struct {
	Status string `json:"status" example:"added" enums:"added,removed"`
	Count  int    `json:"count" example:"12"`
}

// FeedRequest binds the feed filters
type FeedRequest struct {
	Query          string   `form:"q"`
	Types          []string `form:"type" binding:"dive,oneof=event post campaign"`
	AssociationIDs []int64  `form:"-"` // repeated or comma separated association_id
	// Page is optional; zero returns the whole feed
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// FeedResponse is the filtered feed plus the association search helpers
type FeedResponse struct {
	Items              interface{}           `json:"items"`
	Total              int                   `json:"total"`
	FoundAssociations  []*models.UserSummary `json:"foundAssociations"`
	AssociationOptions []*models.UserSummary `json:"associationOptions"`
}
