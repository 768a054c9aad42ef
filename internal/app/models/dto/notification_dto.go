package dto

import "github.com/yigit/volunteerhub/internal/app/models"

// NotificationListResponse is a page of the caller's inbox
type NotificationListResponse struct {
	Items       []*models.Notification `json:"items"`
	UnreadCount int64                  `json:"unreadCount"`
	Pagination  PaginationInfo         `json:"pagination"`
}

// ReadAllResponse reports how many notifications were marked read
type ReadAllResponse struct {
	Status  string `json:"status" example:"ok"`
	Cleared int64  `json:"cleared" example:"3"`
}
