package models

import (
	"time"

	"github.com/yigit/volunteerhub/internal/domain"
)

// Post is a short update published by an association
type Post struct {
	ID              int64     `json:"id" db:"id"`
	AssociationID   int64     `json:"associationId" db:"association_id"`
	AssociationName string    `json:"associationName" db:"association_name"`
	Title           string    `json:"title" db:"title"`
	Content         string    `json:"content" db:"content"`
	ImageFilename   *string   `json:"imageFilename,omitempty" db:"image_filename"`
	ApplauseCount   int       `json:"applauseCount" db:"applause_count"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Notification is an inbox entry for a user
type Notification struct {
	ID        int64                   `json:"id" db:"id"`
	UserID    int64                   `json:"userId" db:"user_id"`
	Type      domain.NotificationType `json:"type" db:"type"`
	Message   string                  `json:"message" db:"message"`
	URL       *string                 `json:"url,omitempty" db:"url"`
	IsRead    bool                    `json:"isRead" db:"is_read"`
	PostID    *int64                  `json:"postId,omitempty" db:"post_id"`
	CreatedAt time.Time               `json:"createdAt" db:"created_at"`
}
