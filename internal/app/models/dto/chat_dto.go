package dto

import "github.com/yigit/volunteerhub/internal/app/models"

// ConversationResponse is one entry of the caller's chat list
type ConversationResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Photo *string `json:"photo,omitempty"`
}

// ChatMessagesResponse is a page of messages of a chat
type ChatMessagesResponse struct {
	ChatID     int64                 `json:"chatId"`
	Messages   []*models.ChatMessage `json:"messages"`
	Pagination PaginationInfo        `json:"pagination"`
}

// SendMessageRequest posts a chat message without a websocket
type SendMessageRequest struct {
	Content string `json:"content" binding:"required,max=4000"`
}
