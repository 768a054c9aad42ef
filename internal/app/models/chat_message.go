package models

import "time"

// Chat is the conversation between two users, stored with User1ID < User2ID
type Chat struct {
	ID        int64     `json:"id" db:"id"`
	User1ID   int64     `json:"user1Id" db:"user1_id"`
	User2ID   int64     `json:"user2Id" db:"user2_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Includes reports whether userID takes part in the chat
func (c *Chat) Includes(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// Other returns the participant that is not userID
func (c *Chat) Other(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// ChatMessage is a text message inside a chat
type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	ChatID    int64     `json:"chatId" db:"chat_id"`
	SenderID  int64     `json:"senderId" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
