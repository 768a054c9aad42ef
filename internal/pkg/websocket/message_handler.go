package websocket

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// MaxContentLength is the longest accepted chat message, in characters
const MaxContentLength = 4000

// MessageStore persists a chat message and returns its ID and creation time
type MessageStore interface {
	SaveMessage(ctx context.Context, chatID, senderID int64, content string) (int64, time.Time, error)
}

// MessageHandler persists incoming text messages and broadcasts them to the chat
type MessageHandler struct {
	store  MessageStore
	hub    *Hub
	logger zerolog.Logger
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(store MessageStore, hub *Hub, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		store:  store,
		hub:    hub,
		logger: logger,
	}
}

// HandleIncomingMessage saves a text message then broadcasts it; other types and blank messages are dropped
func (h *MessageHandler) HandleIncomingMessage(ctx context.Context, message *Message) {
	if message.Type != "" && message.Type != "text" {
		h.logger.Debug().Str("type", message.Type).Int64("chatID", message.ChatID).Msg("Ignoring non-text message")
		return
	}
	message.Type = "text"
	message.Content = strings.TrimSpace(message.Content)
	if message.Content == "" || utf8.RuneCountInString(message.Content) > MaxContentLength {
		return
	}

	id, createdAt, err := h.store.SaveMessage(ctx, message.ChatID, message.SenderID, message.Content)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("chatID", message.ChatID).
			Int64("senderID", message.SenderID).
			Msg("Failed to save WebSocket message to database")
		return
	}

	message.ID = id
	message.Timestamp = createdAt
	h.hub.Broadcast(message)
}
