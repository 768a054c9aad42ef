package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Message is a chat message pushed to connected clients
type Message struct {
	// Type of message, only "text" is accepted from clients
	Type string `json:"type"`

	ChatID   int64  `json:"chatId"`
	SenderID int64  `json:"senderId"`
	Content  string `json:"content"`

	// Message ID from the database
	ID int64 `json:"id,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Hub keeps the connected clients of every chat room and fans messages out to them
type Hub struct {
	// Registered clients organized by chat ID
	rooms map[int64]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	mu     sync.RWMutex
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		rooms:      make(map[int64]map[*Client]bool),
		broadcast:  make(chan *Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger.With().Str("component", "chat_hub").Logger(),
	}
}

// Run handles registrations and broadcasts until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return
		case client := <-h.register:
			h.registerClient(client)
		case client := <-h.unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.chatID]; !ok {
		h.rooms[client.chatID] = make(map[*Client]bool)
	}
	h.rooms[client.chatID][client] = true

	h.logger.Info().
		Int64("chatID", client.chatID).
		Int64("userID", client.userID).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	room, ok := h.rooms[client.chatID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.chatID)
	}

	h.logger.Info().
		Int64("chatID", client.chatID).
		Int64("userID", client.userID).
		Msg("Client unregistered")
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.logger.Error().Err(err).Int64("chatID", message.ChatID).Msg("Failed to marshal message for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[message.ChatID]
	if !ok {
		h.logger.Debug().Int64("chatID", message.ChatID).Msg("No clients in chat for broadcast")
		return
	}

	for client := range room {
		select {
		case client.send <- data:
		default:
			// slow client
			h.removeLocked(client)
		}
	}

	h.logger.Debug().
		Int64("chatID", message.ChatID).
		Int("clientCount", len(room)).
		Msg("Message broadcasted to chat")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, room := range h.rooms {
		for client := range room {
			h.removeLocked(client)
		}
	}
}

// Broadcast queues a message for every client connected to its chat
func (h *Hub) Broadcast(message *Message) {
	h.broadcast <- message
}

// ClientsCount returns the number of connected clients of a chat
func (h *Hub) ClientsCount(chatID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[chatID])
}
