package websocket

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
)

// ChatAuthorizer tells whether a user takes part in a chat
type ChatAuthorizer interface {
	IsParticipant(ctx context.Context, chatID, userID int64) (bool, error)
}

// Handler for WebSocket connections
type Handler struct {
	hub      *Hub
	authz    ChatAuthorizer
	incoming *MessageHandler
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authz ChatAuthorizer, incoming *MessageHandler, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		authz:    authz,
		incoming: incoming,
		logger:   logger,
	}
}

// HandleConnection godoc
// @Summary Open the real-time channel of a chat
// @Description Upgrades the HTTP connection to a WebSocket. Text messages sent on it are stored and pushed to both participants.
// @Tags chats
// @Security BearerAuth
// @Param id path int true "Chat ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} dto.APIResponse "Invalid chat ID"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Failure 403 {object} dto.APIResponse "Not a participant of the chat"
// @Router /chats/{id}/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	chatID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || chatID <= 0 {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeBadRequest, "Invalid chat ID")))
		return
	}

	userID := c.GetInt64("userID")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	ok, err := h.authz.IsParticipant(c.Request.Context(), chatID, userID)
	if err != nil {
		h.logger.Error().Err(err).Int64("chatID", chatID).Int64("userID", userID).Msg("Failed to check chat participant")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to check chat access")))
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, "You are not a participant of this chat")))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("chatID", chatID).Int64("userID", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:      h.hub,
		incoming: h.incoming,
		conn:     conn,
		send:     make(chan []byte, 256),
		userID:   userID,
		chatID:   chatID,
		logger:   h.logger,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
