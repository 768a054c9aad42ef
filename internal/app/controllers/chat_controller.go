package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
)

// ChatController handles private chats between two users
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger.With().Str("controller", "chat").Logger(),
	}
}

// StartChat opens or returns the chat with another user
// @Summary Start a chat
// @Description Returns the existing chat of the pair or creates it
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "Other user ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Chat}
// @Failure 400 {object} dto.ErrorResponse "Chat with yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /chats/start/{user_id} [post]
func (c *ChatController) StartChat(ctx *gin.Context) {
	otherID, ok := pathID(ctx, "user_id")
	if !ok {
		return
	}
	chat, err := c.chatService.StartChat(ctx.Request.Context(), middleware.CurrentActor(ctx), otherID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(chat, ""))
}

// ListConversations lists the caller's chats
// @Summary List conversations
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse}
// @Router /chats/conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	conversations, err := c.chatService.ListConversations(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations, ""))
}

// GetMessages returns a page of a chat's messages
// @Summary Get chat messages
// @Tags chats
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID" Format(int64) minimum(1)
// @Param page query int false "Page number" default(1) minimum(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.ChatMessagesResponse}
// @Failure 403 {object} dto.ErrorResponse "Not a participant of the chat"
// @Failure 404 {object} dto.ErrorResponse "Chat not found"
// @Router /chats/{id}/messages [get]
func (c *ChatController) GetMessages(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var page dto.PaginationRequest
	if !middleware.BindQuery(ctx, &page) {
		return
	}

	resp, err := c.chatService.GetMessages(ctx.Request.Context(), middleware.CurrentActor(ctx), id, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// SendMessage posts a message without a websocket
// @Summary Send a chat message
// @Description Stores the message and pushes it to the connected participants
// @Tags chats
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Chat ID" Format(int64) minimum(1)
// @Param request body dto.SendMessageRequest true "Message"
// @Success 201 {object} dto.APIResponse{data=models.ChatMessage}
// @Failure 400 {object} dto.ErrorResponse "Empty or too long message"
// @Failure 403 {object} dto.ErrorResponse "Not a participant of the chat"
// @Router /chats/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	msg, err := c.chatService.SendMessage(ctx.Request.Context(), middleware.CurrentActor(ctx), id, req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(msg, ""))
}
