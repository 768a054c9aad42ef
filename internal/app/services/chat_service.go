package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/websocket"
)

// Broadcaster pushes messages to connected chat clients
type Broadcaster interface {
	Broadcast(message *websocket.Message)
}

// ChatService defines the interface for direct chat operations
type ChatService interface {
	StartChat(ctx context.Context, actor *authz.Actor, otherUserID int64) (*models.Chat, error)
	ListConversations(ctx context.Context, actor *authz.Actor) ([]dto.ConversationResponse, error)
	GetMessages(ctx context.Context, actor *authz.Actor, chatID int64, page dto.PaginationRequest) (*dto.ChatMessagesResponse, error)
	SendMessage(ctx context.Context, actor *authz.Actor, chatID int64, content string) (*models.ChatMessage, error)
	SaveMessage(ctx context.Context, chatID, senderID int64, content string) (int64, time.Time, error)
}

// chatServiceImpl implements ChatService
type chatServiceImpl struct {
	chatRepo ChatStore
	userRepo UserStore
	access   *authz.AuthorizationService
	hub      Broadcaster
	logger   zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	chatRepo ChatStore,
	userRepo UserStore,
	access *authz.AuthorizationService,
	hub Broadcaster,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		chatRepo: chatRepo,
		userRepo: userRepo,
		access:   access,
		hub:      hub,
		logger:   logger.With().Str("service", "chat").Logger(),
	}
}

// StartChat returns the chat between the caller and another user, creating it once per pair
func (s *chatServiceImpl) StartChat(ctx context.Context, actor *authz.Actor, otherUserID int64) (*models.Chat, error) {
	if actor.UserID == otherUserID {
		return nil, apperrors.NewBadRequestError("you cannot start a chat with yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, otherUserID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewResourceNotFoundError("user not found")
		}
		return nil, err
	}

	chat, err := s.chatRepo.FindOrCreate(ctx, actor.UserID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("error starting chat: %w", err)
	}
	return chat, nil
}

// ListConversations returns the other participant of each of the caller's chats
func (s *chatServiceImpl) ListConversations(ctx context.Context, actor *authz.Actor) ([]dto.ConversationResponse, error) {
	convs, err := s.chatRepo.ListConversations(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}

	out := make([]dto.ConversationResponse, 0, len(convs))
	for _, c := range convs {
		out = append(out, dto.ConversationResponse{ID: c.ChatID, Name: c.OtherName, Photo: c.OtherPhoto})
	}
	return out, nil
}

// GetMessages returns a page of messages of a chat the caller takes part in
func (s *chatServiceImpl) GetMessages(ctx context.Context, actor *authz.Actor, chatID int64, page dto.PaginationRequest) (*dto.ChatMessagesResponse, error) {
	if _, err := s.access.ValidateChatParticipant(ctx, chatID, actor.UserID); err != nil {
		return nil, err
	}

	messages, total, err := s.chatRepo.ListMessages(ctx, chatID, page.PageSize, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("error retrieving chat messages: %w", err)
	}
	return &dto.ChatMessagesResponse{
		ChatID:     chatID,
		Messages:   nonNil(messages),
		Pagination: dto.NewPaginationInfo(page, total),
	}, nil
}

// SendMessage stores a message posted over HTTP and pushes it to connected clients
func (s *chatServiceImpl) SendMessage(ctx context.Context, actor *authz.Actor, chatID int64, content string) (*models.ChatMessage, error) {
	if _, err := s.access.ValidateChatParticipant(ctx, chatID, actor.UserID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content", "message cannot be empty")
	}
	if utf8.RuneCountInString(content) > websocket.MaxContentLength {
		return nil, apperrors.NewValidationError("content", fmt.Sprintf("message must be at most %d characters", websocket.MaxContentLength))
	}

	msg := &models.ChatMessage{ChatID: chatID, SenderID: actor.UserID, Content: content}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("error saving message: %w", err)
	}

	if s.hub != nil {
		s.hub.Broadcast(&websocket.Message{
			Type:      "text",
			ChatID:    chatID,
			SenderID:  actor.UserID,
			Content:   msg.Content,
			ID:        msg.ID,
			Timestamp: msg.CreatedAt,
		})
	}
	return msg, nil
}

// SaveMessage persists a message received over the websocket
func (s *chatServiceImpl) SaveMessage(ctx context.Context, chatID, senderID int64, content string) (int64, time.Time, error) {
	msg := &models.ChatMessage{ChatID: chatID, SenderID: senderID, Content: content}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return 0, time.Time{}, fmt.Errorf("error saving message: %w", err)
	}
	return msg.ID, msg.CreatedAt, nil
}
