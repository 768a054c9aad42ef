package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/logger"
)

// Actor is the authenticated caller of an operation
type Actor struct {
	UserID int64
	Name   string
	Role   models.RoleType
}

// IsVolunteer reports the volunteer role
func (a *Actor) IsVolunteer() bool {
	return a != nil && a.Role == models.RoleVolunteer
}

// IsAssociation reports the association role
func (a *Actor) IsAssociation() bool {
	return a != nil && a.Role == models.RoleAssociation
}

// ValidateRole fails with a forbidden error unless the actor has role
func ValidateRole(actor *Actor, role models.RoleType) error {
	if actor == nil || actor.Role != role {
		return apperrors.NewForbiddenError(fmt.Sprintf("only %s accounts can perform this action", role))
	}
	return nil
}

// ValidateOwnership fails with a forbidden error unless the actor owns the resource
func ValidateOwnership(actor *Actor, ownerID int64, resource string) error {
	if actor == nil || actor.UserID != ownerID {
		return apperrors.NewForbiddenError(fmt.Sprintf("you can only manage your own %s", resource))
	}
	return nil
}

// ChatLookup loads chats by ID
type ChatLookup interface {
	GetByID(ctx context.Context, id int64) (*models.Chat, error)
}

// AuthorizationService answers access questions that need stored data
type AuthorizationService struct {
	chats ChatLookup
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(chats ChatLookup) *AuthorizationService {
	return &AuthorizationService{chats: chats}
}

// IsParticipant checks whether userID takes part in the chat. Unknown chats yield false.
func (s *AuthorizationService) IsParticipant(ctx context.Context, chatID, userID int64) (bool, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrChatNotFound) {
			return false, nil
		}
		logger.Error().Err(err).Int64("chatID", chatID).Msg("Error getting chat by ID in IsParticipant")
		return false, err
	}
	return chat.Includes(userID), nil
}

// ValidateChatParticipant returns the chat when userID takes part in it
func (s *AuthorizationService) ValidateChatParticipant(ctx context.Context, chatID, userID int64) (*models.Chat, error) {
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !chat.Includes(userID) {
		return nil, apperrors.NewForbiddenError("you are not a participant of this chat")
	}
	return chat, nil
}
