package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// NotificationService reads and clears the caller's inbox
type NotificationService interface {
	List(ctx context.Context, userID int64, page dto.PaginationRequest) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, userID int64) (*dto.ReadAllResponse, error)
}

type notificationServiceImpl struct {
	notificationRepo NotificationStore
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo NotificationStore, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger.With().Str("service", "notification").Logger(),
	}
}

// List returns a page of notifications, newest first, with the unread count
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, page dto.PaginationRequest) (*dto.NotificationListResponse, error) {
	items, total, err := s.notificationRepo.ListByUser(ctx, userID, page.PageSize, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error counting unread notifications: %w", err)
	}
	return &dto.NotificationListResponse{
		Items:       nonNil(items),
		UnreadCount: unread,
		Pagination:  dto.NewPaginationInfo(page, total),
	}, nil
}

// MarkRead marks one of the caller's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID, notificationID int64) error {
	ok, err := s.notificationRepo.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewResourceNotFoundError("notification not found")
	}
	return nil
}

// MarkAllRead marks every unread notification of the caller as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) (*dto.ReadAllResponse, error) {
	n, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ReadAllResponse{Status: "ok", Cleared: n}, nil
}
