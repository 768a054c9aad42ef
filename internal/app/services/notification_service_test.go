package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

type MockNotificationStore struct{ mock.Mock }

func (m *MockNotificationStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Notification, int64, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*models.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockNotificationStore) CountUnread(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationStore) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationStore) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func TestNotificationService_List(t *testing.T) {
	store := new(MockNotificationStore)
	svc := NewNotificationService(store, zerolog.Nop())
	store.On("ListByUser", mock.Anything, int64(10), 20, 20).Return(nil, int64(25), nil)
	store.On("CountUnread", mock.Anything, int64(10)).Return(int64(3), nil)

	resp, err := svc.List(context.Background(), 10, dto.PaginationRequest{Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.NotNil(t, resp.Items)
	assert.Equal(t, int64(3), resp.UnreadCount)
	store.AssertExpectations(t)
}

func TestNotificationService_MarkRead(t *testing.T) {
	tests := []struct {
		name        string
		updated     bool
		expectedErr error
	}{
		{name: "own notification", updated: true},
		{name: "missing or not owned", updated: false, expectedErr: apperrors.ErrResourceNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockNotificationStore)
			svc := NewNotificationService(store, zerolog.Nop())
			store.On("MarkRead", mock.Anything, int64(5), int64(10)).Return(tt.updated, nil)

			err := svc.MarkRead(context.Background(), 10, 5)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	store := new(MockNotificationStore)
	svc := NewNotificationService(store, zerolog.Nop())
	store.On("MarkAllRead", mock.Anything, int64(10)).Return(int64(4), nil)

	resp, err := svc.MarkAllRead(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(4), resp.Cleared)
}
