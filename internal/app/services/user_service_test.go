package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func newUserService() (UserService, *MockUserStore, *MockFollowStore) {
	users := new(MockUserStore)
	follows := new(MockFollowStore)
	svc := NewUserService(users, follows, new(MockEventStore), new(MockCampaignStore), new(MockPostStore),
		new(MockFileStorage), zerolog.Nop())
	return svc, users, follows
}

func TestUserService_Follow(t *testing.T) {
	association := &models.User{ID: 20, Name: "Croce Verde", RoleType: models.RoleAssociation}
	volunteer := &models.User{ID: 11, Name: "Luca", RoleType: models.RoleVolunteer}

	tests := []struct {
		name            string
		actor           *authz.Actor
		targetID        int64
		setup           func(users *MockUserStore, follows *MockFollowStore)
		expectedOutcome string
		expectedErr     error
	}{
		{
			name:     "followed",
			actor:    volunteerActor,
			targetID: 20,
			setup: func(users *MockUserStore, follows *MockFollowStore) {
				users.On("GetByID", mock.Anything, int64(20)).Return(association, nil)
				follows.On("Follow", mock.Anything, volunteerActor.UserID, int64(20)).Return(true, nil)
			},
			expectedOutcome: OutcomeFollowed,
		},
		{
			name:     "already following",
			actor:    volunteerActor,
			targetID: 20,
			setup: func(users *MockUserStore, follows *MockFollowStore) {
				users.On("GetByID", mock.Anything, int64(20)).Return(association, nil)
				follows.On("Follow", mock.Anything, volunteerActor.UserID, int64(20)).Return(false, nil)
			},
			expectedOutcome: OutcomeAlreadyFollowing,
		},
		{
			name:            "association caller",
			actor:           associationActor,
			targetID:        21,
			setup:           func(*MockUserStore, *MockFollowStore) {},
			expectedOutcome: OutcomeNotAllowed,
		},
		{
			name:            "self",
			actor:           volunteerActor,
			targetID:        volunteerActor.UserID,
			setup:           func(*MockUserStore, *MockFollowStore) {},
			expectedOutcome: OutcomeNotAllowed,
		},
		{
			name:     "target is a volunteer",
			actor:    volunteerActor,
			targetID: 11,
			setup: func(users *MockUserStore, _ *MockFollowStore) {
				users.On("GetByID", mock.Anything, int64(11)).Return(volunteer, nil)
			},
			expectedOutcome: OutcomeNotAllowed,
		},
		{
			name:     "unknown target",
			actor:    volunteerActor,
			targetID: 404,
			setup: func(users *MockUserStore, _ *MockFollowStore) {
				users.On("GetByID", mock.Anything, int64(404)).Return(nil, apperrors.ErrUserNotFound)
			},
			expectedErr: apperrors.ErrResourceNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, users, follows := newUserService()
			tt.setup(users, follows)

			resp, err := svc.Follow(context.Background(), tt.actor, tt.targetID)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedOutcome, resp.Outcome)
			users.AssertExpectations(t)
			follows.AssertExpectations(t)
		})
	}
}

func TestUserService_Unfollow(t *testing.T) {
	association := &models.User{ID: 20, RoleType: models.RoleAssociation}

	t.Run("unfollowed", func(t *testing.T) {
		svc, users, follows := newUserService()
		users.On("GetByID", mock.Anything, int64(20)).Return(association, nil)
		follows.On("Unfollow", mock.Anything, volunteerActor.UserID, int64(20)).Return(true, nil)

		resp, err := svc.Unfollow(context.Background(), volunteerActor, 20)
		require.NoError(t, err)
		assert.Equal(t, OutcomeUnfollowed, resp.Outcome)
	})

	t.Run("not following", func(t *testing.T) {
		svc, users, follows := newUserService()
		users.On("GetByID", mock.Anything, int64(20)).Return(association, nil)
		follows.On("Unfollow", mock.Anything, volunteerActor.UserID, int64(20)).Return(false, nil)

		resp, err := svc.Unfollow(context.Background(), volunteerActor, 20)
		require.NoError(t, err)
		assert.Equal(t, OutcomeNotFollowing, resp.Outcome)
	})
}

func TestUserService_ListFollowed_Empty(t *testing.T) {
	svc, _, follows := newUserService()
	follows.On("ListFollowed", mock.Anything, int64(10)).Return(nil, nil)

	list, err := svc.ListFollowed(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
