package controllers

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
)

// MockAuthService

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) RegisterVolunteer(ctx context.Context, req *dto.RegisterVolunteerRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RegisterAssociation(ctx context.Context, req *dto.RegisterAssociationRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TokenResponse), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *MockAuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	return m.Called(ctx, emailAddr).Error(0)
}

func (m *MockAuthService) ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirmRequest) error {
	return m.Called(ctx, req).Error(0)
}

// MockEventService

type MockEventService struct{ mock.Mock }

func (m *MockEventService) CreateEvent(ctx context.Context, actor *authz.Actor, req *dto.EventRequest) (*models.Event, error) {
	args := m.Called(ctx, actor, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, actor *authz.Actor, eventID int64, req *dto.EventRequest) (*models.Event, error) {
	args := m.Called(ctx, actor, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, actor *authz.Actor, eventID int64) error {
	return m.Called(ctx, actor, eventID).Error(0)
}

func (m *MockEventService) UploadImage(ctx context.Context, actor *authz.Actor, eventID int64, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	args := m.Called(ctx, actor, eventID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, eventID int64, viewer *authz.Actor) (*dto.EventDetailResponse, error) {
	args := m.Called(ctx, eventID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.EventDetailResponse), args.Error(1)
}

func (m *MockEventService) ListMyEvents(ctx context.Context, actor *authz.Actor) ([]*models.Event, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventService) ListParticipants(ctx context.Context, actor *authz.Actor, eventID int64) (*dto.ParticipantsResponse, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ParticipantsResponse), args.Error(1)
}

// MockParticipationService

type MockParticipationService struct{ mock.Mock }

func (m *MockParticipationService) Apply(ctx context.Context, actor *authz.Actor, eventID int64) (*dto.OutcomeResponse, error) {
	args := m.Called(ctx, actor, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OutcomeResponse), args.Error(1)
}

func (m *MockParticipationService) Withdraw(ctx context.Context, actor *authz.Actor, eventID int64) error {
	return m.Called(ctx, actor, eventID).Error(0)
}

func (m *MockParticipationService) Decide(ctx context.Context, actor *authz.Actor, eventID, participationID int64, action string) (*models.Participation, error) {
	args := m.Called(ctx, actor, eventID, participationID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Participation), args.Error(1)
}

// MockFeedService

type MockFeedService struct{ mock.Mock }

func (m *MockFeedService) GetFeed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedResponse), args.Error(1)
}

func (m *MockFeedService) GetMap(ctx context.Context) ([]dto.MapItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MapItem), args.Error(1)
}

func (m *MockFeedService) GetEventsMap(ctx context.Context) ([]dto.MapItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.MapItem), args.Error(1)
}

// MockDonationService

type MockDonationService struct{ mock.Mock }

func (m *MockDonationService) Checkout(ctx context.Context, viewer *authz.Actor, campaignID int64, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	args := m.Called(ctx, viewer, campaignID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CheckoutResponse), args.Error(1)
}

func (m *MockDonationService) Confirm(ctx context.Context, viewer *authz.Actor, orderID string) (*dto.DonationConfirmationResponse, error) {
	args := m.Called(ctx, viewer, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DonationConfirmationResponse), args.Error(1)
}

func (m *MockDonationService) HandleNotification(ctx context.Context, n *dto.PaymentNotification) (*dto.DonationConfirmationResponse, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DonationConfirmationResponse), args.Error(1)
}

type stubReceipts struct{ dir string }

func (s stubReceipts) Path(filename string) string { return s.dir + "/" + filename }
