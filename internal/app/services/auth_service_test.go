package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/auth"
	"github.com/yigit/volunteerhub/internal/pkg/email"
)

type authMocks struct {
	users     *MockUserStore
	tokens    *MockTokenStore
	resets    *MockPasswordResetStore
	issuer    *MockTokenIssuer
	publisher *recordingPublisher
}

func newAuthService() (AuthService, *authMocks) {
	m := &authMocks{
		users:     new(MockUserStore),
		tokens:    new(MockTokenStore),
		resets:    new(MockPasswordResetStore),
		issuer:    new(MockTokenIssuer),
		publisher: &recordingPublisher{},
	}
	mailer := NewMailer(m.publisher, "https://volunteerhub.test", zerolog.Nop())
	return NewAuthService(m.users, m.tokens, m.resets, m.issuer, mailer, zerolog.Nop()), m
}

func testPair() *auth.TokenPair {
	return &auth.TokenPair{
		AccessToken:      "access",
		RefreshToken:     "refresh",
		ExpiresIn:        900,
		RefreshExpiresIn: 604800,
		RefreshExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
}

func volunteerRequest() *dto.RegisterVolunteerRequest {
	dob := "1995-04-12"
	return &dto.RegisterVolunteerRequest{
		RegisterBase: dto.RegisterBase{
			Email:       "Marta@Example.org ",
			Password:    "secret123",
			Name:        "Marta Rossi",
			ConsentData: true,
			AcceptTerms: true,
		},
		DateOfBirth: &dob,
	}
}

func TestAuthService_RegisterVolunteer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, m := newAuthService()
		m.users.On("EmailExists", mock.Anything, "marta@example.org").Return(false, nil)
		m.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "marta@example.org" && u.RoleType == models.RoleVolunteer &&
				u.Password != "secret123" && u.Volunteer != nil && u.Volunteer.DateOfBirth != nil
		})).Run(func(args mock.Arguments) { args.Get(1).(*models.User).ID = 1 }).Return(nil)
		m.issuer.On("GenerateTokenPair", mock.Anything).Return(testPair(), nil)
		m.tokens.On("CreateToken", mock.Anything, "refresh", int64(1), mock.Anything).Return(nil)

		resp, err := svc.RegisterVolunteer(context.Background(), volunteerRequest())
		require.NoError(t, err)
		assert.Equal(t, "access", resp.Token.AccessToken)
		assert.Equal(t, "Bearer", resp.Token.TokenType)
		m.users.AssertExpectations(t)
		m.tokens.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		svc, m := newAuthService()
		m.users.On("EmailExists", mock.Anything, "marta@example.org").Return(true, nil)

		_, err := svc.RegisterVolunteer(context.Background(), volunteerRequest())
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		m.users.AssertNotCalled(t, "Create")
	})

	t.Run("terms not accepted", func(t *testing.T) {
		svc, _ := newAuthService()
		req := volunteerRequest()
		req.AcceptTerms = false

		_, err := svc.RegisterVolunteer(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("weak password", func(t *testing.T) {
		svc, _ := newAuthService()
		req := volunteerRequest()
		req.Password = "short"

		_, err := svc.RegisterVolunteer(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("bad date of birth", func(t *testing.T) {
		svc, m := newAuthService()
		m.users.On("EmailExists", mock.Anything, "marta@example.org").Return(false, nil)
		req := volunteerRequest()
		bad := "12/04/1995"
		req.DateOfBirth = &bad

		_, err := svc.RegisterVolunteer(context.Background(), req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{ID: 1, Email: "marta@example.org", Password: hash, RoleType: models.RoleVolunteer}

	tests := []struct {
		name        string
		password    string
		lookupErr   error
		expectedErr error
	}{
		{name: "valid", password: "secret123"},
		{name: "wrong password", password: "nope12345", expectedErr: apperrors.ErrInvalidCredentials},
		{name: "unknown email", password: "secret123", lookupErr: apperrors.ErrUserNotFound, expectedErr: apperrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newAuthService()
			if tt.lookupErr != nil {
				m.users.On("GetByEmail", mock.Anything, "marta@example.org").Return(nil, tt.lookupErr)
			} else {
				m.users.On("GetByEmail", mock.Anything, "marta@example.org").Return(user, nil)
			}
			m.issuer.On("GenerateTokenPair", user).Return(testPair(), nil).Maybe()
			m.tokens.On("CreateToken", mock.Anything, "refresh", int64(1), mock.Anything).Return(nil).Maybe()

			resp, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "marta@example.org", Password: tt.password})
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "refresh", resp.Token.RefreshToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the token", func(t *testing.T) {
		svc, m := newAuthService()
		user := &models.User{ID: 1}
		m.tokens.On("GetUserIDByToken", mock.Anything, "old").Return(int64(1), nil)
		m.users.On("GetByID", mock.Anything, int64(1)).Return(user, nil)
		m.tokens.On("RevokeToken", mock.Anything, "old").Return(nil)
		m.issuer.On("GenerateTokenPair", user).Return(testPair(), nil)
		m.tokens.On("CreateToken", mock.Anything, "refresh", int64(1), mock.Anything).Return(nil)

		resp, err := svc.RefreshToken(context.Background(), "old")
		require.NoError(t, err)
		assert.Equal(t, "refresh", resp.RefreshToken)
		m.tokens.AssertExpectations(t)
	})

	t.Run("revoked token", func(t *testing.T) {
		svc, m := newAuthService()
		m.tokens.On("GetUserIDByToken", mock.Anything, "old").Return(int64(0), apperrors.ErrTokenRevoked)

		_, err := svc.RefreshToken(context.Background(), "old")
		assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	})

	t.Run("empty token", func(t *testing.T) {
		svc, _ := newAuthService()
		_, err := svc.RefreshToken(context.Background(), " ")
		assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	t.Run("known address gets a mail", func(t *testing.T) {
		svc, m := newAuthService()
		m.users.On("GetByEmail", mock.Anything, "marta@example.org").
			Return(&models.User{ID: 1, Email: "marta@example.org", Name: "Marta"}, nil)
		m.resets.On("CreateToken", mock.Anything, int64(1), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil)

		require.NoError(t, svc.RequestPasswordReset(context.Background(), "marta@example.org"))
		jobs := m.publisher.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, email.KindPasswordReset, jobs[0].Kind)
		assert.True(t, strings.HasPrefix(jobs[0].Data["url"], "https://volunteerhub.test/reset-password?token="))
	})

	t.Run("unknown address is silent", func(t *testing.T) {
		svc, m := newAuthService()
		m.users.On("GetByEmail", mock.Anything, "ghost@example.org").Return(nil, apperrors.ErrUserNotFound)

		require.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@example.org"))
		assert.Empty(t, m.publisher.Jobs())
		m.resets.AssertNotCalled(t, "CreateToken")
	})

	t.Run("storage failure is silent", func(t *testing.T) {
		svc, m := newAuthService()
		m.users.On("GetByEmail", mock.Anything, "marta@example.org").Return(&models.User{ID: 1, Email: "marta@example.org"}, nil)
		m.resets.On("CreateToken", mock.Anything, int64(1), mock.Anything, mock.Anything).Return(errors.New("db down"))

		require.NoError(t, svc.RequestPasswordReset(context.Background(), "marta@example.org"))
		assert.Empty(t, m.publisher.Jobs())
	})
}

func TestAuthService_ConfirmPasswordReset(t *testing.T) {
	t.Run("expired link", func(t *testing.T) {
		svc, m := newAuthService()
		m.resets.On("ResetPassword", mock.Anything, "tok", mock.AnythingOfType("string")).Return(int64(0), apperrors.ErrTokenExpired)

		err := svc.ConfirmPasswordReset(context.Background(), &dto.ResetPasswordConfirmRequest{Token: "tok", NewPassword: "newpass123"})
		assert.ErrorIs(t, err, apperrors.ErrBadRequest)
	})

	t.Run("success", func(t *testing.T) {
		svc, m := newAuthService()
		m.resets.On("ResetPassword", mock.Anything, "tok", mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "newpass123")
		})).Return(int64(1), nil)

		err := svc.ConfirmPasswordReset(context.Background(), &dto.ResetPasswordConfirmRequest{Token: "tok", NewPassword: "newpass123"})
		require.NoError(t, err)
		m.resets.AssertExpectations(t)
	})
}
