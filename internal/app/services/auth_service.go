package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/auth"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/helpers"
)

// PasswordResetTTL is the lifetime of a password reset link
const PasswordResetTTL = time.Hour

// ResetPasswordMessage is returned whether or not the address is registered
const ResetPasswordMessage = "If the address is registered, you will receive an email with instructions to reset your password."

// TokenIssuer signs token pairs
type TokenIssuer interface {
	GenerateTokenPair(user *models.User) (*auth.TokenPair, error)
}

// AuthService handles registration, login and token lifecycle
type AuthService interface {
	RegisterVolunteer(ctx context.Context, req *dto.RegisterVolunteerRequest) (*dto.AuthResponse, error)
	RegisterAssociation(ctx context.Context, req *dto.RegisterAssociationRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, emailAddr string) error
	ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirmRequest) error
}

type authServiceImpl struct {
	userRepo  UserStore
	tokenRepo TokenStore
	resetRepo PasswordResetStore
	tokens    TokenIssuer
	mailer    *Mailer
	logger    zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo UserStore,
	tokenRepo TokenStore,
	resetRepo PasswordResetStore,
	tokens TokenIssuer,
	mailer *Mailer,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		resetRepo: resetRepo,
		tokens:    tokens,
		mailer:    mailer,
		logger:    logger.With().Str("service", "auth").Logger(),
	}
}

func (s *authServiceImpl) newUser(ctx context.Context, base dto.RegisterBase, role models.RoleType) (*models.User, error) {
	if !base.ConsentData || !base.AcceptTerms {
		return nil, apperrors.NewValidationError("acceptTerms", "you must accept the terms and the data processing consent")
	}
	if !auth.IsStrongPassword(base.Password) {
		return nil, apperrors.NewValidationError("password", "password must be at least 8 characters and contain a letter and a digit")
	}

	addr := strings.ToLower(strings.TrimSpace(base.Email))
	exists, err := s.userRepo.EmailExists(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("error checking if email exists: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError("an account with this email already exists")
	}

	hash, err := auth.HashPassword(base.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	coords := domain.ParseCoordinates(base.Latitude, base.Longitude)
	lat, lng := coords.LatLng()
	return &models.User{
		Email:       addr,
		Password:    hash,
		Name:        strings.TrimSpace(base.Name),
		RoleType:    role,
		Phone:       helpers.TrimOptional(base.Phone),
		Address:     helpers.TrimOptional(base.Address),
		Latitude:    lat,
		Longitude:   lng,
		ConsentData: base.ConsentData,
		AcceptTerms: base.AcceptTerms,
	}, nil
}

// RegisterVolunteer creates a volunteer account and signs it in
func (s *authServiceImpl) RegisterVolunteer(ctx context.Context, req *dto.RegisterVolunteerRequest) (*dto.AuthResponse, error) {
	user, err := s.newUser(ctx, req.RegisterBase, models.RoleVolunteer)
	if err != nil {
		return nil, err
	}

	profile := &models.VolunteerProfile{Availability: helpers.TrimOptional(req.Availability)}
	if req.DateOfBirth != nil && strings.TrimSpace(*req.DateOfBirth) != "" {
		dob, err := time.Parse("2006-01-02", strings.TrimSpace(*req.DateOfBirth))
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth", "date of birth must be formatted as YYYY-MM-DD")
		}
		profile.DateOfBirth = &dob
	}
	user.Volunteer = profile

	return s.create(ctx, user)
}

// RegisterAssociation creates an association account and signs it in
func (s *authServiceImpl) RegisterAssociation(ctx context.Context, req *dto.RegisterAssociationRequest) (*dto.AuthResponse, error) {
	user, err := s.newUser(ctx, req.RegisterBase, models.RoleAssociation)
	if err != nil {
		return nil, err
	}
	user.Association = &models.AssociationProfile{
		Website: helpers.TrimOptional(req.Website),
		IBAN:    helpers.TrimOptional(req.IBAN),
		TaxID:   helpers.TrimOptional(req.TaxID),
	}
	return s.create(ctx, user)
}

func (s *authServiceImpl) create(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.NewConflictError("an account with this email already exists")
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}
	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User registered")

	token, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: *token, User: user}, nil
}

// Login authenticates a user by email and password
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: *token, User: user}, nil
}

// RefreshToken rotates a refresh token: the old one is revoked, a new pair is issued
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, apperrors.ErrTokenInvalid
	}

	userID, err := s.tokenRepo.GetUserIDByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke old token: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes a refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.RevokeToken(ctx, refreshToken)
}

// RequestPasswordReset queues a reset mail when the address belongs to a user.
// Unknown addresses and lookup failures are not reported to the caller.
func (s *authServiceImpl) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Error().Err(err).Msg("Error looking up user for password reset")
		}
		return nil
	}

	token := uuid.New().String()
	if err := s.resetRepo.CreateToken(ctx, user.ID, token, time.Now().Add(PasswordResetTTL)); err != nil {
		s.logger.Error().Err(err).Int64("userID", user.ID).Msg("Error storing password reset token")
		return nil
	}

	s.mailer.Queue(ctx, email.KindPasswordReset, user.Email, user.Name, map[string]string{
		"expires_in": "1 hour",
		"url":        s.mailer.URL("/reset-password?token=" + token),
	})
	return nil
}

// ConfirmPasswordReset sets a new password with a valid reset token
func (s *authServiceImpl) ConfirmPasswordReset(ctx context.Context, req *dto.ResetPasswordConfirmRequest) error {
	if !auth.IsStrongPassword(req.NewPassword) {
		return apperrors.NewValidationError("newPassword", "password must be at least 8 characters and contain a letter and a digit")
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	userID, err := s.resetRepo.ResetPassword(ctx, req.Token, hash)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrTokenNotFound, apperrors.ErrTokenExpired, apperrors.ErrTokenRevoked) {
			return apperrors.NewBadRequestError("the reset link is invalid or has expired")
		}
		return err
	}
	s.logger.Info().Int64("userID", userID).Msg("Password reset completed")
	return nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	pair, err := s.tokens.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("token generation error: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, pair.RefreshToken, user.ID, pair.RefreshExpiresAt); err != nil {
		return nil, fmt.Errorf("token saving error: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:           pair.AccessToken,
		TokenType:             "Bearer",
		ExpiresIn:             pair.ExpiresIn,
		RefreshToken:          pair.RefreshToken,
		RefreshTokenExpiresIn: pair.RefreshExpiresIn,
	}, nil
}
