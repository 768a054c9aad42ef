package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
	"github.com/yigit/volunteerhub/internal/pkg/helpers"
)

// Follow outcomes
const (
	OutcomeFollowed         = "followed"
	OutcomeUnfollowed       = "unfollowed"
	OutcomeAlreadyFollowing = "already_following"
	OutcomeNotFollowing     = "not_following"
	OutcomeNotAllowed       = "not_allowed"
)

// UserService defines the interface for profile and follow operations
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, actor *authz.Actor, req *dto.UpdateProfileRequest) (*models.User, error)
	UpdateProfilePhoto(ctx context.Context, actor *authz.Actor, file *multipart.FileHeader) (*dto.UploadResponse, error)
	DeleteProfilePhoto(ctx context.Context, actor *authz.Actor) error
	GetVolunteerProfile(ctx context.Context, volunteerID int64) (*dto.VolunteerProfileResponse, error)
	ListAssociations(ctx context.Context) ([]*models.User, error)
	GetAssociationProfile(ctx context.Context, associationID int64, viewer *authz.Actor) (*dto.AssociationProfileResponse, error)
	Follow(ctx context.Context, actor *authz.Actor, associationID int64) (*dto.OutcomeResponse, error)
	Unfollow(ctx context.Context, actor *authz.Actor, associationID int64) (*dto.OutcomeResponse, error)
	ListFollowed(ctx context.Context, volunteerID int64) ([]*models.UserSummary, error)
}

type userServiceImpl struct {
	userRepo     UserStore
	followRepo   FollowStore
	eventRepo    EventStore
	campaignRepo CampaignStore
	postRepo     PostStore
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo UserStore,
	followRepo FollowStore,
	eventRepo EventStore,
	campaignRepo CampaignStore,
	postRepo PostStore,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) UserService {
	return &userServiceImpl{
		userRepo:     userRepo,
		followRepo:   followRepo,
		eventRepo:    eventRepo,
		campaignRepo: campaignRepo,
		postRepo:     postRepo,
		storage:      storage,
		logger:       logger.With().Str("service", "user").Logger(),
	}
}

// GetProfile returns the full record of a user
func (s *userServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile rewrites the caller's identity and role payload
func (s *userServiceImpl) UpdateProfile(ctx context.Context, actor *authz.Actor, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Phone = helpers.TrimOptional(req.Phone)
	user.Bio = req.Bio
	user.Address = helpers.TrimOptional(req.Address)
	user.Latitude, user.Longitude = domain.ParseCoordinates(req.Latitude, req.Longitude).LatLng()

	switch user.RoleType {
	case models.RoleVolunteer:
		profile := user.Volunteer
		if profile == nil {
			profile = &models.VolunteerProfile{}
		}
		profile.Availability = helpers.TrimOptional(req.Availability)
		profile.DateOfBirth = nil
		if req.DateOfBirth != nil && strings.TrimSpace(*req.DateOfBirth) != "" {
			dob, err := time.Parse("2006-01-02", strings.TrimSpace(*req.DateOfBirth))
			if err != nil {
				return nil, apperrors.NewValidationError("dateOfBirth", "date of birth must be formatted as YYYY-MM-DD")
			}
			profile.DateOfBirth = &dob
		}
		user.Volunteer = profile
	case models.RoleAssociation:
		profile := user.Association
		if profile == nil {
			profile = &models.AssociationProfile{}
		}
		profile.Website = helpers.TrimOptional(req.Website)
		profile.IBAN = helpers.TrimOptional(req.IBAN)
		profile.TaxID = helpers.TrimOptional(req.TaxID)
		user.Association = profile
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("error updating user profile: %w", err)
	}
	return user, nil
}

// UpdateProfilePhoto stores a new photo and removes the previous one
func (s *userServiceImpl) UpdateProfilePhoto(ctx context.Context, actor *authz.Actor, fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	filename, err := s.storage.Save(fileHeader, domain.UploadProfile)
	if err != nil {
		return nil, imageError(err)
	}

	if err := s.userRepo.UpdatePhoto(ctx, user.ID, &filename); err != nil {
		_ = s.storage.Delete(domain.UploadProfile, filename)
		return nil, fmt.Errorf("error updating user's profile photo: %w", err)
	}

	if user.PhotoFilename != nil && *user.PhotoFilename != filename {
		if err := s.storage.Delete(domain.UploadProfile, *user.PhotoFilename); err != nil {
			s.logger.Warn().Err(err).Str("filename", *user.PhotoFilename).Msg("Could not delete previous profile photo")
		}
	}

	return uploadResponse(domain.UploadProfile, filename), nil
}

// DeleteProfilePhoto clears the caller's photo
func (s *userServiceImpl) DeleteProfilePhoto(ctx context.Context, actor *authz.Actor) error {
	user, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if user.PhotoFilename == nil {
		return apperrors.NewResourceNotFoundError("Profile photo does not exist for this user")
	}

	if err := s.userRepo.UpdatePhoto(ctx, user.ID, nil); err != nil {
		return fmt.Errorf("error updating user profile: %w", err)
	}
	if err := s.storage.Delete(domain.UploadProfile, *user.PhotoFilename); err != nil {
		s.logger.Warn().Err(err).Str("filename", *user.PhotoFilename).Msg("Could not delete profile photo file")
	}
	return nil
}

// GetVolunteerProfile returns the public page of a volunteer
func (s *userServiceImpl) GetVolunteerProfile(ctx context.Context, volunteerID int64) (*dto.VolunteerProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	if !user.IsVolunteer() {
		return nil, apperrors.NewResourceNotFoundError("volunteer not found")
	}

	followed, err := s.followRepo.ListFollowed(ctx, volunteerID)
	if err != nil {
		return nil, fmt.Errorf("error listing followed associations: %w", err)
	}

	return &dto.VolunteerProfileResponse{
		Volunteer: &models.UserSummary{
			ID:            user.ID,
			Name:          user.Name,
			RoleType:      user.RoleType,
			PhotoFilename: user.PhotoFilename,
		},
		Bio:                  user.Bio,
		FollowedAssociations: nonNil(followed),
	}, nil
}

// ListAssociations returns all associations by name
func (s *userServiceImpl) ListAssociations(ctx context.Context) ([]*models.User, error) {
	list, err := s.userRepo.ListAssociations(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(list), nil
}

// GetAssociationProfile returns the public page of an association
func (s *userServiceImpl) GetAssociationProfile(ctx context.Context, associationID int64, viewer *authz.Actor) (*dto.AssociationProfileResponse, error) {
	assoc, err := s.userRepo.GetByID(ctx, associationID)
	if err != nil {
		return nil, err
	}
	if !assoc.IsAssociation() {
		return nil, apperrors.NewResourceNotFoundError("association not found")
	}

	events, err := s.eventRepo.ListByAssociation(ctx, associationID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	campaigns, err := s.campaignRepo.ListByAssociation(ctx, associationID)
	if err != nil {
		return nil, fmt.Errorf("error listing campaigns: %w", err)
	}
	posts, err := s.postRepo.ListByAssociation(ctx, associationID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	followers, err := s.followRepo.CountFollowers(ctx, associationID)
	if err != nil {
		return nil, fmt.Errorf("error counting followers: %w", err)
	}

	following := false
	if viewer.IsVolunteer() {
		following, err = s.followRepo.IsFollowing(ctx, viewer.UserID, associationID)
		if err != nil {
			return nil, fmt.Errorf("error checking follow: %w", err)
		}
	}

	return &dto.AssociationProfileResponse{
		Association:    assoc,
		Events:         nonNil(events),
		Campaigns:      nonNil(campaigns),
		Posts:          nonNil(posts),
		FollowersCount: followers,
		IsFollowing:    following,
	}, nil
}

// followTarget reports whether actor may follow associationID; unknown users are 404
func (s *userServiceImpl) followTarget(ctx context.Context, actor *authz.Actor, associationID int64) (bool, error) {
	if !actor.IsVolunteer() || actor.UserID == associationID {
		return false, nil
	}
	target, err := s.userRepo.GetByID(ctx, associationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return false, apperrors.NewResourceNotFoundError("association not found")
		}
		return false, err
	}
	return target.IsAssociation(), nil
}

// Follow makes a volunteer follow an association
func (s *userServiceImpl) Follow(ctx context.Context, actor *authz.Actor, associationID int64) (*dto.OutcomeResponse, error) {
	ok, err := s.followTarget(ctx, actor, associationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.OutcomeResponse{Outcome: OutcomeNotAllowed, Message: "Only volunteers can follow associations."}, nil
	}

	created, err := s.followRepo.Follow(ctx, actor.UserID, associationID)
	if err != nil {
		return nil, fmt.Errorf("error following association: %w", err)
	}
	if !created {
		return &dto.OutcomeResponse{Outcome: OutcomeAlreadyFollowing, Message: "You are already following this association."}, nil
	}
	return &dto.OutcomeResponse{Outcome: OutcomeFollowed, Message: "You are now following this association."}, nil
}

// Unfollow removes a follow
func (s *userServiceImpl) Unfollow(ctx context.Context, actor *authz.Actor, associationID int64) (*dto.OutcomeResponse, error) {
	ok, err := s.followTarget(ctx, actor, associationID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &dto.OutcomeResponse{Outcome: OutcomeNotAllowed, Message: "Only volunteers can unfollow associations."}, nil
	}

	removed, err := s.followRepo.Unfollow(ctx, actor.UserID, associationID)
	if err != nil {
		return nil, fmt.Errorf("error unfollowing association: %w", err)
	}
	if !removed {
		return &dto.OutcomeResponse{Outcome: OutcomeNotFollowing, Message: "You are not following this association."}, nil
	}
	return &dto.OutcomeResponse{Outcome: OutcomeUnfollowed, Message: "You no longer follow this association."}, nil
}

// ListFollowed returns the associations a volunteer follows
func (s *userServiceImpl) ListFollowed(ctx context.Context, volunteerID int64) ([]*models.UserSummary, error) {
	list, err := s.followRepo.ListFollowed(ctx, volunteerID)
	if err != nil {
		return nil, err
	}
	return nonNil(list), nil
}
