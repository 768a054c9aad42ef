package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
)

// CampaignService manages fundraising campaigns
type CampaignService interface {
	CreateCampaign(ctx context.Context, actor *authz.Actor, req *dto.CampaignRequest) (*models.Campaign, error)
	UpdateCampaign(ctx context.Context, actor *authz.Actor, campaignID int64, req *dto.CampaignRequest) (*models.Campaign, error)
	DeleteCampaign(ctx context.Context, actor *authz.Actor, campaignID int64) error
	UploadImage(ctx context.Context, actor *authz.Actor, campaignID int64, file *multipart.FileHeader) (*dto.UploadResponse, error)
	GetCampaign(ctx context.Context, campaignID int64) (*models.Campaign, error)
	ListMyCampaigns(ctx context.Context, actor *authz.Actor) ([]*models.Campaign, error)
}

type campaignServiceImpl struct {
	campaignRepo CampaignStore
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(campaignRepo CampaignStore, storage filestorage.FileStorage, logger zerolog.Logger) CampaignService {
	return &campaignServiceImpl{
		campaignRepo: campaignRepo,
		storage:      storage,
		logger:       logger.With().Str("service", "campaign").Logger(),
	}
}

func applyCampaignInput(c *models.Campaign, in domain.CampaignInput) {
	c.Title = in.Title
	c.Description = in.Description
	c.GoalAmount = in.GoalAmount
	c.Duration = in.Duration
	c.Date = in.Date
	c.EndDate = in.EndDate
	c.Location = in.Location
	c.Latitude, c.Longitude = in.Coordinates.LatLng()
}

// CreateCampaign starts a campaign for the calling association
func (s *campaignServiceImpl) CreateCampaign(ctx context.Context, actor *authz.Actor, req *dto.CampaignRequest) (*models.Campaign, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}

	in := req.ToInput()
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	campaign := &models.Campaign{AssociationID: actor.UserID, AssociationName: actor.Name}
	applyCampaignInput(campaign, in)
	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, fmt.Errorf("error creating campaign: %w", err)
	}
	s.logger.Info().Int64("campaignID", campaign.ID).Msg("Campaign created")
	return campaign, nil
}

func (s *campaignServiceImpl) ownedCampaign(ctx context.Context, actor *authz.Actor, campaignID int64) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateOwnership(actor, campaign.AssociationID, "campaigns"); err != nil {
		return nil, err
	}
	return campaign, nil
}

// UpdateCampaign replaces the editable fields of an owned campaign
func (s *campaignServiceImpl) UpdateCampaign(ctx context.Context, actor *authz.Actor, campaignID int64, req *dto.CampaignRequest) (*models.Campaign, error) {
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}

	in := req.ToInput()
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	applyCampaignInput(campaign, in)
	if err := s.campaignRepo.Update(ctx, campaign); err != nil {
		return nil, fmt.Errorf("error updating campaign: %w", err)
	}
	return campaign, nil
}

// DeleteCampaign removes an owned campaign
func (s *campaignServiceImpl) DeleteCampaign(ctx context.Context, actor *authz.Actor, campaignID int64) error {
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return err
	}
	if err := s.campaignRepo.Delete(ctx, campaignID); err != nil {
		return err
	}
	if campaign.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadCampaign, *campaign.ImageFilename)
	}
	return nil
}

// UploadImage attaches an image to an owned campaign
func (s *campaignServiceImpl) UploadImage(ctx context.Context, actor *authz.Actor, campaignID int64, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	campaign, err := s.ownedCampaign(ctx, actor, campaignID)
	if err != nil {
		return nil, err
	}

	filename, err := s.storage.Save(file, domain.UploadCampaign)
	if err != nil {
		return nil, imageError(err)
	}
	if err := s.campaignRepo.UpdateImage(ctx, campaignID, filename); err != nil {
		_ = s.storage.Delete(domain.UploadCampaign, filename)
		return nil, err
	}
	if campaign.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadCampaign, *campaign.ImageFilename)
	}
	return uploadResponse(domain.UploadCampaign, filename), nil
}

// GetCampaign returns one campaign
func (s *campaignServiceImpl) GetCampaign(ctx context.Context, campaignID int64) (*models.Campaign, error) {
	return s.campaignRepo.GetByID(ctx, campaignID)
}

// ListMyCampaigns returns the caller's campaigns
func (s *campaignServiceImpl) ListMyCampaigns(ctx context.Context, actor *authz.Actor) ([]*models.Campaign, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}
	list, err := s.campaignRepo.ListByAssociation(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return nonNil(list), nil
}
