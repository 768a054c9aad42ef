package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
)

// Petition outcomes
const (
	OutcomeSigned           = "signed"
	OutcomeAlreadySigned    = "already_signed"
	OutcomeSupported        = "supported"
	OutcomeAlreadySupported = "already_supported"
)

// PetitionService manages petitions, signatures and association support
type PetitionService interface {
	CreatePetition(ctx context.Context, actor *authz.Actor, req *dto.PetitionRequest) (*models.Petition, error)
	UpdatePetition(ctx context.Context, actor *authz.Actor, petitionID int64, req *dto.PetitionRequest) (*models.Petition, error)
	UploadImage(ctx context.Context, actor *authz.Actor, petitionID int64, file *multipart.FileHeader) (*dto.UploadResponse, error)
	GetPetition(ctx context.Context, petitionID int64) (*models.Petition, error)
	ListPetitions(ctx context.Context) ([]*models.Petition, error)
	Sign(ctx context.Context, actor *authz.Actor, petitionID int64) (*dto.OutcomeResponse, error)
	Support(ctx context.Context, actor *authz.Actor, petitionID int64) (*dto.OutcomeResponse, error)
}

type petitionServiceImpl struct {
	petitionRepo PetitionStore
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewPetitionService creates a new PetitionService
func NewPetitionService(petitionRepo PetitionStore, storage filestorage.FileStorage, logger zerolog.Logger) PetitionService {
	return &petitionServiceImpl{
		petitionRepo: petitionRepo,
		storage:      storage,
		logger:       logger.With().Str("service", "petition").Logger(),
	}
}

// requirePosition parses mandatory coordinates
func requirePosition(c *domain.Coordinates) (*domain.Coordinates, error) {
	if c == nil {
		return nil, apperrors.NewValidationError("latitude", "invalid coordinates: set the position on the map")
	}
	return c, nil
}

func applyPetition(p *models.Petition, req *dto.PetitionRequest) error {
	pos, err := requirePosition(req.Position())
	if err != nil {
		return err
	}
	p.Title = strings.TrimSpace(req.Title)
	p.Description = strings.TrimSpace(req.Description)
	if p.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if p.Description == "" {
		return apperrors.NewValidationError("description", "description is required")
	}
	p.Location = req.Location
	p.Latitude, p.Longitude = pos.Latitude, pos.Longitude
	return nil
}

// CreatePetition starts a petition authored by the caller
func (s *petitionServiceImpl) CreatePetition(ctx context.Context, actor *authz.Actor, req *dto.PetitionRequest) (*models.Petition, error) {
	p := &models.Petition{UserID: actor.UserID, AuthorName: actor.Name}
	if err := applyPetition(p, req); err != nil {
		return nil, err
	}
	if err := s.petitionRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("error creating petition: %w", err)
	}
	return p, nil
}

func (s *petitionServiceImpl) ownedPetition(ctx context.Context, actor *authz.Actor, petitionID int64) (*models.Petition, error) {
	p, err := s.petitionRepo.GetByID(ctx, petitionID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateOwnership(actor, p.UserID, "petitions"); err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePetition edits a petition of the caller
func (s *petitionServiceImpl) UpdatePetition(ctx context.Context, actor *authz.Actor, petitionID int64, req *dto.PetitionRequest) (*models.Petition, error) {
	p, err := s.ownedPetition(ctx, actor, petitionID)
	if err != nil {
		return nil, err
	}
	if err := applyPetition(p, req); err != nil {
		return nil, err
	}
	if err := s.petitionRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("error updating petition: %w", err)
	}
	return p, nil
}

// UploadImage attaches an image to a petition of the caller
func (s *petitionServiceImpl) UploadImage(ctx context.Context, actor *authz.Actor, petitionID int64, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	p, err := s.ownedPetition(ctx, actor, petitionID)
	if err != nil {
		return nil, err
	}

	filename, err := s.storage.Save(file, domain.UploadPetition)
	if err != nil {
		return nil, imageError(err)
	}
	if err := s.petitionRepo.UpdateImage(ctx, petitionID, filename); err != nil {
		_ = s.storage.Delete(domain.UploadPetition, filename)
		return nil, err
	}
	if p.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadPetition, *p.ImageFilename)
	}
	return uploadResponse(domain.UploadPetition, filename), nil
}

// GetPetition returns one petition with its counters
func (s *petitionServiceImpl) GetPetition(ctx context.Context, petitionID int64) (*models.Petition, error) {
	return s.petitionRepo.GetByID(ctx, petitionID)
}

// ListPetitions returns every petition, newest first
func (s *petitionServiceImpl) ListPetitions(ctx context.Context) ([]*models.Petition, error) {
	list, err := s.petitionRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(list), nil
}

// Sign adds the caller's signature once
func (s *petitionServiceImpl) Sign(ctx context.Context, actor *authz.Actor, petitionID int64) (*dto.OutcomeResponse, error) {
	if _, err := s.petitionRepo.GetByID(ctx, petitionID); err != nil {
		return nil, err
	}
	signed, err := s.petitionRepo.Sign(ctx, petitionID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !signed {
		return &dto.OutcomeResponse{Outcome: OutcomeAlreadySigned, Message: "You have already signed this petition."}, nil
	}
	return &dto.OutcomeResponse{Outcome: OutcomeSigned, Message: "Thank you for signing!"}, nil
}

// Support records an association's support once
func (s *petitionServiceImpl) Support(ctx context.Context, actor *authz.Actor, petitionID int64) (*dto.OutcomeResponse, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}
	if _, err := s.petitionRepo.GetByID(ctx, petitionID); err != nil {
		return nil, err
	}
	supported, err := s.petitionRepo.Support(ctx, petitionID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !supported {
		return &dto.OutcomeResponse{Outcome: OutcomeAlreadySupported, Message: "Your association already supports this petition."}, nil
	}
	return &dto.OutcomeResponse{Outcome: OutcomeSupported, Message: "Your association now supports this petition."}, nil
}
