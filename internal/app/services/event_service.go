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

// EventService manages events of associations
type EventService interface {
	CreateEvent(ctx context.Context, actor *authz.Actor, req *dto.EventRequest) (*models.Event, error)
	UpdateEvent(ctx context.Context, actor *authz.Actor, eventID int64, req *dto.EventRequest) (*models.Event, error)
	DeleteEvent(ctx context.Context, actor *authz.Actor, eventID int64) error
	UploadImage(ctx context.Context, actor *authz.Actor, eventID int64, file *multipart.FileHeader) (*dto.UploadResponse, error)
	GetEvent(ctx context.Context, eventID int64, viewer *authz.Actor) (*dto.EventDetailResponse, error)
	ListMyEvents(ctx context.Context, actor *authz.Actor) ([]*models.Event, error)
	ListParticipants(ctx context.Context, actor *authz.Actor, eventID int64) (*dto.ParticipantsResponse, error)
}

type eventServiceImpl struct {
	eventRepo         EventStore
	participationRepo ParticipationStore
	storage           filestorage.FileStorage
	logger            zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo EventStore,
	participationRepo ParticipationStore,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		storage:           storage,
		logger:            logger.With().Str("service", "event").Logger(),
	}
}

func applyEventInput(e *models.Event, in domain.EventInput) {
	e.Title = in.Title
	e.Description = in.Description
	e.Date = in.Date
	e.EndDate = in.EndDate
	e.Location = in.Location
	e.Latitude, e.Longitude = in.Coordinates.LatLng()
	e.Duration = in.Duration
	e.Skills = in.Skills
	e.Activity = in.Activity
	e.Type = in.Type
	e.CapacityMax = in.CapacityMax
}

// CreateEvent publishes a new event for the calling association
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actor *authz.Actor, req *dto.EventRequest) (*models.Event, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}

	in := req.ToInput()
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	event := &models.Event{AssociationID: actor.UserID, AssociationName: actor.Name}
	applyEventInput(event, in)
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("error creating event: %w", err)
	}

	s.logger.Info().Int64("eventID", event.ID).Int64("associationID", actor.UserID).Msg("Event created")
	return event, nil
}

func (s *eventServiceImpl) ownedEvent(ctx context.Context, actor *authz.Actor, eventID int64) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateOwnership(actor, event.AssociationID, "events"); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent replaces the editable fields of an owned event
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, actor *authz.Actor, eventID int64, req *dto.EventRequest) (*models.Event, error) {
	event, err := s.ownedEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	in := req.ToInput()
	if err := in.Normalize(); err != nil {
		return nil, err
	}

	applyEventInput(event, in)
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return event, nil
}

// DeleteEvent removes an owned event together with its participations
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, actor *authz.Actor, eventID int64) error {
	event, err := s.ownedEvent(ctx, actor, eventID)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}
	if event.ImageFilename != nil {
		if err := s.storage.Delete(domain.UploadEvent, *event.ImageFilename); err != nil {
			s.logger.Warn().Err(err).Int64("eventID", eventID).Msg("Could not delete event image")
		}
	}
	s.logger.Info().Int64("eventID", eventID).Msg("Event deleted")
	return nil
}

// UploadImage attaches an image to an owned event
func (s *eventServiceImpl) UploadImage(ctx context.Context, actor *authz.Actor, eventID int64, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	event, err := s.ownedEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	filename, err := s.storage.Save(file, domain.UploadEvent)
	if err != nil {
		return nil, imageError(err)
	}
	if err := s.eventRepo.UpdateImage(ctx, eventID, filename); err != nil {
		_ = s.storage.Delete(domain.UploadEvent, filename)
		return nil, err
	}
	if event.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadEvent, *event.ImageFilename)
	}
	return uploadResponse(domain.UploadEvent, filename), nil
}

// GetEvent returns an event with its capacity and, for volunteers, their application status
func (s *eventServiceImpl) GetEvent(ctx context.Context, eventID int64, viewer *authz.Actor) (*dto.EventDetailResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := &dto.EventDetailResponse{
		Event:    event,
		Capacity: event.Capacity(),
		IsOwner:  viewer != nil && viewer.UserID == event.AssociationID,
	}
	if viewer.IsVolunteer() {
		status, err := s.participationRepo.GetStatus(ctx, viewer.UserID, eventID)
		if err != nil {
			return nil, fmt.Errorf("error loading participation status: %w", err)
		}
		resp.ParticipationStatus = status
	}
	return resp, nil
}

// ListMyEvents returns the caller's events ordered by date
func (s *eventServiceImpl) ListMyEvents(ctx context.Context, actor *authz.Actor) ([]*models.Event, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.ListByAssociation(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return nonNil(events), nil
}

// ListParticipants returns the applications of an owned event
func (s *eventServiceImpl) ListParticipants(ctx context.Context, actor *authz.Actor, eventID int64) (*dto.ParticipantsResponse, error) {
	event, err := s.ownedEvent(ctx, actor, eventID)
	if err != nil {
		return nil, err
	}

	list, err := s.participationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error listing participants: %w", err)
	}
	return &dto.ParticipantsResponse{
		Event:          event,
		Capacity:       event.Capacity(),
		Participations: nonNil(list),
	}, nil
}
