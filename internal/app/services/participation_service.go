package services

import (
	"context"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/email"
)

// ParticipationService handles volunteer applications and their review
type ParticipationService interface {
	Apply(ctx context.Context, actor *authz.Actor, eventID int64) (*dto.OutcomeResponse, error)
	Withdraw(ctx context.Context, actor *authz.Actor, eventID int64) error
	Decide(ctx context.Context, actor *authz.Actor, eventID, participationID int64, action string) (*models.Participation, error)
}

type participationServiceImpl struct {
	participationRepo ParticipationStore
	eventRepo         EventStore
	userRepo          UserStore
	mailer            *Mailer
	logger            zerolog.Logger
}

// NewParticipationService creates a new ParticipationService
func NewParticipationService(
	participationRepo ParticipationStore,
	eventRepo EventStore,
	userRepo UserStore,
	mailer *Mailer,
	logger zerolog.Logger,
) ParticipationService {
	return &participationServiceImpl{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		userRepo:          userRepo,
		mailer:            mailer,
		logger:            logger.With().Str("service", "participation").Logger(),
	}
}

// Apply creates a pending application. A full event or a repeated application is
// reported as an outcome, not an error.
func (s *participationServiceImpl) Apply(ctx context.Context, actor *authz.Actor, eventID int64) (*dto.OutcomeResponse, error) {
	if err := authz.ValidateRole(actor, models.RoleVolunteer); err != nil {
		return nil, err
	}

	res, err := s.participationRepo.ApplyTx(ctx, actor.UserID, actor.Name, eventID)
	if err != nil {
		return nil, err
	}

	if res.Outcome == domain.ApplyCreated {
		s.logger.Info().Int64("eventID", eventID).Int64("volunteerID", actor.UserID).Msg("Application created")
	}
	return &dto.OutcomeResponse{Outcome: string(res.Outcome), Message: res.Outcome.Message()}, nil
}

// Withdraw deletes the caller's own application
func (s *participationServiceImpl) Withdraw(ctx context.Context, actor *authz.Actor, eventID int64) error {
	if err := authz.ValidateRole(actor, models.RoleVolunteer); err != nil {
		return err
	}
	return s.participationRepo.Withdraw(ctx, actor.UserID, eventID)
}

// Decide accepts or rejects an application of an owned event and mails the volunteer
func (s *participationServiceImpl) Decide(ctx context.Context, actor *authz.Actor, eventID, participationID int64, action string) (*models.Participation, error) {
	status, err := domain.ParseDecision(action)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateOwnership(actor, event.AssociationID, "events"); err != nil {
		return nil, err
	}

	res, err := s.participationRepo.DecideTx(ctx, eventID, participationID, status)
	if err != nil {
		return nil, err
	}

	s.notifyDecision(ctx, res.Participation, res.Event)
	return res.Participation, nil
}

func (s *participationServiceImpl) notifyDecision(ctx context.Context, p *models.Participation, event *models.Event) {
	volunteer, err := s.userRepo.GetByID(ctx, p.VolunteerID)
	if err != nil {
		s.logger.Warn().Err(err).Int64("volunteerID", p.VolunteerID).Msg("Could not load volunteer for decision mail")
		return
	}
	s.mailer.Queue(ctx, email.KindParticipationUpdate, volunteer.Email, volunteer.Name, map[string]string{
		"event":  event.Title,
		"status": string(p.Status),
		"url":    s.mailer.URL(domain.DetailURL("event", event.ID)),
	})
	s.logger.Info().
		Int64("participationID", p.ID).
		Str("status", string(p.Status)).
		Msg("Participation decided")
}
