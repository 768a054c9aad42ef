package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
)

// DashboardService collects the personal overview pages
type DashboardService interface {
	VolunteerDashboard(ctx context.Context, actor *authz.Actor) (*dto.VolunteerDashboard, error)
	AssociationDashboard(ctx context.Context, actor *authz.Actor) (*dto.AssociationDashboard, error)
}

type dashboardServiceImpl struct {
	reportRepo        ReportStore
	petitionRepo      PetitionStore
	donationRepo      DonationStore
	participationRepo ParticipationStore
	eventRepo         EventStore
	campaignRepo      CampaignStore
	postRepo          PostStore
	now               func() time.Time
	logger            zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	reportRepo ReportStore,
	petitionRepo PetitionStore,
	donationRepo DonationStore,
	participationRepo ParticipationStore,
	eventRepo EventStore,
	campaignRepo CampaignStore,
	postRepo PostStore,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		reportRepo:        reportRepo,
		petitionRepo:      petitionRepo,
		donationRepo:      donationRepo,
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		campaignRepo:      campaignRepo,
		postRepo:          postRepo,
		now:               time.Now,
		logger:            logger.With().Str("service", "dashboard").Logger(),
	}
}

// VolunteerDashboard lists the volunteer's reports, petitions, donations and participations
func (s *dashboardServiceImpl) VolunteerDashboard(ctx context.Context, actor *authz.Actor) (*dto.VolunteerDashboard, error) {
	if err := authz.ValidateRole(actor, models.RoleVolunteer); err != nil {
		return nil, err
	}
	now := s.now()

	reports, err := s.reportRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	petitions, err := s.petitionRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing petitions: %w", err)
	}
	donations, err := s.donationRepo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing donations: %w", err)
	}
	upcoming, err := s.participationRepo.ListByVolunteer(ctx, actor.UserID, now, true, "")
	if err != nil {
		return nil, fmt.Errorf("error listing participations: %w", err)
	}
	past, err := s.participationRepo.ListByVolunteer(ctx, actor.UserID, now, false, domain.ParticipationAccepted)
	if err != nil {
		return nil, fmt.Errorf("error listing past participations: %w", err)
	}

	activities := make([]dto.ActivityItem, 0, len(reports)+len(petitions))
	for _, r := range reports {
		activities = append(activities, dto.ActivityItem{
			Type: "report", ID: r.ID, Title: r.Title, CreatedAt: r.CreatedAt, URL: domain.DetailURL("report", r.ID),
		})
	}
	for _, p := range petitions {
		activities = append(activities, dto.ActivityItem{
			Type: "petition", ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt, URL: domain.DetailURL("petition", p.ID),
		})
	}
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})

	history := make([]dto.HistoryItem, 0, len(donations)+len(past))
	for _, d := range donations {
		amount := d.Amount
		history = append(history, dto.HistoryItem{
			Type: "donation", ID: d.ID, Title: d.CampaignTitle, Date: d.CreatedAt, Amount: &amount,
			URL: domain.DetailURL("campaign", d.CampaignID),
		})
	}
	for _, p := range past {
		if p.Event == nil {
			continue
		}
		history = append(history, dto.HistoryItem{
			Type: "event", ID: p.Event.ID, Title: p.Event.Title, Date: p.Event.Date,
			URL: domain.DetailURL("event", p.Event.ID),
		})
	}
	sortHistory(history)

	return &dto.VolunteerDashboard{
		Activities:     activities,
		Donations:      nonNil(donations),
		Participations: nonNil(upcoming),
		History:        history,
	}, nil
}

// AssociationDashboard lists the association's content, received donations and finished activities
func (s *dashboardServiceImpl) AssociationDashboard(ctx context.Context, actor *authz.Actor) (*dto.AssociationDashboard, error) {
	if err := authz.ValidateRole(actor, models.RoleAssociation); err != nil {
		return nil, err
	}
	now := s.now()

	posts, err := s.postRepo.ListByAssociation(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	events, err := s.eventRepo.ListByAssociation(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	campaigns, err := s.campaignRepo.ListByAssociation(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing campaigns: %w", err)
	}
	donations, err := s.donationRepo.ListByAssociation(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing donations: %w", err)
	}

	history := []dto.HistoryItem{}
	for _, e := range events {
		if domain.EventFinished(e.Date, e.EndDate, now) {
			history = append(history, dto.HistoryItem{
				Type: "event", ID: e.ID, Title: e.Title, Date: e.Date, URL: domain.DetailURL("event", e.ID),
			})
		}
	}
	for _, c := range campaigns {
		if domain.HasEnded(c.EndDate, now) {
			history = append(history, dto.HistoryItem{
				Type: "campaign", ID: c.ID, Title: c.Title, Date: *c.EndDate, URL: domain.DetailURL("campaign", c.ID),
			})
		}
	}
	sortHistory(history)

	return &dto.AssociationDashboard{
		Posts:     nonNil(posts),
		Events:    nonNil(events),
		Campaigns: nonNil(campaigns),
		Donations: nonNil(donations),
		History:   history,
	}, nil
}

func sortHistory(items []dto.HistoryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})
}
