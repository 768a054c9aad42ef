package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/helpers"
)

// FoundAssociationsLimit caps the association matches returned next to the feed
const FoundAssociationsLimit = 10

// FeedService builds the home feed and the map
type FeedService interface {
	GetFeed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error)
	GetMap(ctx context.Context) ([]dto.MapItem, error)
	GetEventsMap(ctx context.Context) ([]dto.MapItem, error)
}

type feedServiceImpl struct {
	eventRepo    EventStore
	postRepo     PostStore
	campaignRepo CampaignStore
	petitionRepo PetitionStore
	reportRepo   ReportStore
	userRepo     UserStore
	logger       zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	eventRepo EventStore,
	postRepo PostStore,
	campaignRepo CampaignStore,
	petitionRepo PetitionStore,
	reportRepo ReportStore,
	userRepo UserStore,
	logger zerolog.Logger,
) FeedService {
	return &feedServiceImpl{
		eventRepo:    eventRepo,
		postRepo:     postRepo,
		campaignRepo: campaignRepo,
		petitionRepo: petitionRepo,
		reportRepo:   reportRepo,
		userRepo:     userRepo,
		logger:       logger.With().Str("service", "feed").Logger(),
	}
}

func eventEntry(e *models.Event) domain.FeedEntry {
	entry := domain.FeedEntry{
		Kind:            domain.FeedKindEvent,
		ID:              e.ID,
		AssociationID:   e.AssociationID,
		AssociationName: e.AssociationName,
		Title:           e.Title,
		Location:        e.Location,
		Skills:          e.Skills,
		ImageFilename:   e.ImageFilename,
		Timestamp:       e.Date,
	}
	if e.Description != nil {
		entry.Body = *e.Description
	}
	return entry
}

func postEntry(p *models.Post) domain.FeedEntry {
	return domain.FeedEntry{
		Kind:            domain.FeedKindPost,
		ID:              p.ID,
		AssociationID:   p.AssociationID,
		AssociationName: p.AssociationName,
		Title:           p.Title,
		Body:            p.Content,
		ImageFilename:   p.ImageFilename,
		Timestamp:       p.CreatedAt,
	}
}

func campaignEntry(c *models.Campaign) domain.FeedEntry {
	entry := domain.FeedEntry{
		Kind:            domain.FeedKindCampaign,
		ID:              c.ID,
		AssociationID:   c.AssociationID,
		AssociationName: c.AssociationName,
		Title:           c.Title,
		Body:            c.Description,
		ImageFilename:   c.ImageFilename,
		Timestamp:       c.CreatedAt,
	}
	if c.Location != nil {
		entry.Location = *c.Location
	}
	return entry
}

// GetFeed merges events, posts and campaigns and applies the filters
func (s *feedServiceImpl) GetFeed(ctx context.Context, req *dto.FeedRequest) (*dto.FeedResponse, error) {
	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	campaigns, err := s.campaignRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing campaigns: %w", err)
	}

	eventEntries := make([]domain.FeedEntry, 0, len(events))
	for _, e := range events {
		eventEntries = append(eventEntries, eventEntry(e))
	}
	postEntries := make([]domain.FeedEntry, 0, len(posts))
	for _, p := range posts {
		postEntries = append(postEntries, postEntry(p))
	}
	campaignEntries := make([]domain.FeedEntry, 0, len(campaigns))
	for _, c := range campaigns {
		campaignEntries = append(campaignEntries, campaignEntry(c))
	}

	filter := domain.FeedFilter{AssociationIDs: req.AssociationIDs, Query: req.Query}
	for _, t := range req.Types {
		filter.Types = append(filter.Types, domain.FeedKind(t))
	}
	items := domain.FilterFeed(domain.BuildFeed(eventEntries, postEntries, campaignEntries), filter)
	total := len(items)
	if req.Page > 0 {
		start, end := helpers.CalculateSliceIndices(dto.PaginationRequest{Page: req.Page, PageSize: req.PageSize}, total)
		items = items[start:end]
	}

	resp := &dto.FeedResponse{
		Items:              items,
		Total:              total,
		FoundAssociations:  []*models.UserSummary{},
		AssociationOptions: []*models.UserSummary{},
	}

	if q := strings.TrimSpace(req.Query); q != "" {
		found, err := s.userRepo.SearchAssociations(ctx, q, FoundAssociationsLimit)
		if err != nil {
			return nil, fmt.Errorf("error searching associations: %w", err)
		}
		resp.FoundAssociations = nonNil(found)
	}

	assocs, err := s.userRepo.ListAssociations(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing associations: %w", err)
	}
	for _, a := range assocs {
		resp.AssociationOptions = append(resp.AssociationOptions, &models.UserSummary{
			ID:            a.ID,
			Name:          a.Name,
			RoleType:      a.RoleType,
			PhotoFilename: a.PhotoFilename,
		})
	}
	return resp, nil
}

func eventMapItem(e *models.Event) (dto.MapItem, bool) {
	c := e.Coordinates()
	if c == nil {
		return dto.MapItem{}, false
	}
	date := e.Date
	item := dto.MapItem{
		ID:            e.ID,
		Type:          string(domain.FeedKindEvent),
		Title:         e.Title,
		Date:          &date,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		Location:      e.Location,
		ImageFilename: e.ImageFilename,
		URL:           domain.DetailURL("event", e.ID),
	}
	if e.Description != nil {
		item.Description = *e.Description
	}
	return item, true
}

func campaignMapItem(cp *models.Campaign) (dto.MapItem, bool) {
	c := cp.Coordinates()
	if c == nil {
		return dto.MapItem{}, false
	}
	date := cp.Date
	item := dto.MapItem{
		ID:            cp.ID,
		Type:          string(domain.FeedKindCampaign),
		Title:         cp.Title,
		Description:   cp.Description,
		Date:          &date,
		Latitude:      c.Latitude,
		Longitude:     c.Longitude,
		ImageFilename: cp.ImageFilename,
		URL:           domain.DetailURL("campaign", cp.ID),
	}
	if cp.Location != nil {
		item.Location = *cp.Location
	}
	return item, true
}

func (s *feedServiceImpl) eventsAndCampaigns(ctx context.Context) ([]dto.MapItem, error) {
	events, err := s.eventRepo.ListGeolocated(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	campaigns, err := s.campaignRepo.ListGeolocated(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing campaigns: %w", err)
	}

	items := make([]dto.MapItem, 0, len(events)+len(campaigns))
	for _, e := range events {
		if item, ok := eventMapItem(e); ok {
			items = append(items, item)
		}
	}
	for _, c := range campaigns {
		if item, ok := campaignMapItem(c); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// GetMap lists every geolocated event, campaign, report and petition
func (s *feedServiceImpl) GetMap(ctx context.Context) ([]dto.MapItem, error) {
	items, err := s.eventsAndCampaigns(ctx)
	if err != nil {
		return nil, err
	}

	reports, err := s.reportRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing reports: %w", err)
	}
	for _, r := range reports {
		item := dto.MapItem{
			ID:            r.ID,
			Type:          "report",
			Title:         r.Title,
			Description:   r.Description,
			Latitude:      r.Latitude,
			Longitude:     r.Longitude,
			ImageFilename: r.ImageFilename,
			URL:           domain.DetailURL("report", r.ID),
		}
		if r.Address != nil {
			item.Location = *r.Address
		}
		items = append(items, item)
	}

	petitions, err := s.petitionRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing petitions: %w", err)
	}
	for _, p := range petitions {
		item := dto.MapItem{
			ID:            p.ID,
			Type:          "petition",
			Title:         p.Title,
			Description:   p.Description,
			Latitude:      p.Latitude,
			Longitude:     p.Longitude,
			ImageFilename: p.ImageFilename,
			URL:           domain.DetailURL("petition", p.ID),
		}
		if p.Location != nil {
			item.Location = *p.Location
		}
		items = append(items, item)
	}
	return items, nil
}

// GetEventsMap lists geolocated events and campaigns only
func (s *feedServiceImpl) GetEventsMap(ctx context.Context) ([]dto.MapItem, error) {
	return s.eventsAndCampaigns(ctx)
}
