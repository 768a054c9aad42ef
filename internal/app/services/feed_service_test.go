package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func newFeedFixtures() (FeedService, *MockEventStore, *MockPostStore, *MockCampaignStore, *MockUserStore) {
	events := new(MockEventStore)
	posts := new(MockPostStore)
	campaigns := new(MockCampaignStore)
	users := new(MockUserStore)
	svc := NewFeedService(events, posts, campaigns, nil, nil, users, zerolog.Nop())
	return svc, events, posts, campaigns, users
}

func TestFeedService_GetFeed(t *testing.T) {
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	svc, events, posts, campaigns, users := newFeedFixtures()

	events.On("ListAll", mock.Anything).Return([]*models.Event{
		{ID: 1, AssociationID: 20, AssociationName: "Croce Verde", Title: "Beach cleanup", Location: "Genova", Date: base.Add(48 * time.Hour)},
	}, nil)
	posts.On("ListAll", mock.Anything).Return([]*models.Post{
		{ID: 2, AssociationID: 21, AssociationName: "Banco Alimentare", Title: "Thank you", Content: "We collected food", CreatedAt: base},
	}, nil)
	campaigns.On("ListAll", mock.Anything).Return([]*models.Campaign{
		{ID: 3, AssociationID: 20, AssociationName: "Croce Verde", Title: "New ambulance", Description: "Help us", CreatedAt: base.Add(time.Hour)},
	}, nil)
	users.On("ListAssociations", mock.Anything).Return([]*models.User{
		{ID: 20, Name: "Croce Verde", RoleType: models.RoleAssociation},
		{ID: 21, Name: "Banco Alimentare", RoleType: models.RoleAssociation},
	}, nil)

	t.Run("newest first", func(t *testing.T) {
		resp, err := svc.GetFeed(context.Background(), &dto.FeedRequest{})
		require.NoError(t, err)
		items, ok := resp.Items.([]domain.FeedItem)
		require.True(t, ok)
		require.Len(t, items, 3)
		assert.Equal(t, domain.FeedKindEvent, items[0].Type)
		assert.Equal(t, domain.FeedKindCampaign, items[1].Type)
		assert.Equal(t, domain.FeedKindPost, items[2].Type)
		assert.Len(t, resp.AssociationOptions, 2)
		assert.Empty(t, resp.FoundAssociations)
		users.AssertNotCalled(t, "SearchAssociations")
	})

	t.Run("type and association filters", func(t *testing.T) {
		resp, err := svc.GetFeed(context.Background(), &dto.FeedRequest{Types: []string{"campaign", "event"}, AssociationIDs: []int64{20}})
		require.NoError(t, err)
		items := resp.Items.([]domain.FeedItem)
		require.Len(t, items, 2)
		for _, it := range items {
			assert.Equal(t, int64(20), it.AssociationID)
		}
	})

	t.Run("second page", func(t *testing.T) {
		resp, err := svc.GetFeed(context.Background(), &dto.FeedRequest{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Total)
		items := resp.Items.([]domain.FeedItem)
		require.Len(t, items, 1)
		assert.Equal(t, domain.FeedKindPost, items[0].Type)
	})

	t.Run("text query searches associations", func(t *testing.T) {
		users.On("SearchAssociations", mock.Anything, "banco", uint64(FoundAssociationsLimit)).
			Return([]*models.UserSummary{{ID: 21, Name: "Banco Alimentare"}}, nil)

		resp, err := svc.GetFeed(context.Background(), &dto.FeedRequest{Query: "banco"})
		require.NoError(t, err)
		require.Len(t, resp.FoundAssociations, 1)
		items := resp.Items.([]domain.FeedItem)
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID)
	})
}

func TestFeedService_GetEventsMap(t *testing.T) {
	svc, events, _, campaigns, _ := newFeedFixtures()
	events.On("ListGeolocated", mock.Anything).Return([]*models.Event{
		{ID: 1, Title: "Geolocated", Latitude: ptr(44.4), Longitude: ptr(8.9)},
		{ID: 2, Title: "No position"},
	}, nil)
	campaigns.On("ListGeolocated", mock.Anything).Return([]*models.Campaign{
		{ID: 3, Title: "Ambulance", Latitude: ptr(45.4), Longitude: ptr(9.1), Location: ptr("Milano")},
	}, nil)

	items, err := svc.GetEventsMap(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "event", items[0].Type)
	assert.Equal(t, "/events/1", items[0].URL)
	assert.Equal(t, "campaign", items[1].Type)
	assert.Equal(t, "Milano", items[1].Location)
	assert.InDelta(t, 45.4, items[1].Latitude, 1e-9)
}
