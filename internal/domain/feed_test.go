package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuildFeed_DescendingByRepresentativeTimestamp(t *testing.T) {
	events := []FeedEntry{{Kind: FeedKindEvent, ID: 1, Title: "Beach cleanup", Timestamp: day(2024, 1, 1)}}
	posts := []FeedEntry{{Kind: FeedKindPost, ID: 2, Title: "Thank you", Timestamp: day(2024, 2, 1)}}
	campaigns := []FeedEntry{{Kind: FeedKindCampaign, ID: 3, Title: "Raccolta", Timestamp: day(2024, 3, 1)}}

	items := BuildFeed(events, posts, campaigns)

	require.Len(t, items, 3)
	assert.Equal(t, FeedKindCampaign, items[0].Type)
	assert.Equal(t, FeedKindPost, items[1].Type)
	assert.Equal(t, FeedKindEvent, items[2].Type)
	assert.Equal(t, "/campaigns/3", items[0].URL)
	assert.Equal(t, "/posts/2", items[1].URL)
	assert.Equal(t, "/events/1", items[2].URL)
}

func TestBuildFeed_TiesKeepInsertionOrder(t *testing.T) {
	ts := day(2024, 5, 5)
	items := BuildFeed(
		[]FeedEntry{{Kind: FeedKindEvent, ID: 1, Timestamp: ts}},
		[]FeedEntry{{Kind: FeedKindPost, ID: 1, Timestamp: ts}},
		[]FeedEntry{{Kind: FeedKindCampaign, ID: 1, Timestamp: ts}},
	)

	require.Len(t, items, 3)
	assert.Equal(t, []FeedKind{FeedKindEvent, FeedKindPost, FeedKindCampaign},
		[]FeedKind{items[0].Type, items[1].Type, items[2].Type})
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("à", 200)

	assert.Equal(t, "", Preview(""))
	assert.Equal(t, "short...", Preview("short"))
	p := Preview(long)
	assert.Equal(t, PreviewLength+3, len([]rune(p)))
	assert.True(t, strings.HasSuffix(p, "..."))
}

func TestFilterFeed(t *testing.T) {
	items := BuildFeed(
		[]FeedEntry{{Kind: FeedKindEvent, ID: 1, AssociationID: 10, AssociationName: "Croce Verde", Title: "Corso primo soccorso", Location: "Bari", Skills: []string{"first aid"}, Timestamp: day(2024, 1, 1)}},
		[]FeedEntry{{Kind: FeedKindPost, ID: 2, AssociationID: 20, AssociationName: "Amici del Mare", Title: "Spiaggia pulita", Body: "Grazie a tutti", Timestamp: day(2024, 2, 1)}},
		[]FeedEntry{{Kind: FeedKindCampaign, ID: 3, AssociationID: 10, AssociationName: "Croce Verde", Title: "Raccolta Fondi Città di Bari", Timestamp: day(2024, 3, 1)}},
	)

	tests := []struct {
		name   string
		filter FeedFilter
		want   []int64
	}{
		{"no filter", FeedFilter{}, []int64{3, 2, 1}},
		{"by type", FeedFilter{Types: []FeedKind{FeedKindPost, FeedKindEvent}}, []int64{2, 1}},
		{"by association", FeedFilter{AssociationIDs: []int64{10}}, []int64{3, 1}},
		{"by query on title", FeedFilter{Query: "citta bari"}, []int64{3}},
		{"by query on skills", FeedFilter{Query: "FIRST aid"}, []int64{1}},
		{"by query on association name", FeedFilter{Query: "amici"}, []int64{2}},
		{"combined filters", FeedFilter{Types: []FeedKind{FeedKindCampaign}, AssociationIDs: []int64{20}}, []int64{}},
		{"no match", FeedFilter{Query: "milano"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFeed(items, tt.filter)
			ids := make([]int64, 0, len(got))
			for _, it := range got {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDetailURL(t *testing.T) {
	assert.Equal(t, "/petitions/4", DetailURL("petition", 4))
	assert.Equal(t, "/reports/9", DetailURL("report", 9))
}
