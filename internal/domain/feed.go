package domain

import (
	"fmt"
	"sort"
	"time"
)

// FeedKind tags the source entity of a feed item
type FeedKind string

const (
	FeedKindEvent    FeedKind = "event"
	FeedKindPost     FeedKind = "post"
	FeedKindCampaign FeedKind = "campaign"
)

// PreviewLength is the number of runes kept in a feed preview
const PreviewLength = 160

// FeedEntry is the flattened view of an event, post or campaign before aggregation.
// Timestamp is the start date for events and the creation date otherwise.
type FeedEntry struct {
	Kind            FeedKind
	ID              int64
	AssociationID   int64
	AssociationName string
	Title           string
	Body            string
	Location        string
	Skills          []string
	ImageFilename   *string
	Timestamp       time.Time
}

// FeedItem is one element of the aggregated home feed
type FeedItem struct {
	Type            FeedKind  `json:"type"`
	ID              int64     `json:"id"`
	AssociationID   int64     `json:"associationId"`
	AssociationName string    `json:"associationName"`
	Title           string    `json:"title"`
	Preview         string    `json:"description"`
	ImageFilename   *string   `json:"imageFilename,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	URL             string    `json:"url"`

	search string
}

// FeedFilter narrows an aggregated feed. Empty sets do not filter.
type FeedFilter struct {
	Types          []FeedKind
	AssociationIDs []int64
	Query          string
}

// DetailURL returns the canonical detail path for an entity
func DetailURL(kind string, id int64) string {
	return fmt.Sprintf("/%ss/%d", kind, id)
}

// Preview truncates text to PreviewLength runes and appends an ellipsis.
// Empty text yields an empty preview.
func Preview(text string) string {
	if text == "" {
		return ""
	}
	r := []rune(text)
	if len(r) > PreviewLength {
		r = r[:PreviewLength]
	}
	return string(r) + "..."
}

// BuildFeed merges events, posts and campaigns into one stream sorted by timestamp, newest first.
// Ties keep input order (events, then posts, then campaigns).
func BuildFeed(events, posts, campaigns []FeedEntry) []FeedItem {
	items := make([]FeedItem, 0, len(events)+len(posts)+len(campaigns))
	for _, group := range [][]FeedEntry{events, posts, campaigns} {
		for _, e := range group {
			items = append(items, newFeedItem(e))
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	return items
}

func newFeedItem(e FeedEntry) FeedItem {
	parts := []string{e.Title, e.Body, e.Location}
	parts = append(parts, e.Skills...)
	parts = append(parts, e.AssociationName)

	return FeedItem{
		Type:            e.Kind,
		ID:              e.ID,
		AssociationID:   e.AssociationID,
		AssociationName: e.AssociationName,
		Title:           e.Title,
		Preview:         Preview(e.Body),
		ImageFilename:   e.ImageFilename,
		Timestamp:       e.Timestamp,
		URL:             DetailURL(string(e.Kind), e.ID),
		search:          SearchDocument(parts...),
	}
}

// FilterFeed applies the type, association and text filters after aggregation
func FilterFeed(items []FeedItem, f FeedFilter) []FeedItem {
	types := make(map[FeedKind]struct{}, len(f.Types))
	for _, t := range f.Types {
		types[t] = struct{}{}
	}
	assocs := make(map[int64]struct{}, len(f.AssociationIDs))
	for _, id := range f.AssociationIDs {
		assocs[id] = struct{}{}
	}

	out := make([]FeedItem, 0, len(items))
	for _, it := range items {
		if len(types) > 0 {
			if _, ok := types[it.Type]; !ok {
				continue
			}
		}
		if len(assocs) > 0 {
			if _, ok := assocs[it.AssociationID]; !ok {
				continue
			}
		}
		if !MatchesQuery(it.search, f.Query) {
			continue
		}
		out = append(out, it)
	}
	return out
}
