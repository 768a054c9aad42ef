package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// DefaultEventType is used when no type is supplied
const DefaultEventType = "event"

// CapacityMode selects between a participant limit and an open event
type CapacityMode string

const (
	CapacityLimited   CapacityMode = "limited"
	CapacityUnlimited CapacityMode = "unlimited"
)

// EventInput is the editable part of an event
type EventInput struct {
	Title        string
	Description  *string
	Date         time.Time
	EndDate      *time.Time
	Location     string
	Coordinates  *Coordinates
	Duration     Duration
	Skills       []string
	Activity     *string
	Type         string
	CapacityMode CapacityMode
	CapacityMax  *int
}

// Normalize validates and fills defaults in place
func (in *EventInput) Normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(in.Title) > 150 {
		return apperrors.NewValidationError("title", "title must be at most 150 characters")
	}
	if in.Location == "" {
		return apperrors.NewValidationError("location", "location is required")
	}
	if in.Date.IsZero() {
		return apperrors.NewValidationError("date", "date is required")
	}
	if in.EndDate != nil && in.EndDate.Before(in.Date) {
		return apperrors.NewValidationError("endDate", "end date must not precede the start date")
	}

	in.Duration = ParseDuration(string(in.Duration), DurationTemporary)
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.Type == "" {
		in.Type = DefaultEventType
	}
	if in.Activity != nil {
		if a := strings.TrimSpace(*in.Activity); a != "" {
			in.Activity = &a
		} else {
			in.Activity = nil
		}
	}
	in.Skills = ParseSkills(in.Skills)

	switch in.CapacityMode {
	case CapacityUnlimited:
		in.CapacityMax = nil
	case CapacityLimited:
		if in.CapacityMax == nil {
			return apperrors.NewValidationError("capacityMax", "a limited event needs a maximum number of participants")
		}
	case "":
	default:
		return apperrors.NewValidationError("capacityMode", "capacity mode must be limited or unlimited")
	}
	if in.CapacityMax != nil && *in.CapacityMax < 0 {
		return apperrors.NewValidationError("capacityMax", "maximum participants cannot be negative")
	}

	return nil
}

// ParseSkills trims and de-duplicates skills, keeping first occurrence order.
// A single comma separated value is split.
func ParseSkills(items []string) []string {
	if len(items) == 1 && strings.Contains(items[0], ",") {
		items = strings.Split(items[0], ",")
	}

	clean := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		clean = append(clean, s)
	}
	return clean
}

// EventFinished reports whether an event is over: past its end date, or a day past its start
// when it has none.
func EventFinished(date time.Time, endDate *time.Time, now time.Time) bool {
	if endDate != nil {
		return endDate.Before(now)
	}
	return date.Before(now.Add(-24 * time.Hour))
}
