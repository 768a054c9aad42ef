package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// Duration distinguishes time-boxed from open-ended campaigns and events
type Duration string

const (
	DurationTemporary Duration = "temporary"
	DurationPerennial Duration = "perennial"
)

// ParseDuration lower-cases raw and falls back to def when it is not a known duration
func ParseDuration(raw string, def Duration) Duration {
	switch d := Duration(strings.ToLower(strings.TrimSpace(raw))); d {
	case DurationTemporary, DurationPerennial:
		return d
	}
	return def
}

var goalAmountPattern = regexp.MustCompile(`^[0-9., €]*$`)

// CampaignInput is the editable part of a campaign
type CampaignInput struct {
	Title       string
	Description string
	GoalAmount  *string
	Duration    Duration
	Date        time.Time
	EndDate     *time.Time
	Location    *string
	Coordinates *Coordinates
}

// Normalize validates the input in place. Perennial campaigns lose their end date;
// temporary ones must end after they start.
func (in *CampaignInput) Normalize() error {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)

	if in.Title == "" {
		return apperrors.NewValidationError("title", "title is required")
	}
	if utf8.RuneCountInString(in.Title) > 255 {
		return apperrors.NewValidationError("title", "title must be at most 255 characters")
	}
	if in.Description == "" {
		return apperrors.NewValidationError("description", "description is required")
	}

	if in.GoalAmount != nil {
		goal := strings.TrimSpace(*in.GoalAmount)
		switch {
		case goal == "":
			in.GoalAmount = nil
		case utf8.RuneCountInString(goal) > 255:
			return apperrors.NewValidationError("goalAmount", "goal amount must be at most 255 characters")
		case !goalAmountPattern.MatchString(goal):
			return apperrors.NewValidationError("goalAmount", "goal amount may only contain digits, separators and €")
		default:
			in.GoalAmount = &goal
		}
	}

	if in.Date.IsZero() {
		return apperrors.NewValidationError("date", "start date is required")
	}

	switch in.Duration {
	case DurationPerennial:
		in.EndDate = nil
	case DurationTemporary:
		if in.EndDate == nil {
			return apperrors.NewValidationError("endDate", "end date is required for temporary campaigns")
		}
		if !in.EndDate.After(in.Date) {
			return apperrors.NewValidationError("endDate", "end date must be after the start date")
		}
	default:
		return apperrors.NewValidationError("duration", "duration must be temporary or perennial")
	}

	return nil
}

// HasEnded reports whether a temporary campaign's end date has passed
func HasEnded(endDate *time.Time, now time.Time) bool {
	return endDate != nil && endDate.Before(now)
}
