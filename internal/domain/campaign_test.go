package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func validCampaign() CampaignInput {
	return CampaignInput{
		Title:       "Raccolta Fondi",
		Description: "Nuova ambulanza",
		Duration:    DurationTemporary,
		Date:        day(2024, 3, 1),
		EndDate:     timePtr(day(2024, 6, 1)),
	}
}

func TestCampaignNormalize_TemporaryRequiresEndDate(t *testing.T) {
	in := validCampaign()
	in.EndDate = nil

	err := in.Normalize()
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Contains(t, err.Error(), "end date is required")
}

func TestCampaignNormalize_TemporaryEndMustFollowStart(t *testing.T) {
	in := validCampaign()
	in.EndDate = timePtr(in.Date)

	assert.Error(t, in.Normalize())
}

func TestCampaignNormalize_PerennialClearsEndDate(t *testing.T) {
	in := validCampaign()
	in.Duration = DurationPerennial

	require.NoError(t, in.Normalize())
	assert.Nil(t, in.EndDate)
}

func TestCampaignNormalize_Fields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CampaignInput)
		wantErr string
	}{
		{"missing title", func(c *CampaignInput) { c.Title = "  " }, "title is required"},
		{"long title", func(c *CampaignInput) { c.Title = strings.Repeat("x", 256) }, "at most 255"},
		{"missing description", func(c *CampaignInput) { c.Description = "" }, "description is required"},
		{"bad goal", func(c *CampaignInput) { c.GoalAmount = strPtr("about 5k") }, "goal amount"},
		{"unknown duration", func(c *CampaignInput) { c.Duration = "forever" }, "duration"},
		{"good goal", func(c *CampaignInput) { c.GoalAmount = strPtr("10.000,00 €") }, ""},
		{"blank goal", func(c *CampaignInput) { c.GoalAmount = strPtr(" ") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validCampaign()
			tt.mutate(&in)
			err := in.Normalize()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, DurationPerennial, ParseDuration("Perennial", DurationTemporary))
	assert.Equal(t, DurationTemporary, ParseDuration("", DurationTemporary))
	assert.Equal(t, DurationPerennial, ParseDuration("weekly", DurationPerennial))
}

func TestHasEnded(t *testing.T) {
	now := day(2024, 6, 2)
	assert.True(t, HasEnded(timePtr(day(2024, 6, 1)), now))
	assert.False(t, HasEnded(nil, now))
}
