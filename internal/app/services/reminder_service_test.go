package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/repositories"
	"github.com/yigit/volunteerhub/internal/pkg/email"
)

func TestReminderService_SendDueReminders(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	events := new(MockEventStore)
	recipients := new(MockParticipationStore)
	pub := &recordingPublisher{}

	svc := NewReminderService(events, recipients, NewMailer(pub, "https://volunteerhub.test", zerolog.Nop()), 0, zerolog.Nop())
	svc.(*reminderServiceImpl).now = func() time.Time { return now }

	due := []*models.Event{
		{ID: 1, Title: "Beach cleanup", Location: "Genova", Date: now.Add(5 * time.Hour)},
		{ID: 2, Title: "Food bank", Location: "Milano", Date: now.Add(20 * time.Hour)},
	}
	events.On("ListDueForReminder", mock.Anything, now, now.Add(DefaultReminderWindow)).Return(due, nil)
	recipients.On("ListAcceptedRecipients", mock.Anything, int64(1)).Return([]repositories.Recipient{
		{UserID: 10, Name: "Marta", Email: "marta@example.org"},
		{UserID: 11, Name: "Luca", Email: "luca@example.org"},
	}, nil)
	recipients.On("ListAcceptedRecipients", mock.Anything, int64(2)).Return(nil, errors.New("db down"))
	events.On("MarkReminderSent", mock.Anything, int64(1), now).Return(nil)

	handled, err := svc.SendDueReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, handled)

	jobs := pub.Jobs()
	require.Len(t, jobs, 2)
	for _, job := range jobs {
		assert.Equal(t, email.KindEventReminder, job.Kind)
		assert.Equal(t, "Beach cleanup", job.Data["event"])
		assert.Equal(t, "01/06/2025 14:00", job.Data["date"])
	}
	events.AssertNotCalled(t, "MarkReminderSent", mock.Anything, int64(2), mock.Anything)
	events.AssertExpectations(t)
}

func TestReminderService_ListFailure(t *testing.T) {
	events := new(MockEventStore)
	events.On("ListDueForReminder", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	svc := NewReminderService(events, new(MockParticipationStore), nil, time.Hour, zerolog.Nop())
	handled, err := svc.SendDueReminders(context.Background())
	assert.Error(t, err)
	assert.Zero(t, handled)
}
