package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/email"
)

// DefaultReminderWindow is how far ahead events are reminded
const DefaultReminderWindow = 24 * time.Hour

// ReminderService mails accepted volunteers before their events start
type ReminderService interface {
	SendDueReminders(ctx context.Context) (int, error)
}

type reminderServiceImpl struct {
	events     ReminderStore
	recipients RecipientStore
	mailer     *Mailer
	window     time.Duration
	now        func() time.Time
	logger     zerolog.Logger
}

// NewReminderService creates a new ReminderService reminding events that start within window
func NewReminderService(events ReminderStore, recipients RecipientStore, mailer *Mailer, window time.Duration, logger zerolog.Logger) ReminderService {
	if window <= 0 {
		window = DefaultReminderWindow
	}
	return &reminderServiceImpl{
		events:     events,
		recipients: recipients,
		mailer:     mailer,
		window:     window,
		now:        time.Now,
		logger:     logger.With().Str("service", "reminder").Logger(),
	}
}

// SendDueReminders queues one reminder per accepted volunteer of each due event and
// stamps the event so it is reminded only once. It returns the number of events handled.
func (s *reminderServiceImpl) SendDueReminders(ctx context.Context) (int, error) {
	now := s.now()
	events, err := s.events.ListDueForReminder(ctx, now, now.Add(s.window))
	if err != nil {
		return 0, fmt.Errorf("error listing events due for reminder: %w", err)
	}

	handled := 0
	for _, e := range events {
		recipients, err := s.recipients.ListAcceptedRecipients(ctx, e.ID)
		if err != nil {
			s.logger.Error().Err(err).Int64("eventID", e.ID).Msg("Could not list reminder recipients")
			continue
		}

		for _, r := range recipients {
			s.mailer.Queue(ctx, email.KindEventReminder, r.Email, r.Name, map[string]string{
				"event":    e.Title,
				"date":     e.Date.Format("02/01/2006 15:04"),
				"location": e.Location,
				"url":      s.mailer.URL(domain.DetailURL("event", e.ID)),
			})
		}

		if err := s.events.MarkReminderSent(ctx, e.ID, now); err != nil {
			s.logger.Error().Err(err).Int64("eventID", e.ID).Msg("Could not mark reminder as sent")
			continue
		}
		handled++
		s.logger.Info().Int64("eventID", e.ID).Int("recipients", len(recipients)).Msg("Event reminder queued")
	}
	return handled, nil
}
