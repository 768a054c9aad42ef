package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ReminderSender mails the volunteers of events starting soon
type ReminderSender interface {
	SendDueReminders(ctx context.Context) (int, error)
}

// ReminderJob sends event reminders
type ReminderJob struct {
	sender   ReminderSender
	interval time.Duration
	logger   zerolog.Logger
}

// NewReminderJob creates the event reminder job
func NewReminderJob(sender ReminderSender, interval time.Duration, logger zerolog.Logger) *ReminderJob {
	return &ReminderJob{sender: sender, interval: interval, logger: logger}
}

func (j *ReminderJob) Name() string            { return "event_reminders" }
func (j *ReminderJob) Interval() time.Duration { return j.interval }

// Run sends the reminders that are due
func (j *ReminderJob) Run(ctx context.Context) error {
	n, err := j.sender.SendDueReminders(ctx)
	if n > 0 {
		j.logger.Info().Int("events", n).Msg("Event reminders sent")
	}
	return err
}

// TokenPurger removes expired tokens of one kind
type TokenPurger func(ctx context.Context) (int64, error)

// TokenCleanupJob removes expired refresh and password reset tokens
type TokenCleanupJob struct {
	purgers  map[string]TokenPurger
	interval time.Duration
	logger   zerolog.Logger
}

// NewTokenCleanupJob creates the token cleanup job
func NewTokenCleanupJob(purgers map[string]TokenPurger, interval time.Duration, logger zerolog.Logger) *TokenCleanupJob {
	return &TokenCleanupJob{purgers: purgers, interval: interval, logger: logger}
}

func (j *TokenCleanupJob) Name() string            { return "token_cleanup" }
func (j *TokenCleanupJob) Interval() time.Duration { return j.interval }

// Run purges every token kind, continuing after a failure
func (j *TokenCleanupJob) Run(ctx context.Context) error {
	var errs error
	for kind, purge := range j.purgers {
		n, err := purge(ctx)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if n > 0 {
			j.logger.Info().Str("kind", kind).Int64("removed", n).Msg("Expired tokens removed")
		}
	}
	return errs
}
