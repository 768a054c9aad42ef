// Package worker consumes background jobs published by the API
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/queue"
)

// Consumer delivers queued messages to a handler until ctx is done
type Consumer interface {
	Consume(ctx context.Context, prefetch int, handler queue.Handler) error
}

// MailWorker renders queued mail jobs and sends them
type MailWorker struct {
	sender email.Sender
	logger zerolog.Logger
}

// NewMailWorker creates a new MailWorker
func NewMailWorker(sender email.Sender, logger zerolog.Logger) *MailWorker {
	return &MailWorker{
		sender: sender,
		logger: logger.With().Str("component", "mail_worker").Logger(),
	}
}

// Handle processes one job body. Malformed jobs are dropped; a delivery
// failure is returned so the broker can requeue the message.
func (w *MailWorker) Handle(_ context.Context, body []byte) error {
	var job email.Job
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.Error().Err(err).Msg("Dropping undecodable mail job")
		return nil
	}

	msg, err := job.Render()
	if err != nil {
		w.logger.Error().Err(err).Str("kind", string(job.Kind)).Msg("Dropping mail job")
		return nil
	}

	if err := w.sender.Send(msg); err != nil {
		return fmt.Errorf("failed to send %s mail: %w", job.Kind, err)
	}
	w.logger.Debug().Str("kind", string(job.Kind)).Str("to", job.To).Msg("Mail sent")
	return nil
}

// Run consumes mail jobs until ctx is cancelled
func (w *MailWorker) Run(ctx context.Context, consumer Consumer, prefetch int) error {
	w.logger.Info().Msg("Mail worker started")
	err := consumer.Consume(ctx, prefetch, w.Handle)
	if ctx.Err() != nil {
		w.logger.Info().Msg("Mail worker stopped")
		return nil
	}
	return err
}
