package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/queue"
)

// Mailer queues templated mails. Delivery failures never fail the calling operation.
type Mailer struct {
	publisher queue.Publisher
	baseURL   string
	logger    zerolog.Logger
}

// NewMailer creates a Mailer; links in mails are prefixed with baseURL
func NewMailer(publisher queue.Publisher, baseURL string, logger zerolog.Logger) *Mailer {
	return &Mailer{
		publisher: publisher,
		baseURL:   baseURL,
		logger:    logger.With().Str("component", "mailer").Logger(),
	}
}

// URL turns an application path into an absolute link
func (m *Mailer) URL(path string) string {
	if m == nil {
		return path
	}
	return m.baseURL + path
}

// Queue publishes a job; errors are logged
func (m *Mailer) Queue(ctx context.Context, kind email.Kind, to, name string, data map[string]string) {
	if m == nil || m.publisher == nil || to == "" {
		return
	}
	job := email.Job{Kind: kind, To: to, Name: name, Data: data, CreatedAt: time.Now()}
	if err := m.publisher.PublishJSON(ctx, job); err != nil {
		m.logger.Error().Err(err).Str("kind", string(kind)).Str("to", to).Msg("Failed to queue mail")
	}
}
