package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/queue"
)

type fakeSender struct {
	sent []email.Message
	err  error
}

func (f *fakeSender) Send(msg email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func encode(t *testing.T, job email.Job) []byte {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return body
}

func TestMailWorker_Handle(t *testing.T) {
	reminder := email.Job{
		Kind: email.KindEventReminder,
		To:   "marta@example.org",
		Name: "Marta",
		Data: map[string]string{"event": "Beach clean-up", "date": "01/06/2025 14:00", "location": "Bari", "url": "http://x/events/1"},
	}

	tests := []struct {
		name      string
		body      []byte
		senderErr error
		wantErr   bool
		wantSent  int
	}{
		{name: "sends rendered mail", body: encode(t, reminder), wantSent: 1},
		{name: "drops malformed body", body: []byte("{not json"), wantSent: 0},
		{name: "drops unknown kind", body: encode(t, email.Job{Kind: "newsletter", To: "a@b.c"}), wantSent: 0},
		{name: "returns delivery failure", body: encode(t, reminder), senderErr: errors.New("smtp down"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{err: tt.senderErr}
			w := NewMailWorker(sender, zerolog.Nop())

			err := w.Handle(context.Background(), tt.body)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, sender.sent, tt.wantSent)
			if tt.wantSent > 0 {
				assert.Equal(t, "marta@example.org", sender.sent[0].To)
				assert.Contains(t, sender.sent[0].Subject, "Beach clean-up")
			}
		})
	}
}

func TestMailWorker_WithInlinePublisher(t *testing.T) {
	sender := &fakeSender{}
	w := NewMailWorker(sender, zerolog.Nop())
	pub := queue.NewInlinePublisher(w.Handle)

	err := pub.PublishJSON(context.Background(), email.Job{
		Kind: email.KindPasswordReset,
		To:   "anna@example.org",
		Name: "Anna",
		Data: map[string]string{"url": "http://x/reset?token=t", "expires_in": "1 hour"},
	})

	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Reset your password", sender.sent[0].Subject)
}

type stoppedConsumer struct{}

func (stoppedConsumer) Consume(ctx context.Context, _ int, _ queue.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestMailWorker_RunStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, NewMailWorker(&fakeSender{}, zerolog.Nop()).Run(ctx, stoppedConsumer{}, 5))
}
