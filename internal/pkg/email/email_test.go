package email

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobRender(t *testing.T) {
	tests := []struct {
		name        string
		job         Job
		wantSubject string
		wantBody    string
	}{
		{
			name:        "participation update",
			job:         Job{Kind: KindParticipationUpdate, To: "a@b.c", Name: "Anna", Data: map[string]string{"event": "Beach <clean>", "status": "ACCEPTED", "url": "http://x/events/1"}},
			wantSubject: "Update on your application",
			wantBody:    "Beach &lt;clean&gt;",
		},
		{
			name:        "receipt",
			job:         Job{Kind: KindDonationReceipt, To: "a@b.c", Name: "Anna", Data: map[string]string{"amount": "25.000,00 IDR", "campaign": "Food bank"}},
			wantSubject: "Thank you for your donation",
			wantBody:    "donation of 25.000,00 IDR to",
		},
		{
			name:        "reminder",
			job:         Job{Kind: KindEventReminder, To: "a@b.c", Data: map[string]string{"event": "Run"}},
			wantSubject: "Reminder: Run",
			wantBody:    "<strong>Run</strong>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := tt.job.Render()
			require.NoError(t, err)
			assert.Equal(t, "a@b.c", msg.To)
			assert.Equal(t, tt.wantSubject, msg.Subject)
			assert.Contains(t, msg.HTML, tt.wantBody)
		})
	}
}

func TestJobRender_UnknownKind(t *testing.T) {
	_, err := Job{Kind: "newsletter"}.Render()
	assert.Error(t, err)
}

func TestBuildMIME(t *testing.T) {
	raw := string(BuildMIME("Hub <no-reply@hub.app>", Message{To: "a@b.c", Subject: "Hi", HTML: "<p>x</p>"}))
	assert.True(t, strings.HasPrefix(raw, "Content-Type: text/html; charset=UTF-8\r\nFrom: Hub <no-reply@hub.app>\r\n"))
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>x</p>"))
}

func TestSMTPSender_NotConfiguredIsNoop(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{}, zerolog.Nop())
	assert.False(t, s.Configured())
	assert.NoError(t, s.Send(Message{To: "a@b.c"}))
}
