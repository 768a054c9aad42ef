package email

import (
	"fmt"
	"html"
	"time"
)

// Kind names a mail template
type Kind string

const (
	KindParticipationUpdate Kind = "participation_update"
	KindEventReminder       Kind = "event_reminder"
	KindDonationReceipt     Kind = "donation_receipt"
	KindPasswordReset       Kind = "password_reset"
)

// Job is a queued mail; Data carries the template values
type Job struct {
	Kind      Kind              `json:"kind"`
	To        string            `json:"to"`
	Name      string            `json:"name"`
	Data      map[string]string `json:"data"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Render builds the message of a job
func (j Job) Render() (Message, error) {
	name := html.EscapeString(j.Name)
	v := func(key string) string { return html.EscapeString(j.Data[key]) }

	var subject, body string
	switch j.Kind {
	case KindParticipationUpdate:
		subject = "Update on your application"
		body = fmt.Sprintf(`<p>Hello %s,</p><p>Your application to <strong>%s</strong> is now <strong>%s</strong>.</p><p><a href="%s">Open the event</a></p>`,
			name, v("event"), v("status"), v("url"))
	case KindEventReminder:
		subject = "Reminder: " + j.Data["event"]
		body = fmt.Sprintf(`<p>Hello %s,</p><p><strong>%s</strong> starts on %s at %s.</p><p><a href="%s">Event details</a></p>`,
			name, v("event"), v("date"), v("location"), v("url"))
	case KindDonationReceipt:
		subject = "Thank you for your donation"
		body = fmt.Sprintf(`<p>Hello %s,</p><p>We received your donation of %s to <strong>%s</strong>.</p><p><a href="%s">Download your receipt</a></p>`,
			name, v("amount"), v("campaign"), v("receipt_url"))
	case KindPasswordReset:
		subject = "Reset your password"
		body = fmt.Sprintf(`<p>Hello %s,</p><p>Use the link below to choose a new password. It expires in %s.</p><p><a href="%s">Reset password</a></p>`,
			name, v("expires_in"), v("url"))
	default:
		return Message{}, fmt.Errorf("unknown mail kind %q", j.Kind)
	}

	return Message{
		To:      j.To,
		Subject: subject,
		HTML:    `<html><body><div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">` + body + `</div></body></html>`,
	}, nil
}
