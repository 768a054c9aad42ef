package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReminders struct {
	calls atomic.Int32
	sent  int
	err   error
}

func (f *fakeReminders) SendDueReminders(context.Context) (int, error) {
	f.calls.Add(1)
	return f.sent, f.err
}

func TestReminderJob_Run(t *testing.T) {
	tests := []struct {
		name    string
		sender  *fakeReminders
		wantErr bool
	}{
		{name: "sent", sender: &fakeReminders{sent: 2}},
		{name: "nothing due", sender: &fakeReminders{}},
		{name: "store failure", sender: &fakeReminders{err: errors.New("db down")}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := NewReminderJob(tt.sender, time.Minute, zerolog.Nop())
			err := job.Run(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, int32(1), tt.sender.calls.Load())
			assert.Equal(t, "event_reminders", job.Name())
			assert.Equal(t, time.Minute, job.Interval())
		})
	}
}

func TestTokenCleanupJob_ContinuesAfterFailure(t *testing.T) {
	var resetCalled bool
	job := NewTokenCleanupJob(map[string]TokenPurger{
		"refresh": func(context.Context) (int64, error) { return 0, errors.New("timeout") },
		"reset": func(context.Context) (int64, error) {
			resetCalled = true
			return 3, nil
		},
	}, time.Hour, zerolog.Nop())

	err := job.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
	assert.True(t, resetCalled)
}

func TestManager_RunsRegisteredJob(t *testing.T) {
	m, err := NewManager(zerolog.Nop())
	require.NoError(t, err)

	sender := &fakeReminders{}
	require.NoError(t, m.Register(NewReminderJob(sender, 20*time.Millisecond, zerolog.Nop())))
	m.Start()

	assert.Eventually(t, func() bool { return sender.calls.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, m.Stop())
}
