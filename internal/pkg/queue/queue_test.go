package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInlinePublisher_PassesEncodedBody(t *testing.T) {
	var got []byte
	p := NewInlinePublisher(func(_ context.Context, body []byte) error {
		got = body
		return nil
	})

	require.NoError(t, p.PublishJSON(context.Background(), map[string]string{"kind": "event_reminder"}))
	assert.JSONEq(t, `{"kind":"event_reminder"}`, string(got))
}

func TestInlinePublisher_ReturnsHandlerError(t *testing.T) {
	boom := errors.New("boom")
	p := NewInlinePublisher(func(context.Context, []byte) error { return boom })
	assert.ErrorIs(t, p.PublishJSON(context.Background(), 1), boom)
}

func TestInlinePublisher_EncodingError(t *testing.T) {
	called := false
	p := NewInlinePublisher(func(context.Context, []byte) error { called = true; return nil })
	assert.Error(t, p.PublishJSON(context.Background(), make(chan int)))
	assert.False(t, called)
}

func TestPublishersSatisfyInterface(t *testing.T) {
	var _ Publisher = (*InlinePublisher)(nil)
	var _ Publisher = (*RabbitMQ)(nil)
}
