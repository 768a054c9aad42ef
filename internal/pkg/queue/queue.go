package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Handler processes one message body
type Handler func(ctx context.Context, body []byte) error

// Publisher sends JSON messages to background workers
type Publisher interface {
	PublishJSON(ctx context.Context, v interface{}) error
}

// InlinePublisher runs the handler in the caller goroutine; used when no broker is configured
type InlinePublisher struct {
	handler Handler
}

// NewInlinePublisher creates a publisher that hands messages directly to handler
func NewInlinePublisher(handler Handler) *InlinePublisher {
	return &InlinePublisher{handler: handler}
}

// PublishJSON encodes v and runs the handler on it
func (p *InlinePublisher) PublishJSON(ctx context.Context, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding message: %w", err)
	}
	return p.handler(ctx, body)
}
