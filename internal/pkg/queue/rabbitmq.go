package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// RabbitMQ publishes to a direct exchange bound to one durable queue and consumes from it
type RabbitMQ struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	logger   zerolog.Logger
}

// NewRabbitMQ dials the broker and declares the exchange, queue and binding
func NewRabbitMQ(url, exchange, queue string, logger zerolog.Logger) (*RabbitMQ, error) {
	logger = logger.With().Str("component", "rabbitmq").Logger()

	conn, err := amqp.Dial(url)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to RabbitMQ")
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	r := &RabbitMQ{conn: conn, channel: ch, exchange: exchange, queue: queue, logger: logger}
	if err := r.declare(); err != nil {
		r.Close()
		return nil, err
	}

	logger.Info().Str("exchange", exchange).Str("queue", queue).Msg("RabbitMQ initialized")
	return r, nil
}

func (r *RabbitMQ) declare() error {
	if err := r.channel.ExchangeDeclare(r.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := r.channel.QueueDeclare(r.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := r.channel.QueueBind(r.queue, r.queue, r.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

// Close releases the channel and the connection
func (r *RabbitMQ) Close() {
	if r.channel != nil {
		_ = r.channel.Close()
	}
	if r.conn != nil {
		_ = r.conn.Close()
	}
	r.logger.Info().Msg("RabbitMQ connection closed")
}

// PublishJSON sends v as a persistent JSON message
func (r *RabbitMQ) PublishJSON(ctx context.Context, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding message: %w", err)
	}

	err = r.channel.PublishWithContext(ctx, r.exchange, r.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to publish message")
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Consume delivers messages to handler until ctx is done.
// A failed message is requeued once, then dropped.
func (r *RabbitMQ) Consume(ctx context.Context, prefetch int, handler Handler) error {
	if prefetch <= 0 {
		prefetch = 10
	}
	if err := r.channel.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := r.channel.Consume(r.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-msgs:
			if !ok {
				return errors.New("consumer channel closed")
			}
			if err := handler(ctx, m.Body); err != nil {
				r.logger.Error().Err(err).Bool("redelivered", m.Redelivered).Msg("Message handling failed")
				_ = m.Nack(false, !m.Redelivered)
				continue
			}
			_ = m.Ack(false)
		}
	}
}
