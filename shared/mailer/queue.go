package mailer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// Queue publishes emails to a durable AMQP queue and consumes them back.
// The HTTP service publishes; the mail worker consumes and relays to SMTP.
type Queue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

// NewQueue connects to url and declares the durable queue name.
func NewQueue(url, name string) (*Queue, error) {
	const op = "mailer.NewQueue"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(
		name, true, false, false, false, nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Queue{
		conn:    conn,
		channel: ch,
		queue:   q,
	}, nil
}

// Send publishes email as a persistent JSON message.
func (q *Queue) Send(ctx context.Context, email Email) error {
	const op = "mailer.Queue.Send"

	body, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = q.channel.PublishWithContext(
		ctx,
		"",
		q.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Consume relays every queued email to sender until ctx is done. Messages
// that cannot be decoded are dropped; failed sends are requeued once.
func (q *Queue) Consume(ctx context.Context, sender Sender, logger *zerolog.Logger) error {
	const op = "mailer.Queue.Consume"

	deliveries, err := q.channel.ConsumeWithContext(ctx, q.queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}
			q.handle(ctx, d, sender, logger)
		}
	}
}

func (q *Queue) handle(ctx context.Context, d amqp.Delivery, sender Sender, logger *zerolog.Logger) {
	var email Email
	if err := json.Unmarshal(d.Body, &email); err != nil {
		logger.Error().Err(err).Msg("failed to decode queued email, dropping")
		_ = d.Nack(false, false)
		return
	}

	if err := sender.Send(ctx, email); err != nil {
		logger.Error().Err(err).Strs("to", email.To).Bool("redelivered", d.Redelivered).Msg("failed to send queued email")
		_ = d.Nack(false, !d.Redelivered)
		return
	}

	logger.Info().Strs("to", email.To).Str("subject", email.Subject).Msg("email sent")
	_ = d.Ack(false)
}

// Close closes the channel and the connection.
func (q *Queue) Close() {
	_ = q.channel.Close()
	_ = q.conn.Close()
}
