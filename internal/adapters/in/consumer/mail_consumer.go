// Package consumer drives the delivery side of the notification pipeline: it takes
// messages off the mail queue and hands them to the mailer.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tailoring/internal/adapters/out/rabbitmq"
	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/pkg/metrics"

	amqp "github.com/rabbitmq/amqp091-go"
)

var errDeliveriesClosed = errors.New("deliveries channel closed")

// DefaultMaxDeliveries is how many times a message is handed to the mailer before it is
// dead-lettered.
const DefaultMaxDeliveries = 5

type DeliverNotificationHandler interface {
	Handle(ctx context.Context, cmd commands.DeliverNotificationCommand) error
}

// MailConsumer is the single subscriber of the mail queue. Prefetch 1 keeps messages of
// one order in the order they were published. A message is acked only after the mailer
// accepted it. A failed send is requeued until it has been tried maxDeliveries times and
// is then dead-lettered together with undecodable payloads.
//
// Attempts are counted per message id in memory, so a restart gives a failing message
// a fresh budget.
type MailConsumer struct {
	conn          *rabbitmq.Connection
	handler       DeliverNotificationHandler
	logger        *slog.Logger
	queue         string
	maxDeliveries int

	// only touched by the process loop
	attempts map[string]int

	cancelFunc context.CancelFunc
}

type Option func(*MailConsumer)

// WithMaxDeliveries caps the send attempts per message. Values below 1 keep the default.
func WithMaxDeliveries(n int) Option {
	return func(c *MailConsumer) {
		if n > 0 {
			c.maxDeliveries = n
		}
	}
}

func NewMailConsumer(
	conn *rabbitmq.Connection,
	handler DeliverNotificationHandler,
	logger *slog.Logger,
	opts ...Option,
) *MailConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	c := &MailConsumer{
		conn:          conn,
		handler:       handler,
		logger:        logger.With("component", "mail_consumer"),
		queue:         string(rabbitmq.QueueMail),
		maxDeliveries: DefaultMaxDeliveries,
		attempts:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start consumes until ctx is cancelled or Stop is called. It survives broker
// reconnects by resubscribing on the new channel.
func (c *MailConsumer) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	c.cancelFunc = cancel

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		deliveries, err := c.subscribe()
		if err != nil {
			c.logger.ErrorContext(ctx, "failed to subscribe", "queue", c.queue, "error", err)
		} else {
			c.logger.InfoContext(ctx, "consumer started", "queue", c.queue)
			err = c.process(ctx, deliveries)
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.WarnContext(ctx, "consumer interrupted, waiting for reconnect", "queue", c.queue, "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.conn.ReconnectNotify():
			c.logger.InfoContext(ctx, "reconnected, restarting consumer", "queue", c.queue)
		}
	}
}

func (c *MailConsumer) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
}

func (c *MailConsumer) subscribe() (<-chan amqp.Delivery, error) {
	var deliveries <-chan amqp.Delivery
	err := c.conn.WithChannel(func(ch *amqp.Channel) error {
		if err := ch.Qos(1, 0, false); err != nil {
			return fmt.Errorf("set qos: %w", err)
		}

		var err error
		deliveries, err = ch.Consume(
			c.queue, // queue
			"",      // consumer tag
			false,   // auto-ack
			false,   // exclusive
			false,   // no-local
			false,   // no-wait
			nil,     // args
		)
		if err != nil {
			return fmt.Errorf("consume: %w", err)
		}
		return nil
	})
	return deliveries, err
}

func (c *MailConsumer) process(ctx context.Context, deliveries <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return errDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

func (c *MailConsumer) handle(ctx context.Context, d amqp.Delivery) {
	msg, err := notification.Decode(d.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping undecodable notification",
			"message_id", d.MessageId,
			"body", string(d.Body),
			"error", err,
		)
		metrics.NotificationsDelivered.WithLabelValues("rejected").Inc()
		_ = d.Nack(false, false)
		return
	}

	cmd, err := commands.NewDeliverNotificationCommand(msg)
	if err == nil {
		err = c.handler.Handle(ctx, cmd)
	}
	if err != nil {
		c.fail(ctx, d, msg, err)
		return
	}

	delete(c.attempts, attemptKey(d))

	metrics.NotificationsDelivered.WithLabelValues("sent").Inc()
	c.logger.InfoContext(ctx, "notification delivered",
		"message_id", d.MessageId,
		"to", msg.To,
		"subject", msg.Subject,
	)
	_ = d.Ack(false)
}

func (c *MailConsumer) fail(ctx context.Context, d amqp.Delivery, msg notification.Message, err error) {
	key := attemptKey(d)
	c.attempts[key]++
	attempt := c.attempts[key]

	if attempt >= c.maxDeliveries {
		delete(c.attempts, key)
		c.logger.ErrorContext(ctx, "mail delivery failed, dead-lettering",
			"message_id", d.MessageId,
			"to", msg.To,
			"subject", msg.Subject,
			"attempt", attempt,
			"error", err,
		)
		metrics.NotificationsDelivered.WithLabelValues("dead_lettered").Inc()
		_ = d.Nack(false, false)
		return
	}

	c.logger.WarnContext(ctx, "mail delivery failed, requeueing",
		"message_id", d.MessageId,
		"to", msg.To,
		"subject", msg.Subject,
		"attempt", attempt,
		"error", err,
	)
	metrics.NotificationsDelivered.WithLabelValues("retry").Inc()
	_ = d.Nack(false, true)
}

// attemptKey falls back to the body for messages published without an id.
func attemptKey(d amqp.Delivery) string {
	if d.MessageId != "" {
		return d.MessageId
	}
	return string(d.Body)
}
