package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/pkg/metrics"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublishNacked = errors.New("broker rejected the notification")

// Publisher sends notification messages to the mail queue and waits for the broker
// confirm of each one. Publishes are serialised so confirms match their messages.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger

	mu sync.Mutex
}

func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		conn:   conn,
		logger: logger.With("component", "notification_publisher"),
	}
}

func (p *Publisher) Publish(ctx context.Context, msg notification.Message) error {
	body, err := msg.Encode()
	if err != nil {
		return err
	}

	messageID := uuid.New().String()

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.conn.WithChannel(func(ch *amqp.Channel) error {
		confirm, err := ch.PublishWithDeferredConfirmWithContext(
			ctx,
			string(ExchangeNotifications),
			string(RoutingKeyMail),
			false, // mandatory
			false, // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    messageID,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", ExchangeNotifications, RoutingKeyMail, err)
		}

		acked, err := confirm.WaitContext(ctx)
		if err != nil {
			return fmt.Errorf("await confirm of %s: %w", messageID, err)
		}
		if !acked {
			return fmt.Errorf("%w: message %s", ErrPublishNacked, messageID)
		}

		metrics.NotificationsPublished.Inc()
		p.logger.DebugContext(ctx, "notification published",
			"message_id", messageID,
			"to", msg.To,
			"subject", msg.Subject,
		)

		return nil
	})
}
