package ports

import (
	"context"
	"time"

	"tailoring/internal/core/domain/model/notification"
)

// PendingNotification is an outbox row waiting for the relay.
type PendingNotification struct {
	ID          int64
	AggregateID string
	Message     notification.Message
	CreatedAt   time.Time
}

// NotificationOutbox is the durable producer side of the notification pipeline.
// Writers enqueue inside the same transaction as the state change they announce,
// so a committed transition always has its notification queued.
type NotificationOutbox interface {
	// Enqueue stores msg for later publishing. aggregateID groups rows of one order
	// (or one audit run) for tracing.
	Enqueue(ctx context.Context, aggregateID string, msg notification.Message) error

	// GetPending returns up to limit unpublished rows in insertion order and locks them.
	GetPending(ctx context.Context, limit int) ([]PendingNotification, error)

	// MarkPublished flags a row as handed to the broker.
	MarkPublished(ctx context.Context, id int64, at time.Time) error
}

// NotificationPublisher hands a message to the message broker. It returns once the
// broker has accepted the message; delivery to the mailbox happens later.
type NotificationPublisher interface {
	Publish(ctx context.Context, msg notification.Message) error
}

// Mailer delivers a message to its recipient.
type Mailer interface {
	Send(ctx context.Context, msg notification.Message) error
}
