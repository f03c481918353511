package commands

import (
	"context"
	"fmt"

	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/ports"
)

// RelayNotificationsCommandHandler publishes queued notifications in the order they were
// queued and marks each one once the broker has confirmed it. The first publish failure
// ends the batch so a later message never overtakes an earlier one; the failed row stays
// pending and is retried by the next run.
//
// A crash between the broker confirm and the commit republishes the batch, so consumers
// see every notification at least once.
type RelayNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.NotificationPublisher
	clock      kernel.Clock
}

func NewRelayNotificationsCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.NotificationPublisher,
	clock kernel.Clock,
) RelayNotificationsCommandHandler {
	if clock == nil {
		clock = kernel.SystemClock
	}
	return RelayNotificationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle returns the number of notifications published. When it also returns an error,
// the rows published before the failure are committed as published.
func (h RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.NotificationOutbox()

	pending, err := outbox.GetPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	var (
		published  int
		publishErr error
	)

	for _, p := range pending {
		if publishErr = h.publisher.Publish(ctx, p.Message); publishErr != nil {
			publishErr = fmt.Errorf("publish notification %d of %s: %w", p.ID, p.AggregateID, publishErr)
			break
		}
		if err = outbox.MarkPublished(ctx, p.ID, h.clock()); err != nil {
			return 0, err
		}
		published++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return published, publishErr
}
