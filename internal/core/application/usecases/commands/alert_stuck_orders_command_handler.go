package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tailoring/internal/core/domain/model/notification"
	"tailoring/internal/core/ports"
)

// AlertStuckOrdersCommandHandler queues one alert per stuck order for the manager of the
// order's tailor. Orders whose manager has no email on file are skipped and reported in
// the returned error; the alerts for the remaining orders are still queued.
type AlertStuckOrdersCommandHandler struct {
	reader     ports.OrderReportReader
	uowFactory AuditUoWFactory
}

func NewAlertStuckOrdersCommandHandler(
	reader ports.OrderReportReader,
	uowFactory AuditUoWFactory,
) AlertStuckOrdersCommandHandler {
	return AlertStuckOrdersCommandHandler{
		reader:     reader,
		uowFactory: uowFactory,
	}
}

// Handle returns the number of alerts queued.
func (h AlertStuckOrdersCommandHandler) Handle(ctx context.Context, cmd AlertStuckOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stuck, err := h.reader.ListStuckSince(ctx, cmd.Before())
	if err != nil {
		return 0, err
	}
	if len(stuck) == 0 {
		return 0, nil
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	var (
		queued  int
		skipped error
	)

	subject := StuckOrderSubject(cmd.Threshold())
	outbox := uow.NotificationOutbox()

	for _, details := range stuck {
		msg, err := notification.NewMessage(details.ManagerEmail, subject, StuckOrderBody(details, cmd.Threshold()))
		if err != nil {
			skipped = errors.Join(skipped, fmt.Errorf("order %s: %w", details.OrderID, err))
			continue
		}
		if err = outbox.Enqueue(ctx, details.OrderID, msg); err != nil {
			return 0, err
		}
		queued++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return queued, skipped
}

// StuckOrderSubject names the threshold in whole days when it is a multiple of a day.
func StuckOrderSubject(threshold time.Duration) string {
	return "Order is Stuck more than " + humanThreshold(threshold)
}

func StuckOrderBody(details ports.OrderDetails, threshold time.Duration) string {
	return fmt.Sprintf(
		"Hello Sir,\n\nThis order have been stuck for more than %s. Here is the order details:\n\n"+
			"orderId=%s\ntailorName=%s\nfabricName=%s\nstageName=%s\nstageInTime=%s",
		humanThreshold(threshold),
		details.OrderID,
		details.TailorName,
		details.Fabric,
		details.Stage,
		details.StageInTime.Format(time.RFC3339),
	)
}

func humanThreshold(threshold time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case threshold == day:
		return "1 day"
	case threshold%day == 0:
		return fmt.Sprintf("%d days", threshold/day)
	default:
		return threshold.String()
	}
}
